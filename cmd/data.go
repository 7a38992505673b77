package cmd

import (
	"github.com/huangsam/uli/core"
	"github.com/spf13/cobra"
)

// dataCmd groups import and export commands.
var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Import and export reflection data",
	Long: `Move reflection data in and out of the record store.

Subcommands:
  export         - Write a JSON bundle (uli_data_<identity>_<date>.json by default)
  import         - Replace stored data with a JSON bundle
  export-parquet - Write reflections and history as Parquet files`,
}

// dataExportCmd writes the interchange bundle.
var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data for the identity as a JSON bundle.",
	Example: `  uli data export
  uli data export --output-file backup.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteDataExport, "Failed to export data")
	},
}

// dataImportCmd replaces stored data with a bundle.
var dataImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data for the identity with a JSON bundle.",
	Long: `Validate the bundle and replace everything stored for the identity.

Only keys containing the identity are read. If any record is malformed the
import fails and the stored data is left unchanged.

Examples:
  uli data import uli_data_local_user_id_2024-03-15.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		run(core.ExecuteDataImport(args[0]), "Failed to import data")
	},
}

// dataExportParquetCmd writes Parquet files for analytics tools.
var dataExportParquetCmd = &cobra.Command{
	Use:   "export-parquet",
	Short: "Export reflections and history to Parquet files.",
	Long: `Write PREFIX.reflections.parquet and PREFIX.history.parquet for use with
DuckDB, pandas or any other Parquet reader.

Examples:
  uli data export-parquet --output-file uli-export`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteDataExportParquet, "Failed to export parquet")
	},
}
