// Package cmd defines the command-line interface for uli.
package cmd

import (
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the train subcommands to the parent train command
	trainCmd.AddCommand(trainListCmd)
	trainCmd.AddCommand(trainStartCmd)

	// Add the data subcommands to the parent data command
	dataCmd.AddCommand(dataExportCmd)
	dataCmd.AddCommand(dataImportCmd)
	dataCmd.AddCommand(dataExportParquetCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("identity", schema.DefaultIdentity, "Identity whose reflections are read and written")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or csv or svg")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of trendCmd to Viper
	trendCmd.Flags().String("window", string(schema.WindowAll), "Time window: 7d or 30d or all")
	trendCmd.Flags().String("principles", "", "Comma-separated principles to chart (default: all)")
	if err := viper.BindPFlags(trendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trend flags", err)
	}

	// Bind all flags of historyCmd to Viper
	historyCmd.Flags().String("search", "", "Case-insensitive text to match in reflections and tags")
	historyCmd.Flags().String("tag", "", "Only show reflections carrying this tag ('all' shows every tag)")
	historyCmd.Flags().String("since", "", "Only show reflections after this date (ISO8601, YYYY-MM-DD or time ago)")
	historyCmd.Flags().IntP("limit", "l", contract.DefaultResultLimit, "Number of reflections to display (0 = all)")
	if err := viper.BindPFlags(historyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}

	// Bind all flags of recommendCmd to Viper
	recommendCmd.Flags().Bool("shuffle-ties", false, "Pick randomly among principles tied for the lowest score")
	if err := viper.BindPFlags(recommendCmd.Flags()); err != nil {
		contract.LogFatal("Error binding recommend flags", err)
	}

	// Reflection content is per invocation, so it is not bound to Viper
	reflectCmd.Flags().StringVar(&reflectText, "text", "", "Reflection text")
	reflectCmd.Flags().StringVar(&reflectTags, "tags", "", "Comma-separated tags")
	for _, p := range schema.AllPrinciples {
		reflectCmd.Flags().Int(string(p), 0, p.Label()+" score from 1 to 10 (omit to keep current)")
	}
	if err := reflectCmd.MarkFlagRequired("text"); err != nil {
		contract.LogFatal("Error marking reflect flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
