package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/uli/core"
	"github.com/huangsam/uli/schema"
	"github.com/spf13/cobra"
)

// trainCmd groups the practice exercise commands.
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Browse and run guided practice exercises.",
	Long: `Each principle has a short guided exercise.

Subcommands:
  list  - Show the exercise catalog
  start - Run a timed session for one principle`,
}

// trainListCmd shows the exercise catalog.
var trainListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the exercise catalog.",
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteTrainList, "Cannot list exercises")
	},
}

// trainStartCmd runs a timed session.
var trainStartCmd = &cobra.Command{
	Use:   "start <principle>",
	Short: "Run a timed practice session.",
	Long: `Show the exercise prompt and count down its duration.

Press q or Ctrl+C to stop early. Nothing is stored; log what you noticed
afterwards with 'uli reflect'.

Examples:
  uli train start r3
  uli train start lps`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		p := schema.Principle(strings.ToLower(strings.TrimSpace(args[0])))
		if _, ok := schema.ValidPrinciples[p]; !ok {
			return fmt.Errorf("unknown principle '%s'. must be one of r3, phcb, apd, lps, cdr, eia", args[0])
		}
		return configSetupWrapper(cmd, args)
	},
	Run: func(_ *cobra.Command, args []string) {
		p := schema.Principle(strings.ToLower(strings.TrimSpace(args[0])))
		run(core.ExecuteTrainStart(p), "Cannot run practice session")
	},
}
