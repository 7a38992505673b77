package cmd

import (
	"github.com/huangsam/uli/core"
	"github.com/huangsam/uli/schema"
	"github.com/spf13/cobra"
)

// Per-invocation reflection content.
var (
	reflectText string
	reflectTags string
)

// reflectCmd logs one reflection.
var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Log a reflection with principle scores.",
	Long: `Store a reflection together with a score snapshot.

Scores not given on the command line keep their current value (5 before the
first reflection). Each reflection extends the score history used by the
dashboard, trend and streak.

Examples:
  # Log a reflection and adjust two scores
  uli reflect --text "Noticed myself noticing" --tags focus,morning --r3 7 --lps 4

  # Log text only
  uli reflect --text "Quiet day"`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		in := core.ReflectInput{Text: reflectText, Tags: reflectTags, Scores: make(map[schema.Principle]int)}
		for _, p := range schema.AllPrinciples {
			if !cmd.Flags().Changed(string(p)) {
				continue
			}
			v, _ := cmd.Flags().GetInt(string(p))
			in.Scores[p] = v
		}
		run(core.ExecuteReflect(in), "Cannot log reflection")
	},
}

// historyCmd searches past reflections.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past reflections, newest first.",
	Long: `Show stored reflections with optional filters.

Examples:
  # Everything mentioning breathing
  uli history --search breathing

  # Reflections tagged focus in the last two weeks
  uli history --tag focus --since "2 weeks ago"

  # Export to CSV
  uli history --output csv --output-file reflections.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteHistory, "Cannot list history")
	},
}

// tagsCmd lists the tag index.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag with the number of reflections carrying it.",
	Example: `  uli tags
  uli tags --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteTags, "Cannot list tags")
	},
}
