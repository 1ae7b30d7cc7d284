package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	fixturePath string
	todayFlag   string
	jsonOutput  bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "planner",
		Version: "dev",
		Short:   "Run the study planning engine against a JSON fixture",
		Long: `planner loads time blocks, exceptions, classes, tasks and preferences from a
JSON fixture and runs conflict validation, slot generation or schedule assignment
without a database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.PersistentFlags().StringVarP(&fixturePath, "fixture", "f", "-", "fixture file, - reads stdin")
	cmd.PersistentFlags().StringVar(&todayFlag, "today", "", "planning start date (YYYY-MM-DD), overrides the fixture")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON results")

	cmd.AddCommand(newValidateCmd(), newSlotsCmd(), newScheduleCmd(), newTokenCmd())
	return cmd
}

// SetVersion stamps the build version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// DisableColor forces plain output.
func DisableColor() {
	color.NoColor = true
}
