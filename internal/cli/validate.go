package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the fixture's candidate schedule for conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := readFixture(fixturePath, cmd.InOrStdin())
			if err != nil {
				return err
			}
			engine, err := fx.Engine(todayFlag)
			if err != nil {
				return err
			}

			result := engine.Validator.Validate(fx.CandidateSchedule)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, result)
			}

			printSection(out, fmt.Sprintf("Validated %d item(s)", len(fx.CandidateSchedule)))
			if len(result.Conflicts) == 0 {
				printSuccess(out, "no conflicts")
			}
			for _, conflict := range result.Conflicts {
				printError(out, fmt.Sprintf("%s %s-%s: %s", conflict.Item.Date, conflict.Item.Start, conflict.Item.End, conflict.Reason))
			}
			for _, warning := range result.Warnings {
				printWarning(out, fmt.Sprintf("%s: %s", warning.Date, warning.Reason))
			}
			for _, suggestion := range result.Suggestions {
				printDim(out, "%s", suggestion)
			}
			return nil
		},
	}
}
