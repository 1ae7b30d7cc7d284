package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berryseed/327project-group10/internal/dto"
)

func newSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "Generate a week of study and break slots",
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

			result := engine.Generator.GenerateTimeSlots(fx.Tasks, fx.Preferences, fx.AvailableTime)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, result)
			}

			days := result.TimeSlots
			if !result.Success {
				printWarning(out, "generation failed: "+result.Error)
				if result.Fallback == nil {
					return nil
				}
				days = result.Fallback.TimeSlots
			}
			for _, day := range days {
				printSection(out, fmt.Sprintf("%s %s", day.Day, day.Date))
				for _, slot := range day.Slots {
					line := fmt.Sprintf("%s-%s %3dm %s", slot.StartTime, slot.EndTime, slot.Duration, slot.Type)
					switch {
					case slot.Type == dto.SlotBreak:
						printDim(out, "%s", line)
					case slot.Available:
						printSuccess(out, line)
					default:
						printError(out, line)
					}
				}
			}
			return nil
		},
	}
}
