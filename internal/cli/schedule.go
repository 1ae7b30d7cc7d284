package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Assign the fixture's tasks to study slots",
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

			result := engine.Assigner.CreateOptimalSchedule(fx.Tasks, fx.Preferences, fx.Constraints)
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, result)
			}

			if !result.Success {
				printWarning(out, "generation failed: "+result.Error)
			}
			schedule := result.Effective()
			if schedule == nil {
				return nil
			}
			for _, date := range schedule.Dates() {
				plan := schedule.Daily[date]
				printSection(out, fmt.Sprintf("%s %s", plan.Day, date))
				if len(plan.Tasks) == 0 {
					printDim(out, "nothing scheduled")
				}
				for _, item := range plan.Tasks {
					printSuccess(out, fmt.Sprintf("%s-%s %s (%s)", item.TimeSlot.StartTime, item.TimeSlot.EndTime, item.Task.Title, item.Task.Priority))
				}
			}
			weekly := schedule.Weekly
			printSection(out, "Week")
			printDim(out, "%d task(s), %d min, efficiency %d%%", weekly.TotalTasks, weekly.TotalStudyTime, weekly.Efficiency)
			return nil
		},
	}
}
