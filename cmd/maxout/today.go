package maxout

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTodayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's intake, weight, streaks and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.session.Today(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Intake: %d / %d kcal (remaining %d)\n", status.IntakeCalories, status.CalorieGoal, status.RemainingCalories)
			if status.HasWeight {
				fmt.Fprintf(out, "Weight: %.2f kg (%+.2f kg since first entry)\n", status.CurrentWeightKg, status.WeightChangeKg)
			} else {
				fmt.Fprintln(out, "Weight: not logged")
			}
			if status.GoalWeightKg != nil {
				fmt.Fprintf(out, "Goal weight: %.2f kg\n", *status.GoalWeightKg)
			}
			fmt.Fprintf(out, "Streaks: nutrition %d day(s) | workouts %d day(s)\n", status.NutritionStreak, status.WorkoutStreak)
			fmt.Fprintf(out, "Completed workouts: %d\n", status.CompletedWorkouts)
			fmt.Fprintf(out, "Achievements: %d/%d (%d%%)\n", status.Achievements.Unlocked, status.Achievements.Total, status.Achievements.Percent)
			if len(status.InProgress) > 0 {
				fmt.Fprintf(out, "In progress: %s\n", strings.Join(status.InProgress, ", "))
			}
			return nil
		},
	}
}
