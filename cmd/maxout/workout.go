package maxout

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/metrics"
)

func newWorkoutCmd(a *app) *cobra.Command {
	workoutCmd := &cobra.Command{
		Use:   "workout",
		Short: "Browse and complete workout plans",
	}

	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "List workout plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.session.Plans.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tDIFFICULTY\tMINUTES\tMUSCLES")
			for _, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Difficulty, p.DurationMin, strings.Join(p.TargetMuscleGroups, ","))
			}
			return nil
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <plan-id>",
		Short: "Mark a workout plan completed today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, out, err := a.session.CompletePlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !out.Recorded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already completed today\n", plan.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s (streak: %d day(s))\n", plan.Name, out.Streak)
			reportOutcome(cmd.OutOrStdout(), metrics.LedgerWorkout, out)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show completed workouts and the current streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			count, err := a.session.Workouts.CompletedCount(ctx)
			if err != nil {
				return err
			}
			streak, err := a.session.Workouts.Streak(ctx)
			if err != nil {
				return err
			}
			plans, err := a.session.Plans.List(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed workouts: %d\n", count)
			fmt.Fprintf(cmd.OutOrStdout(), "Workout streak: %d day(s)\n", streak)
			for _, p := range plans {
				done, err := a.session.Workouts.IsCompletedToday(ctx, p.ID)
				if err != nil {
					return err
				}
				mark := " "
				if done {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\n", mark, p.ID, p.Name)
			}
			return nil
		},
	}

	workoutCmd.AddCommand(plansCmd, completeCmd, statusCmd)
	return workoutCmd
}
