package maxout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/service"
)

func newProfileCmd(a *app) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.session.Profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", profile.Name)
			if current, ok, err := a.session.Weight.Current(cmd.Context()); err != nil {
				return err
			} else if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Current weight: %.2f kg\n", current)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Current weight: not logged")
			}
			if profile.GoalWeightKg != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal weight: %.2f kg\n", *profile.GoalWeightKg)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal weight: not set")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Daily calorie goal: %d kcal\n", profile.DailyCalorieGoal)
			return nil
		},
	}

	var (
		name        string
		goalWeight  float64
		unit        string
		calorieGoal int
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := service.ProfileUpdate{GoalWeightUnit: unit}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("goal-weight") {
				in.GoalWeight = &goalWeight
			}
			if cmd.Flags().Changed("calorie-goal") {
				in.DailyCalorieGoal = &calorieGoal
			}
			if in.Name == nil && in.GoalWeight == nil && in.DailyCalorieGoal == nil {
				return fmt.Errorf("nothing to update (use --name, --goal-weight or --calorie-goal)")
			}
			if _, err := a.session.Profile.Update(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		},
	}
	setCmd.Flags().StringVar(&name, "name", "", "Display name")
	setCmd.Flags().Float64Var(&goalWeight, "goal-weight", 0, "Goal weight")
	setCmd.Flags().StringVar(&unit, "unit", "kg", "Goal weight unit: kg|lb")
	setCmd.Flags().IntVar(&calorieGoal, "calorie-goal", 0, "Daily calorie goal")

	profileCmd.AddCommand(showCmd, setCmd)
	return profileCmd
}
