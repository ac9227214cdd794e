package maxout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/metrics"
	"github.com/saadjs/maxout/internal/service"
)

func newFoodCmd(a *app) *cobra.Command {
	foodCmd := &cobra.Command{
		Use:   "food",
		Short: "Track calorie intake",
	}

	var (
		food     string
		calories int
		meal     string
		date     string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calorie entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(date)
			if err != nil {
				return err
			}
			entry, out, err := a.session.LogFood(cmd.Context(), service.FoodInput{Food: food, Calories: calories, Meal: meal, Day: day})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d kcal, %s) as %s\n", entry.Food, entry.Calories, entry.Meal, entry.ID)
			if out.StreakComputed {
				fmt.Fprintf(cmd.OutOrStdout(), "Tracking streak: %d day(s)\n", out.Streak)
			}
			reportOutcome(cmd.OutOrStdout(), metrics.LedgerNutrition, out)
			return nil
		},
	}
	addCmd.Flags().StringVar(&food, "food", "", "Food label")
	addCmd.Flags().IntVar(&calories, "calories", 0, "Calories")
	addCmd.Flags().StringVar(&meal, "meal", "snack", "Meal: breakfast|lunch|dinner|snack")
	addCmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = addCmd.MarkFlagRequired("food")
	_ = addCmd.MarkFlagRequired("calories")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a calorie entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.session.Nutrition.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("calorie entry %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed calorie entry %s\n", args[0])
			return nil
		},
	}

	var listDate, listMeal string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List calorie entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(listDate)
			if err != nil {
				return err
			}
			filter := service.CalorieEntryFilter{Day: day}
			if listMeal != "" {
				if filter.Meal, err = service.ParseMealType(listMeal); err != nil {
					return err
				}
			}
			items, err := a.session.Nutrition.Entries(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tMEAL\tCALORIES\tFOOD")
			for _, e := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%s\n", e.ID, e.Day, e.Meal, e.Calories, e.Food)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listDate, "date", "", "Filter by date YYYY-MM-DD")
	listCmd.Flags().StringVar(&listMeal, "meal", "", "Filter by meal")

	var totalDate string
	totalCmd := &cobra.Command{
		Use:   "total",
		Short: "Show total calories for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(totalDate)
			if err != nil {
				return err
			}
			if day.IsZero() {
				day = a.session.Date()
			}
			total, err := a.session.Nutrition.TotalForDate(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d kcal\n", day, total)
			return nil
		},
	}
	totalCmd.Flags().StringVar(&totalDate, "date", "", "Date YYYY-MM-DD (default today)")

	foodCmd.AddCommand(addCmd, rmCmd, listCmd, totalCmd)
	return foodCmd
}
