package maxout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/metrics"
	"github.com/saadjs/maxout/internal/service"
)

func newStrengthCmd(a *app) *cobra.Command {
	strengthCmd := &cobra.Command{
		Use:   "strength",
		Short: "Record lifts per exercise",
	}

	var (
		exercise string
		weight   float64
		unit     string
		date     string
	)
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record a lift",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(date)
			if err != nil {
				return err
			}
			lift, out, err := a.session.Strength.Record(cmd.Context(), service.LiftInput{Exercise: exercise, Weight: weight, Unit: unit, Day: day})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s at %.2f kg\n", lift.Exercise, lift.WeightKg)
			reportOutcome(cmd.OutOrStdout(), metrics.LedgerStrength, out)
			return nil
		},
	}
	recordCmd.Flags().StringVar(&exercise, "exercise", "", "Exercise name")
	recordCmd.Flags().Float64Var(&weight, "weight", 0, "Weight lifted")
	recordCmd.Flags().StringVar(&unit, "unit", "kg", "Weight unit: kg|lb")
	recordCmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = recordCmd.MarkFlagRequired("exercise")
	_ = recordCmd.MarkFlagRequired("weight")

	var listExercise string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded lifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			lifts, err := a.session.Strength.Lifts(cmd.Context(), listExercise)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tEXERCISE\tWEIGHT_KG")
			for _, l := range lifts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.2f\n", l.ID, l.Day, l.Exercise, l.WeightKg)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listExercise, "exercise", "", "Filter by exercise")

	strengthCmd.AddCommand(recordCmd, listCmd)
	return strengthCmd
}
