package maxout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/metrics"
	"github.com/saadjs/maxout/internal/service"
)

func newWeightCmd(a *app) *cobra.Command {
	weightCmd := &cobra.Command{
		Use:   "weight",
		Short: "Log and review body weight",
	}

	var (
		weight float64
		unit   string
		date   string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a weight entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDayFlag(date)
			if err != nil {
				return err
			}
			entry, out, err := a.session.LogWeight(cmd.Context(), service.WeightInput{Weight: weight, Unit: unit, Day: day})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f kg on %s\n", entry.WeightKg, entry.Day)
			reportOutcome(cmd.OutOrStdout(), metrics.LedgerWeight, out)
			return nil
		},
	}
	addCmd.Flags().Float64Var(&weight, "weight", 0, "Body weight")
	addCmd.Flags().StringVar(&unit, "unit", "kg", "Weight unit: kg|lb")
	addCmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	_ = addCmd.MarkFlagRequired("weight")

	var outUnit string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List weight history",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.session.Weight.History(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tUNIT")
			for _, e := range items {
				v, err := service.WeightFromKg(e.WeightKg, outUnit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\n", e.Day, v, outUnit)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&outUnit, "unit", "kg", "Output unit: kg|lb")

	weightCmd.AddCommand(addCmd, listCmd)
	return weightCmd
}
