package maxout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/service"
)

func newAchievementsCmd(a *app) *cobra.Command {
	var filterFlag string
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := service.ParseAchievementFilter(filterFlag)
			if err != nil {
				return err
			}
			items, err := a.session.Achievements.List(cmd.Context())
			if err != nil {
				return err
			}
			summary := service.SummarizeAchievements(items)
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %d/%d (%d%%)\n", summary.Unlocked, summary.Total, summary.Percent)
			fmt.Fprintln(cmd.OutOrStdout(), "STATUS\tID\tTITLE\tPROGRESS")
			for _, item := range service.FilterAchievements(items, filter) {
				status := "locked"
				if item.Unlocked {
					status = "unlocked"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", status, item.ID, item.Title, progressLabel(item))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filterFlag, "filter", "all", "Filter: all|unlocked|locked")
	return cmd
}
