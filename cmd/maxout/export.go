package maxout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/maxout/internal/service"
)

func newExportCmd(a *app) *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session data (json or csv)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				data, err := a.session.Export(cmd.Context())
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if _, err := fmt.Fprintln(w, string(b)); err != nil {
					return fmt.Errorf("write export json: %w", err)
				}
			case "csv":
				entries, err := a.session.Nutrition.Entries(cmd.Context(), service.CalorieEntryFilter{})
				if err != nil {
					return err
				}
				if err := service.WriteCaloriesCSV(w, entries); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", format)
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Format: json|csv (csv holds calorie entries)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")
	return cmd
}
