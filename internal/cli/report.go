package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/api"
)

// NewReportCommand downloads one of the backend's PDF reports to disk.
func NewReportCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var unitID int64
	var outPath string

	cmd := &cobra.Command{
		Use:       "report <inventory|products|freshness>",
		Short:     "Download a PDF report (admin)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"inventory", "products", "freshness"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}

			report := api.Report(args[0])
			if report == api.ReportFreshness && unitID == 0 {
				return fmt.Errorf("--unit is required for the freshness report")
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer file.Close()

			n, err := app.Client.DownloadReport(cmd.Context(), report, unitID, file)
			if err != nil {
				os.Remove(outPath)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", outPath, n)
			return nil
		},
	}

	cmd.Flags().Int64Var(&unitID, "unit", 0, "unit id (freshness report only)")
	cmd.Flags().StringVar(&outPath, "out", "report.pdf", "output file")
	return cmd
}
