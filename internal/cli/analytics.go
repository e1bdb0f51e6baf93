package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func NewAnalyticsCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Dashboard analytics summaries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Dashboard summary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Client.AnalyticsSummary(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			return renderMap(cmd, summary)
		},
	})

	var days int
	trend := &cobra.Command{
		Use:   "trend",
		Short: "Freshness trend over recent days",
		RunE: func(cmd *cobra.Command, args []string) error {
			trend, err := app.Client.FreshnessTrend(cmd.Context(), days)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), trend)
		},
	}
	trend.Flags().IntVar(&days, "days", 7, "number of days")
	cmd.AddCommand(trend)

	cmd.AddCommand(&cobra.Command{
		Use:   "distribution",
		Short: "Freshness score distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			distribution, err := app.Client.FreshnessDistribution(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), distribution)
			}
			keys := make([]string, 0, len(distribution))
			for k := range distribution {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d\n", k, distribution[k])
			}
			return nil
		},
	})

	return cmd
}

func renderMap(cmd *cobra.Command, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %v\n", k, m[k])
	}
	return nil
}
