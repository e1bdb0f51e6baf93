package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/models"
)

func NewAlertsCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Alert history and configuration (admin)",
	}

	cmd.AddCommand(newAlertsRecentCommand(app, rootOpts))
	cmd.AddCommand(newAlertsUnitCommand(app, rootOpts))
	cmd.AddCommand(newAlertsConfigCommand(app, rootOpts))
	return cmd
}

func newAlertsRecentCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Alerts from the last 24 hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			alerts, err := app.Client.RecentAlerts(cmd.Context())
			if err != nil {
				return err
			}
			return renderAlerts(cmd, rootOpts, alerts)
		},
	}
}

func newAlertsUnitCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unit <unitId>",
		Short: "Alerts for one unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}
			alerts, err := app.Client.AlertsForUnit(cmd.Context(), id)
			if err != nil {
				return err
			}
			return renderAlerts(cmd, rootOpts, alerts)
		},
	}
}

func newAlertsConfigCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var threshold, cooldown int

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the alert configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			cfg, err := app.Client.AlertConfig(cmd.Context())
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Freshness threshold: %d\nCooldown minutes:    %d\n",
				cfg.FreshnessThreshold, cfg.CooldownMinutes)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update the alert configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(app); err != nil {
				return err
			}
			err := app.Client.UpdateAlertConfig(cmd.Context(), models.AlertConfig{
				FreshnessThreshold: threshold,
				CooldownMinutes:    cooldown,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Alert configuration updated")
			return nil
		},
	}
	set.Flags().IntVar(&threshold, "threshold", 60, "freshness threshold")
	set.Flags().IntVar(&cooldown, "cooldown", 30, "cooldown minutes")
	cmd.AddCommand(set)

	return cmd
}

func renderAlerts(cmd *cobra.Command, rootOpts *RootOptions, alerts []models.Alert) error {
	if rootOpts.Format == "json" {
		return printJSON(cmd.OutOrStdout(), alerts)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUNIT\tSCORE\tSENT\tMESSAGE")
	for _, a := range alerts {
		unit := "-"
		if a.Unit != nil {
			unit = strconv.FormatInt(a.Unit.ID, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n", a.ID, unit, formatCount(a.FreshnessScore), a.Sent, a.Message)
	}
	return tw.Flush()
}
