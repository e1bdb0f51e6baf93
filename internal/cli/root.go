package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/api"
	"monitor-swiezosci/internal/config"
	"monitor-swiezosci/internal/session"
)

// App carries the wired dependencies every command needs.
type App struct {
	Config  *config.Config
	Session *session.Store
	Client  *api.Client
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the agent's command tree.
func NewRootCommand(app *App) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "monitor-swiezosci",
		Short: "Client for the smart-freshness monitoring backend",
		Long: `Command-line companion for the smart-freshness backend: authenticate,
browse monitored units, watch a unit's live freshness feed, export readings
and manage devices, products and users.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewLoginCommand(app, opts))
	cmd.AddCommand(NewSignupCommand(app, opts))
	cmd.AddCommand(NewLogoutCommand(app, opts))
	cmd.AddCommand(NewUnitsCommand(app, opts))
	cmd.AddCommand(NewOverviewCommand(app, opts))
	cmd.AddCommand(NewWatchCommand(app, opts))
	cmd.AddCommand(NewReadingsCommand(app, opts))
	cmd.AddCommand(NewDevicesCommand(app, opts))
	cmd.AddCommand(NewProductsCommand(app, opts))
	cmd.AddCommand(NewUsersCommand(app, opts))
	cmd.AddCommand(NewAlertsCommand(app, opts))
	cmd.AddCommand(NewAnalyticsCommand(app, opts))
	cmd.AddCommand(NewReportCommand(app, opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// printJSON writes v as indented JSON, used by every command in json format.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// requireSession guards authenticated commands with a friendly message.
func requireSession(app *App) error {
	if !app.Session.Authenticated() {
		return fmt.Errorf("not logged in: run `monitor-swiezosci login` first")
	}
	if app.Session.Expired() {
		return fmt.Errorf("session expired: run `monitor-swiezosci login` again")
	}
	return nil
}
