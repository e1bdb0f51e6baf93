package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/alerts"
	"monitor-swiezosci/internal/feed"
	"monitor-swiezosci/internal/status"
)

// NewWatchCommand runs the live dashboard loop: snapshot bootstrap, feed
// subscription with reconnect, low-freshness alerts and the local status
// listener. It blocks until interrupted.
func NewWatchCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var unitID int64
	var noStatus bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a unit's live freshness feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if unitID == 0 {
				units, err := app.Client.Units(ctx)
				if err != nil {
					return fmt.Errorf("list units: %w", err)
				}
				if len(units) == 0 {
					return fmt.Errorf("no units to watch")
				}
				unitID = units[0].ID
			}

			notifier := alerts.NewNotifier(app.Config.Alert.Threshold, alerts.LogSink{})
			watcher := feed.NewWatcher(app.Client, app.Config.WebSocketURL(), notifier)
			watcher.Bind(ctx)

			done := make(chan struct{})
			go func() {
				defer close(done)
				watcher.Run(ctx, app.Config.Poll.Interval)
			}()

			if !noStatus {
				server := status.NewServer(watcher)
				go func() {
					if err := server.Serve(ctx, app.Config.Status.Addr); err != nil {
						log.Printf("[status] server stopped: %v", err)
					}
				}()
			}

			log.Printf("watching unit %d (interrupt to stop)", unitID)
			watcher.SetUnit(unitID)

			<-ctx.Done()
			<-done
			return nil
		},
	}

	cmd.Flags().Int64Var(&unitID, "unit", 0, "unit to watch (defaults to the first unit)")
	cmd.Flags().BoolVar(&noStatus, "no-status", false, "disable the local status listener")
	return cmd
}
