package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/models"
)

func NewOverviewCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview <unitId>",
		Short: "Fetch the current freshness snapshot for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}

			overview, err := app.Client.Overview(cmd.Context(), id)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), overview)
			}
			renderOverview(cmd.OutOrStdout(), overview)
			return nil
		},
	}
}

// renderOverview mirrors the dashboard cards: score, price, inventory, sensor
// values, last update and the Fresh/Moderate/Spoiling status bucket.
func renderOverview(w io.Writer, o *models.FreshnessOverview) {
	name := o.UnitName
	if name == "" {
		name = fmt.Sprintf("Unit %d", o.UnitID)
	}
	fmt.Fprintf(w, "%s", name)
	if o.ProductName != "" {
		fmt.Fprintf(w, " - %s", o.ProductName)
	}
	fmt.Fprintln(w)

	if o.LatestFreshnessScore != nil {
		fmt.Fprintf(w, "  Freshness score: %d%%\n", *o.LatestFreshnessScore)
	} else {
		fmt.Fprintln(w, "  Freshness score: N/A")
	}
	fmt.Fprintf(w, "  Current price:   %s\n", formatPrice(o.CurrentPrice))
	fmt.Fprintf(w, "  Inventory:       %s\n", formatCount(o.InventoryCount))
	fmt.Fprintf(w, "  VOC:             %s\n", formatFloat(o.VOC, 2))
	fmt.Fprintf(w, "  Temperature:     %s °C\n", formatFloat(o.Temperature, 1))
	fmt.Fprintf(w, "  Humidity:        %s %%\n", formatFloat(o.Humidity, 1))
	if o.LatestReadingTimestamp != nil && !o.LatestReadingTimestamp.IsZero() {
		fmt.Fprintf(w, "  Last update:     %s\n", o.LatestReadingTimestamp.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Fprintln(w, "  Last update:     N/A")
	}
	fmt.Fprintf(w, "  Status:          %s\n", o.Status())
}

func formatFloat(v *float64, precision int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}
