package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"monitor-swiezosci/internal/models"
)

// NewReadingsCommand fetches historical readings, optionally by date range,
// and renders them or exports CSV.
func NewReadingsCommand(app *App, rootOpts *RootOptions) *cobra.Command {
	var startFlag, endFlag, csvPath string

	cmd := &cobra.Command{
		Use:   "readings <unitId>",
		Short: "Fetch sensor readings for a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unit id %q", args[0])
			}

			var readings []models.SensorReading
			if startFlag != "" || endFlag != "" {
				start, end, err := parseRange(startFlag, endFlag)
				if err != nil {
					return err
				}
				readings, err = app.Client.ReadingsRange(cmd.Context(), id, start, end)
				if err != nil {
					return err
				}
			} else {
				readings, err = app.Client.Readings(cmd.Context(), id)
				if err != nil {
					return err
				}
			}

			if csvPath != "" {
				file, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv file: %w", err)
				}
				defer file.Close()
				if err := WriteReadingsCSV(file, readings); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d readings to %s\n", len(readings), csvPath)
				return nil
			}

			if rootOpts.Format == "json" {
				return printJSON(cmd.OutOrStdout(), readings)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIMESTAMP\tSCORE\tVOC\tTEMP\tHUMIDITY\tPRICE")
			for _, r := range readings {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.Timestamp.Format("2006-01-02 15:04:05"),
					formatCount(r.FreshnessScore),
					formatFloat(r.VOC, 2), formatFloat(r.Temperature, 1),
					formatFloat(r.Humidity, 1), formatPrice(r.ComputedPrice))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "range start (2006-01-02T15:04:05)")
	cmd.Flags().StringVar(&endFlag, "end", "", "range end (2006-01-02T15:04:05)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "export readings to a CSV file")
	return cmd
}

func parseRange(startFlag, endFlag string) (time.Time, time.Time, error) {
	const layout = "2006-01-02T15:04:05"
	if startFlag == "" || endFlag == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--start and --end must be set together")
	}
	start, err := time.Parse(layout, startFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(layout, endFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end is before --start")
	}
	return start, end, nil
}

var csvHeader = []string{"timestamp", "freshnessScore", "voc", "temperature", "humidity", "computedPrice"}

// WriteReadingsCSV writes readings in the column layout the dashboard's
// export used.
func WriteReadingsCSV(w io.Writer, readings []models.SensorReading) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range readings {
		record := []string{
			r.Timestamp.Format("2006-01-02T15:04:05"),
			csvInt(r.FreshnessScore),
			csvFloat(r.VOC),
			csvFloat(r.Temperature),
			csvFloat(r.Humidity),
			csvFloat(r.ComputedPrice),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
