package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"monitor-swiezosci/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestWriteReadingsCSV(t *testing.T) {
	readings := []models.SensorReading{
		{
			Timestamp:      models.Timestamp{Time: time.Date(2025, 6, 1, 10, 15, 30, 0, time.UTC)},
			FreshnessScore: intPtr(72),
			VOC:            floatPtr(1.25),
			Temperature:    floatPtr(4.5),
			Humidity:       floatPtr(88),
			ComputedPrice:  floatPtr(12.5),
		},
		{
			Timestamp: models.Timestamp{Time: time.Date(2025, 6, 1, 10, 16, 0, 0, time.UTC)},
			// Sensors can report partial rows; missing values export empty.
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteReadingsCSV(&buf, readings))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "timestamp,freshnessScore,voc,temperature,humidity,computedPrice", lines[0])
	require.Equal(t, "2025-06-01T10:15:30,72,1.25,4.5,88,12.5", lines[1])
	require.Equal(t, "2025-06-01T10:16:00,,,,,", lines[2])
}

func TestParseRange(t *testing.T) {
	start, end, err := parseRange("2025-06-01T00:00:00", "2025-06-02T12:30:00")
	require.NoError(t, err)
	require.True(t, end.After(start))

	_, _, err = parseRange("2025-06-01T00:00:00", "")
	require.Error(t, err)

	_, _, err = parseRange("2025-06-02T00:00:00", "2025-06-01T00:00:00")
	require.Error(t, err)

	_, _, err = parseRange("junk", "2025-06-01T00:00:00")
	require.Error(t, err)
}

func TestRenderOverview(t *testing.T) {
	timestamp := models.Timestamp{Time: time.Date(2025, 6, 1, 10, 15, 30, 0, time.UTC)}
	overview := &models.FreshnessOverview{
		UnitID:                 5,
		ProductName:            "Strawberries",
		LatestFreshnessScore:   intPtr(72),
		CurrentPrice:           floatPtr(12.5),
		InventoryCount:         intPtr(10),
		LatestReadingTimestamp: &timestamp,
	}

	var buf strings.Builder
	renderOverview(&buf, overview)
	out := buf.String()

	require.Contains(t, out, "Unit 5 - Strawberries")
	require.Contains(t, out, "Freshness score: 72%")
	require.Contains(t, out, "Current price:   $12.50")
	require.Contains(t, out, "Inventory:       10")
	require.Contains(t, out, "Last update:     2025-06-01 10:15:30")
	require.Contains(t, out, "Status:          Fresh")
}

func TestRenderOverview_MissingValues(t *testing.T) {
	var buf strings.Builder
	renderOverview(&buf, &models.FreshnessOverview{UnitID: 2, UnitName: "Shelf B"})
	out := buf.String()

	require.Contains(t, out, "Shelf B")
	require.Contains(t, out, "Freshness score: N/A")
	require.Contains(t, out, "Current price:   -")
	require.Contains(t, out, "Last update:     N/A")
	require.Contains(t, out, "Status:          Unknown")
}

func TestFormatHelpers(t *testing.T) {
	require.Equal(t, "-", formatPrice(nil))
	require.Equal(t, "$9.75", formatPrice(floatPtr(9.75)))
	require.Equal(t, "-", formatCount(nil))
	require.Equal(t, "12", formatCount(intPtr(12)))
	require.Equal(t, "N/A", formatFloat(nil, 2))
	require.Equal(t, "3.14", formatFloat(floatPtr(3.14159), 2))
	require.Equal(t, "-", productName(nil))
}
