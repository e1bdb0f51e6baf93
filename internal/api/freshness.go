package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"monitor-swiezosci/internal/models"
)

// rangeLayout matches the backend's ISO date-time query parameter format.
const rangeLayout = "2006-01-02T15:04:05"

// Overview fetches the current freshness snapshot for one unit. This is the
// polling fallback behind the live feed: callers replace their snapshot
// wholesale on success and keep the last known one on failure.
func (c *Client) Overview(ctx context.Context, unitID int64) (*models.FreshnessOverview, error) {
	var overview models.FreshnessOverview
	if err := c.doEnvelope(ctx, "GET", fmt.Sprintf("/api/freshness/overview/%d", unitID), nil, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Readings returns the most recent sensor readings for a unit.
func (c *Client) Readings(ctx context.Context, unitID int64) ([]models.SensorReading, error) {
	var readings []models.SensorReading
	if err := c.doEnvelope(ctx, "GET", fmt.Sprintf("/api/freshness/readings/%d", unitID), nil, nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// ReadingsRange returns readings between start and end, for charting and
// export.
func (c *Client) ReadingsRange(ctx context.Context, unitID int64, start, end time.Time) ([]models.SensorReading, error) {
	query := url.Values{
		"start": {start.Format(rangeLayout)},
		"end":   {end.Format(rangeLayout)},
	}
	var readings []models.SensorReading
	if err := c.doEnvelope(ctx, "GET", fmt.Sprintf("/api/freshness/readings/%d/range", unitID), query, nil, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (c *Client) LatestReading(ctx context.Context, unitID int64) (*models.SensorReading, error) {
	var reading models.SensorReading
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/api/freshness/latest/%d", unitID), nil, nil, &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}
