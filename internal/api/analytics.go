package api

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) AnalyticsSummary(ctx context.Context) (map[string]any, error) {
	var summary map[string]any
	if err := c.doJSON(ctx, "GET", "/api/analytics/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *Client) FreshnessTrend(ctx context.Context, days int) ([]map[string]any, error) {
	query := url.Values{"days": {strconv.Itoa(days)}}
	var trend []map[string]any
	if err := c.doJSON(ctx, "GET", "/api/analytics/freshness-trend", query, nil, &trend); err != nil {
		return nil, err
	}
	return trend, nil
}

func (c *Client) FreshnessDistribution(ctx context.Context) (map[string]int64, error) {
	var distribution map[string]int64
	if err := c.doJSON(ctx, "GET", "/api/analytics/freshness-distribution", nil, nil, &distribution); err != nil {
		return nil, err
	}
	return distribution, nil
}

func (c *Client) WasteMetrics(ctx context.Context) (map[string]any, error) {
	var metrics map[string]any
	if err := c.doJSON(ctx, "GET", "/api/analytics/waste-metrics", nil, nil, &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}
