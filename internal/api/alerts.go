package api

import (
	"context"
	"fmt"

	"monitor-swiezosci/internal/models"
)

func (c *Client) RecentAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.doJSON(ctx, "GET", "/api/alerts/recent", nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) AlertsForUnit(ctx context.Context, unitID int64) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.doJSON(ctx, "GET", fmt.Sprintf("/api/alerts/unit/%d", unitID), nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) AlertConfig(ctx context.Context) (*models.AlertConfig, error) {
	var cfg models.AlertConfig
	if err := c.doJSON(ctx, "GET", "/api/alerts/config", nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateAlertConfig(ctx context.Context, cfg models.AlertConfig) error {
	return c.doEnvelope(ctx, "PUT", "/api/alerts/config", nil, map[string]int{
		"freshnessThreshold": cfg.FreshnessThreshold,
		"cooldownMinutes":    cfg.CooldownMinutes,
	}, nil)
}
