package alerts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"monitor-swiezosci/internal/models"
)

func overviewWithScore(score int) *models.FreshnessOverview {
	return &models.FreshnessOverview{LatestFreshnessScore: &score, ProductName: "Strawberries"}
}

func TestNotifier_FiresOncePerUnit(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(DefaultThreshold, collector)

	notifier.Observe(7, overviewWithScore(42))
	notifier.Observe(7, overviewWithScore(38))
	notifier.Observe(7, overviewWithScore(12))

	notifications := collector.All()
	require.Len(t, notifications, 1)
	require.Equal(t, int64(7), notifications[0].UnitID)
	require.Equal(t, 42, notifications[0].Score)
	require.Equal(t, "Alert: Low freshness (42%) for Strawberries!", notifications[0].Message)
}

func TestNotifier_UnitsAlertIndependently(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(DefaultThreshold, collector)

	notifier.Observe(7, overviewWithScore(42))
	notifier.Observe(8, overviewWithScore(30))
	notifier.Observe(7, overviewWithScore(20))
	notifier.Observe(8, overviewWithScore(10))

	notifications := collector.All()
	require.Len(t, notifications, 2)
	require.Equal(t, int64(7), notifications[0].UnitID)
	require.Equal(t, int64(8), notifications[1].UnitID)
}

func TestNotifier_RecoveryDoesNotRearm(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(DefaultThreshold, collector)

	notifier.Observe(7, overviewWithScore(42))
	notifier.Observe(7, overviewWithScore(95))
	notifier.Observe(7, overviewWithScore(41))

	require.Len(t, collector.All(), 1)
}

func TestNotifier_ThresholdBoundary(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(60, collector)

	notifier.Observe(1, overviewWithScore(60))
	require.Empty(t, collector.All(), "score at the threshold does not alert")

	notifier.Observe(1, overviewWithScore(59))
	require.Len(t, collector.All(), 1)
}

func TestNotifier_NoScoreNoAlert(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(DefaultThreshold, collector)

	notifier.Observe(1, nil)
	notifier.Observe(1, &models.FreshnessOverview{})
	require.Empty(t, collector.All())
}

func TestNotifier_ProductNameFallback(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(DefaultThreshold, collector)

	score := 10
	notifier.Observe(3, &models.FreshnessOverview{LatestFreshnessScore: &score})

	notifications := collector.All()
	require.Len(t, notifications, 1)
	require.Equal(t, "Alert: Low freshness (10%) for Unit!", notifications[0].Message)
}

func TestNotifier_ZeroThresholdUsesDefault(t *testing.T) {
	collector := &Collector{}
	notifier := NewNotifier(0, collector)

	notifier.Observe(1, overviewWithScore(59))
	require.Len(t, collector.All(), 1)
}
