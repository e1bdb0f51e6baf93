package models

type SensorReading struct {
	ID             int64     `json:"id"`
	Unit           *Unit     `json:"unit,omitempty"`
	Device         *Device   `json:"device,omitempty"`
	VOC            *float64  `json:"voc"`
	Temperature    *float64  `json:"temperature"`
	Humidity       *float64  `json:"humidity"`
	FreshnessScore *int      `json:"freshnessScore"`
	ComputedPrice  *float64  `json:"computedPrice"`
	Timestamp      Timestamp `json:"timestamp"`
}

// FreshnessOverview is the snapshot the dashboard lives on. It is replaced
// wholesale by every fetch and every feed message, never merged.
type FreshnessOverview struct {
	UnitID                 int64      `json:"unitId"`
	UnitName               string     `json:"unitName,omitempty"`
	ProductName            string     `json:"productName,omitempty"`
	LatestFreshnessScore   *int       `json:"latestFreshnessScore"`
	CurrentPrice           *float64   `json:"currentPrice"`
	InventoryCount         *int       `json:"inventoryCount"`
	VOC                    *float64   `json:"voc"`
	Temperature            *float64   `json:"temperature"`
	Humidity               *float64   `json:"humidity"`
	LatestReadingTimestamp *Timestamp `json:"latestReadingTimestamp,omitempty"`
	FreshnessStatus        string     `json:"freshnessStatus,omitempty"`
	DiscountPercentage     *int       `json:"discountPercentage,omitempty"`
}

// Status buckets the score the same way the dashboard does.
func (o *FreshnessOverview) Status() string {
	if o.LatestFreshnessScore == nil {
		return "Unknown"
	}
	switch score := *o.LatestFreshnessScore; {
	case score > 70:
		return "Fresh"
	case score > 40:
		return "Moderate"
	default:
		return "Spoiling"
	}
}
