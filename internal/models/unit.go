package models

type Unit struct {
	ID             int64    `json:"id"`
	Product        *Product `json:"product,omitempty"`
	Name           string   `json:"name"`
	Location       string   `json:"location,omitempty"`
	InventoryCount *int     `json:"inventoryCount"`
	CurrentPrice   *float64 `json:"currentPrice"`
}

type Product struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category,omitempty"`
	Description     string   `json:"description,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	BasePrice       *float64 `json:"basePrice"`
	LowSeasonPrice  *float64 `json:"lowSeasonPrice,omitempty"`
	MidSeasonPrice  *float64 `json:"midSeasonPrice,omitempty"`
	HighSeasonPrice *float64 `json:"highSeasonPrice,omitempty"`
	CurrentSeason   string   `json:"currentSeason,omitempty"`
}
