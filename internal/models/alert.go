package models

type Alert struct {
	ID             int64      `json:"id"`
	Unit           *Unit      `json:"unit,omitempty"`
	FreshnessScore *int       `json:"freshnessScore"`
	Message        string     `json:"message"`
	Recipients     string     `json:"recipients,omitempty"`
	Sent           bool       `json:"sent"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      *Timestamp `json:"createdAt,omitempty"`
	SentAt         *Timestamp `json:"sentAt,omitempty"`
}

type AlertConfig struct {
	FreshnessThreshold int `json:"freshnessThreshold"`
	CooldownMinutes    int `json:"cooldownMinutes"`
}
