package models

import "encoding/json"

// Envelope is the backend's `{status, data}` / `{status, message}` wrapper used
// by the freshness and admin endpoints. Data stays raw so callers decode it into
// the type they expect.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Count   *int            `json:"count,omitempty"`
}

func (e *Envelope) OK() bool {
	return e.Status == "success"
}
