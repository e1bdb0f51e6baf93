package models

import "time"

type Device struct {
	ID       int64      `json:"id"`
	DeviceID string     `json:"deviceId"`
	Name     string     `json:"name"`
	Location string     `json:"location,omitempty"`
	LastSeen *Timestamp `json:"lastSeen,omitempty"`
}

// Online reports whether the device was seen within the last five minutes,
// mirroring the backend's liveness rule.
func (d *Device) Online() bool {
	if d.LastSeen == nil || d.LastSeen.IsZero() {
		return false
	}
	return time.Since(d.LastSeen.Time) < 5*time.Minute
}
