package models

import "strings"

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"password,omitempty"`
	Roles       string     `json:"roles,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
}

// HasRole checks the comma-separated roles string, e.g. "ROLE_USER,ROLE_ADMIN".
func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}
