package models

import "time"

type Property struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	ManagerName  string    `json:"manager_name"`
	ManagerEmail string    `json:"manager_email"`
	ManagerPhone string    `json:"manager_phone"`
	AirbnbURL    string    `json:"airbnb_url,omitempty"`
	ICalURL      string    `json:"ical_url,omitempty"`
	IsConfigured bool      `json:"is_configured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
