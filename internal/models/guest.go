package models

import "time"

// Guest is the CRM record a booking links to through Booking.GuestID. The
// link survives calendar syncs so identity data collected at reception is
// never lost when the feed refreshes a reservation.
type Guest struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	PropertyID string    `gorm:"index;not null" json:"property_id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Rating     int       `json:"rating"`
	TotalStays int       `json:"total_stays"`
	LastStay   string    `gorm:"type:varchar(10)" json:"last_stay"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
