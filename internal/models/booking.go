package models

import "time"

type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "Upcoming"
	StatusCheckedIn BookingStatus = "Checked In"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

type BookingSource string

const (
	SourceAirbnb BookingSource = "Airbnb"
	SourceManual BookingSource = "Manual"
	SourceDirect BookingSource = "Direct"
)

// PlaceholderGuestName is the sentinel label used when the feed withholds the
// real guest identity (privacy-redacted summaries, missing SUMMARY lines).
const PlaceholderGuestName = "Airbnb Guest"

// Booking is the authoritative reservation record. Synced bookings use the
// feed UID as their ID so that repeated syncs converge on the same row;
// manually-entered bookings get a locally generated id.
//
// Check-in and check-out are date-only values in YYYY-MM-DD form. The
// check-out date is exclusive: the stay covers [CheckIn, CheckOut).
type Booking struct {
	ID          string        `gorm:"primaryKey" json:"id"`
	PropertyID  string        `gorm:"index;not null" json:"property_id"`
	GuestID     string        `json:"guest_id"`
	GuestName   string        `json:"guest_name"`
	CheckIn     string        `gorm:"type:varchar(10);not null" json:"check_in"`
	CheckOut    string        `gorm:"type:varchar(10);not null" json:"check_out"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'Upcoming'" json:"status"`
	TotalPrice  float64       `json:"total_price"`
	GuestsCount int           `json:"guests_count"`
	Source      BookingSource `gorm:"type:varchar(20);not null" json:"source"`
	IsSynced    bool          `json:"is_synced"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Finalized reports whether staff completed the booking after a sync: a real
// guest name and a non-zero price. Reconciliation must never overwrite the
// guest name or price of a finalized booking.
func (b *Booking) Finalized() bool {
	return b.GuestName != "" && b.GuestName != PlaceholderGuestName && b.TotalPrice > 0
}

// Incomplete reports whether the booking still awaits manual completion.
func (b *Booking) Incomplete() bool {
	return b.TotalPrice == 0 && b.Source == SourceAirbnb
}

// Active reports whether the booking can still be cancelled. Completed stays
// are never retroactively cancelled, by sync or by staff.
func (b *Booking) Active() bool {
	return b.Status == StatusUpcoming || b.Status == StatusCheckedIn
}
