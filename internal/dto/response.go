package dto

import (
	"time"

	"github.com/hostflow/hostflow-server/internal/models"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	PropertyID  string               `json:"property_id"`
	GuestID     string               `json:"guest_id,omitempty"`
	GuestName   string               `json:"guest_name"`
	CheckIn     string               `json:"check_in"`
	CheckOut    string               `json:"check_out"`
	Status      models.BookingStatus `json:"status"`
	TotalPrice  float64              `json:"total_price"`
	GuestsCount int                  `json:"guests_count"`
	Source      models.BookingSource `json:"source"`
	IsSynced    bool                 `json:"is_synced"`
	Incomplete  bool                 `json:"incomplete"`
	CreatedAt   time.Time            `json:"created_at"`
}

type SyncResponse struct {
	PropertyID string            `json:"property_id"`
	Inserted   int               `json:"inserted"`
	Updated    int               `json:"updated"`
	Cancelled  int               `json:"cancelled"`
	Bookings   []BookingResponse `json:"bookings"`
}

type BackupResponse struct {
	PropertyID string `json:"property_id"`
	VaultKey   string `json:"vault_key"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		PropertyID:  b.PropertyID,
		GuestID:     b.GuestID,
		GuestName:   b.GuestName,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice,
		GuestsCount: b.GuestsCount,
		Source:      b.Source,
		IsSynced:    b.IsSynced,
		Incomplete:  b.Incomplete(),
		CreatedAt:   b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}
