package dto

type SyncRequest struct {
	ICalURL string `json:"ical_url"`
}

type ManualBookingRequest struct {
	GuestName   string  `json:"guest_name"`
	GuestEmail  string  `json:"guest_email"`
	GuestPhone  string  `json:"guest_phone"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	TotalPrice  float64 `json:"total_price"`
	GuestsCount int     `json:"guests_count"`
	Rating      int     `json:"rating"`
	Source      string  `json:"source,omitempty"`
}

type FinalizeBookingRequest struct {
	GuestName  string  `json:"guest_name"`
	TotalPrice float64 `json:"total_price"`
}

type CreatePropertyRequest struct {
	Name         string `json:"name"`
	ManagerName  string `json:"manager_name"`
	ManagerEmail string `json:"manager_email"`
	ManagerPhone string `json:"manager_phone"`
	AirbnbURL    string `json:"airbnb_url,omitempty"`
	ICalURL      string `json:"ical_url,omitempty"`
}
