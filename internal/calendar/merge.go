package calendar

import (
	"github.com/hostflow/hostflow-server/internal/ical"
	"github.com/hostflow/hostflow-server/internal/models"
)

// Result is the outcome of reconciling one parsed feed against the
// authoritative booking set of a property.
type Result struct {
	Bookings  []models.Booking `json:"bookings"`
	Inserted  int              `json:"inserted"`
	Updated   int              `json:"updated"`
	Cancelled int              `json:"cancelled"`
}

// Reconcile merges freshly parsed candidates into an existing booking set.
// It is a pure function: neither input slice is mutated, and the same inputs
// always produce the same output, so running a sync twice is a no-op beyond
// status re-classification.
//
// Rules, keyed by external id (candidate id == synced booking id):
//   - unknown id: insert as an incomplete synced booking awaiting setup
//   - known id, finalized by staff: keep guest name, guest link and price,
//     refresh only the date range and lifecycle status
//   - known id, still awaiting setup: overwrite from the candidate, keeping
//     the local property and guest linkage
//   - platform-sourced booking absent from the feed: mark Cancelled, never
//     delete (audit history); Completed stays are not retro-cancelled
//   - Manual and Direct bookings never participate
func Reconcile(existing []models.Booking, candidates []ical.Candidate, propertyID string) Result {
	var res Result

	// First candidate wins on duplicate external ids so the one-booking-per-id
	// invariant holds even against a malformed feed.
	byID := make(map[string]ical.Candidate, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := byID[c.ExternalID]; dup {
			continue
		}
		byID[c.ExternalID] = c
		order = append(order, c.ExternalID)
	}

	matched := make(map[string]bool, len(byID))
	res.Bookings = make([]models.Booking, 0, len(existing)+len(byID))

	for _, b := range existing {
		if b.Source != models.SourceAirbnb {
			res.Bookings = append(res.Bookings, b)
			continue
		}

		c, present := byID[b.ID]
		if !present {
			if b.Active() {
				b.Status = models.StatusCancelled
				res.Cancelled++
			}
			res.Bookings = append(res.Bookings, b)
			continue
		}
		matched[b.ID] = true

		if b.Finalized() {
			// Dates may shift when the guest changes the reservation
			// upstream; everything staff entered stays untouched.
			b.CheckIn = c.CheckIn
			b.CheckOut = c.CheckOut
			b.Status = c.Status
		} else {
			b.GuestName = c.GuestName
			b.CheckIn = c.CheckIn
			b.CheckOut = c.CheckOut
			b.Status = c.Status
			b.TotalPrice = 0
			b.GuestsCount = c.GuestsCount
			b.IsSynced = true
		}
		res.Updated++
		res.Bookings = append(res.Bookings, b)
	}

	for _, id := range order {
		if matched[id] {
			continue
		}
		c := byID[id]
		res.Bookings = append(res.Bookings, models.Booking{
			ID:          c.ExternalID,
			PropertyID:  propertyID,
			GuestName:   c.GuestName,
			CheckIn:     c.CheckIn,
			CheckOut:    c.CheckOut,
			Status:      c.Status,
			TotalPrice:  0,
			GuestsCount: c.GuestsCount,
			Source:      c.Source,
			IsSynced:    true,
		})
		res.Inserted++
	}

	return res
}
