// Package ical turns a raw iCalendar feed into candidate booking records.
//
// The parser is deliberately not a grammar-correct iCalendar implementation.
// Vacation-rental feeds are weakly structured and only four fields matter
// (SUMMARY, DTSTART, DTEND, UID), so events are split on the VEVENT boundary
// and fields extracted with tolerant, order-independent pattern matching. A
// malformed event is dropped, never fatal to the batch.
package ical

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/hostflow/hostflow-server/internal/models"
)

// Candidate is an ephemeral booking parsed from a feed, not yet merged into
// authoritative state.
type Candidate struct {
	// ExternalID is the feed UID, or a deterministic fallback derived from
	// the stay when the feed omits one.
	ExternalID  string
	GuestName   string
	CheckIn     string // YYYY-MM-DD
	CheckOut    string // YYYY-MM-DD, exclusive
	Status      models.BookingStatus
	GuestsCount int
	Source      models.BookingSource
}

const dateLayout = "2006-01-02"

var (
	summaryRe = regexp.MustCompile(`SUMMARY:(.*)`)
	dtStartRe = regexp.MustCompile(`DTSTART(?:;VALUE=DATE)?:(\d{8})`)
	dtEndRe   = regexp.MustCompile(`DTEND(?:;VALUE=DATE)?:(\d{8})`)
	uidRe     = regexp.MustCompile(`UID:(.*)`)
)

// redactionTokens mark summaries where the platform withheld the guest name.
var redactionTokens = []string{"reserved", "airbnb"}

// Parse extracts candidate bookings from raw iCalendar text. Events missing a
// parseable start or end date are skipped silently; zero-night or inverted
// stays are logged and skipped. Garbage input yields an empty slice, never an
// error. Output order follows document order.
func Parse(data string, today time.Time) []Candidate {
	todayStr := today.Format(dateLayout)

	cleaned := strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(cleaned, "BEGIN:VEVENT")

	candidates := make([]Candidate, 0, len(blocks))
	// Index 0 is the calendar preamble, not an event.
	for _, block := range blocks[1:] {
		startMatch := dtStartRe.FindStringSubmatch(block)
		endMatch := dtEndRe.FindStringSubmatch(block)
		if startMatch == nil || endMatch == nil {
			continue
		}

		checkIn := toISODate(startMatch[1])
		checkOut := toISODate(endMatch[1])
		if checkOut <= checkIn {
			log.Printf("[ICSParser] skipping zero-night or inverted stay %s..%s", checkIn, checkOut)
			continue
		}

		guestName := ""
		if m := summaryRe.FindStringSubmatch(block); m != nil {
			guestName = m[1]
		}
		guestName = NormalizeGuestName(guestName)

		externalID := ""
		if m := uidRe.FindStringSubmatch(block); m != nil {
			externalID = strings.TrimSpace(m[1])
		}
		if externalID == "" {
			externalID = FallbackID(checkIn, checkOut, guestName)
		}

		candidates = append(candidates, Candidate{
			ExternalID:  externalID,
			GuestName:   guestName,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Status:      Classify(checkIn, checkOut, todayStr),
			GuestsCount: 1,
			Source:      models.SourceAirbnb,
		})
	}

	return candidates
}

// toISODate converts a bare 8-digit iCalendar date to YYYY-MM-DD.
func toISODate(raw string) string {
	return raw[0:4] + "-" + raw[4:6] + "-" + raw[6:8]
}

// NormalizeGuestName cleans a raw SUMMARY value into a guest label. The
// platform's boilerplate markers are stripped first so "Reserved - Jane Doe"
// survives as a real name; what remains collapses to the placeholder when it
// is empty or still carries a redaction token.
func NormalizeGuestName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.ReplaceAll(name, "Reserved - ", "")
	name = strings.ReplaceAll(name, " (Reserved)", "")
	// Folded SUMMARY values carry literal "\n" escapes; only the first
	// segment is the guest label.
	name, _, _ = strings.Cut(name, `\n`)
	name = strings.TrimSpace(name)

	if name == "" {
		return models.PlaceholderGuestName
	}
	lower := strings.ToLower(name)
	for _, token := range redactionTokens {
		if strings.Contains(lower, token) {
			return models.PlaceholderGuestName
		}
	}
	return name
}

// Classify maps a stay to its lifecycle state relative to today. The interval
// is half-open: the check-out date itself is not part of the stay. ISO dates
// compare correctly as strings.
func Classify(checkIn, checkOut, today string) models.BookingStatus {
	switch {
	case today >= checkIn && today < checkOut:
		return models.StatusCheckedIn
	case today >= checkOut:
		return models.StatusCompleted
	default:
		return models.StatusUpcoming
	}
}

// FallbackID derives a stable external id for events the feed publishes
// without a UID. Hashing the stay keeps repeated parses of an unchanged event
// converging on the same key, which a random id would break.
func FallbackID(checkIn, checkOut, guestName string) string {
	sum := sha256.Sum256([]byte(checkIn + "|" + checkOut + "|" + guestName))
	return "air-" + hex.EncodeToString(sum[:])[:12]
}
