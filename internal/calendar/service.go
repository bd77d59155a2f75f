package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hostflow/hostflow-server/internal/ical"
	"github.com/hostflow/hostflow-server/internal/repository"
)

var ErrPropertyNotFound = errors.New("property not found")

// FeedFetcher retrieves a raw iCal feed body.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (string, error)
}

// EventPublisher is satisfied by pkg/rabbitmq.Publisher. A nil publisher
// disables messaging (tests, degraded mode).
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type SyncService interface {
	// Sync fetches the property's feed (or feedURL when given), parses it and
	// reconciles the result into the property's booking set.
	Sync(ctx context.Context, propertyID, feedURL string) (*Result, error)
	// SyncFromText is the manual-upload path: same parse and reconcile,
	// no transport.
	SyncFromText(ctx context.Context, propertyID, icsText string) (*Result, error)
}

type syncService struct {
	fetcher    FeedFetcher
	bookings   repository.BookingRepository
	properties repository.PropertyRepository
	publisher  EventPublisher
	now        func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSyncService(fetcher FeedFetcher, bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository, publisher EventPublisher) SyncService {
	return &syncService{
		fetcher:    fetcher,
		bookings:   bookingRepo,
		properties: propertyRepo,
		publisher:  publisher,
		now:        time.Now,
		inFlight:   make(map[string]bool),
	}
}

func (s *syncService) Sync(ctx context.Context, propertyID, feedURL string) (*Result, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	if feedURL == "" {
		feedURL = property.ICalURL
	}
	if feedURL == "" {
		// No feed configured: empty result, no network call.
		return &Result{}, nil
	}

	if !s.begin(propertyID) {
		return nil, ErrSyncInProgress
	}
	defer s.end(propertyID)

	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	res, err := s.reconcileAndStore(ctx, propertyID, body)
	if err != nil {
		return nil, err
	}

	// Remember a feed URL supplied ad hoc so the next sync can omit it.
	if property.ICalURL != feedURL || !property.IsConfigured {
		property.ICalURL = feedURL
		property.IsConfigured = true
		if err := s.properties.Save(ctx, property); err != nil {
			log.Printf("[CalendarSync] failed to store feed url for property %s: %v", propertyID, err)
		}
	}

	return res, nil
}

func (s *syncService) SyncFromText(ctx context.Context, propertyID, icsText string) (*Result, error) {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, ErrPropertyNotFound
	}

	if !s.begin(propertyID) {
		return nil, ErrSyncInProgress
	}
	defer s.end(propertyID)

	return s.reconcileAndStore(ctx, propertyID, icsText)
}

func (s *syncService) reconcileAndStore(ctx context.Context, propertyID, body string) (*Result, error) {
	candidates := ical.Parse(body, s.now())
	if len(candidates) == 0 {
		return nil, ErrEmptyFeed
	}

	existing, err := s.bookings.FindByPropertyID(ctx, propertyID, nil)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	res := Reconcile(existing, candidates, propertyID)

	if err := s.bookings.UpsertAll(ctx, res.Bookings); err != nil {
		return nil, fmt.Errorf("store reconciled bookings: %w", err)
	}

	log.Printf("[CalendarSync] property %s: %d inserted, %d updated, %d cancelled",
		propertyID, res.Inserted, res.Updated, res.Cancelled)

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.synced", map[string]any{
			"property_id": propertyID,
			"inserted":    res.Inserted,
			"updated":     res.Updated,
			"cancelled":   res.Cancelled,
			"total":       len(res.Bookings),
		})
	}

	return &res, nil
}

// begin marks a sync in flight for the property. At most one sync may run per
// property; a second request is rejected, not interleaved.
func (s *syncService) begin(propertyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[propertyID] {
		return false
	}
	s.inFlight[propertyID] = true
	return true
}

func (s *syncService) end(propertyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, propertyID)
}
