package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUnreachableSource means neither the relay nor a direct fetch
	// succeeded. The caller should suggest uploading the .ics file manually.
	ErrUnreachableSource = errors.New("could not reach the calendar provider")

	// ErrEmptyFeed means the feed was fetched but yielded no parseable
	// reservations, which is a different user message than unreachable.
	ErrEmptyFeed = errors.New("the link returned no valid reservations")

	// ErrSyncInProgress rejects a second sync while one is outstanding.
	ErrSyncInProgress = errors.New("a calendar sync is already running for this property")
)

const fetchTimeout = 15 * time.Second

// Fetcher retrieves external iCal feeds. Feed hosts commonly disallow
// cross-origin reads, so the first attempt goes through a relay; a direct
// fetch is the fallback when the relay misbehaves.
type Fetcher struct {
	client    *http.Client
	relayBase string
}

func NewFetcher(relayBase string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: fetchTimeout},
		relayBase: relayBase,
	}
}

// Fetch returns the raw feed body. Timeouts and connection failures on both
// paths collapse into ErrUnreachableSource; the error retains the underlying
// cause for the log line only.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	if f.relayBase != "" {
		body, err := f.get(ctx, f.relayBase+url.QueryEscape(feedURL))
		if err == nil {
			return body, nil
		}
		log.Printf("[CalendarFetch] relay failed, trying direct: %v", err)
	}

	body, err := f.get(ctx, feedURL)
	if err != nil {
		log.Printf("[CalendarFetch] direct fetch failed: %v", err)
		return "", fmt.Errorf("%w: %s", ErrUnreachableSource, "please try uploading the .ics file manually")
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
