package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/vamartid/swapi-mirror/pkg/model"
)

// DefaultBaseURL is the public SWAPI endpoint.
const DefaultBaseURL = "https://swapi.dev/api"

var (
	// ErrUpstreamUnavailable reports that a page fetch exhausted its
	// retries. It aborts the affected category only.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrRecordInvalid reports a record that failed the ingestion
	// schema. The record is skipped, the category continues.
	ErrRecordInvalid = errors.New("record invalid")

	// ErrPageRepeated reports upstream pagination that stopped
	// advancing; following it would loop forever.
	ErrPageRepeated = errors.New("pagination did not advance")
)

// Client fetches paginated category collections from the upstream
// service.
type Client struct {
	baseURL string
	http    *http.Client
	retries uint64
	log     *slog.Logger
}

// NewClient creates a Client. retries bounds the attempts per page
// beyond the first; timeout applies per attempt.
func NewClient(baseURL string, retries int, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if retries < 0 {
		retries = 0
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retries: uint64(retries),
		log:     log,
	}
}

// Fetch returns a Pager over all records of a category. Each call starts
// a fresh pass from the collection's first page.
func (c *Client) Fetch(category model.Category) *Pager {
	first := fmt.Sprintf("%s/%s/", c.baseURL, category)
	return &Pager{
		client: c,
		next:   first,
		seen:   map[string]bool{first: true},
	}
}

// page mirrors one upstream collection page.
type page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (*page, error) {
	operation := func() (*page, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			return nil, backoff.Permanent(
				fmt.Errorf("upstream status %d: %s", resp.StatusCode, body))
		}

		var p page
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			// Truncated or garbled body; worth another attempt.
			return nil, err
		}
		return &p, nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn("retrying upstream page fetch",
			"url", pageURL, "backoff", wait, "error", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), c.retries), ctx)
	p, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return p, nil
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

// Pager walks a category's pages lazily, in the manner of bufio.Scanner:
//
//	pager := client.Fetch(model.CategoryPlanets)
//	for pager.Next(ctx) {
//		for _, raw := range pager.Records() {
//			// decode and store
//		}
//	}
//	if err := pager.Err(); err != nil {
//		// category-level failure
//	}
//
// The produced sequence is finite: the page-follow guard treats a
// repeated page locator as a fatal protocol error.
type Pager struct {
	client  *Client
	next    string
	seen    map[string]bool
	records []json.RawMessage
	count   int
	err     error
	done    bool
}

// Next fetches the next page. It returns false once the collection is
// exhausted or a category-level error occurred.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done || p.err != nil {
		return false
	}

	pg, err := p.client.fetchPage(ctx, p.next)
	if err != nil {
		p.err = err
		return false
	}
	p.records = pg.Results
	p.count = pg.Count

	if pg.Next == nil || *pg.Next == "" {
		p.done = true
		return true
	}
	if p.seen[*pg.Next] {
		p.err = fmt.Errorf("%w: %s", ErrPageRepeated, *pg.Next)
		return false
	}
	p.seen[*pg.Next] = true
	p.next = *pg.Next
	return true
}

// Records returns the raw records of the page fetched by the last
// successful Next.
func (p *Pager) Records() []json.RawMessage { return p.records }

// Count returns the collection size the upstream reported on the last
// fetched page.
func (p *Pager) Count() int { return p.count }

// Err returns the category-level error that stopped the pager, if any.
func (p *Pager) Err() error { return p.err }
