package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/localsettings/internal/logging"
)

// ErrUnexpectedStatus is returned when the timeline endpoint answers with a
// status other than 200 or 206.
var ErrUnexpectedStatus = errors.New("timeline: unexpected response status")

// Page is one response of the home timeline endpoint.
type Page struct {
	Statuses []Status
	// Partial is set while the server is still regenerating the timeline.
	Partial bool
}

// Source fetches the home timeline.
type Source interface {
	Fetch(ctx context.Context) (Page, error)
}

// HTTPSource reads the home timeline from an HTTP endpoint. A 206 Partial
// Content answer marks the timeline as partial.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url. A nil client uses http.DefaultClient.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("timeline: fetch: %w", err)
	}
	defer resp.Body.Close()

	var page Page
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusPartialContent:
		page.Partial = true
	default:
		return Page{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&page.Statuses); err != nil && !(page.Partial && resp.ContentLength == 0) {
		return Page{}, fmt.Errorf("timeline: decode: %w", err)
	}
	return page, nil
}

// Home keeps the home timeline loaded, polling the source while it is partial.
type Home struct {
	src  Source
	view *HomeView

	mu       sync.Mutex
	statuses []Status
	ready    chan struct{}
	once     sync.Once
}

// NewHome creates a home timeline over src. Options configure its poller.
func NewHome(src Source, opts ...Option) *Home {
	h := &Home{src: src, ready: make(chan struct{})}
	h.view = NewHomeView(NewPoller(FetcherFunc(h.fetch), append([]Option{WithLogger(logging.NewNop())}, opts...)...))
	return h
}

// Load fetches the timeline. While the server reports it partial, Load keeps
// polling until a complete timeline arrives or ctx ends.
func (h *Home) Load(ctx context.Context) ([]Status, error) {
	page, err := h.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	h.apply(page)
	if !page.Partial {
		return h.Statuses(), nil
	}

	h.view.Mount(ctx, true)
	defer h.view.Unmount()

	select {
	case <-h.ready:
		return h.Statuses(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Polling reports whether the reload poller is running.
func (h *Home) Polling() bool {
	return h.view.poller.Polling()
}

// Statuses returns the last complete timeline.
func (h *Home) Statuses() []Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statuses
}

func (h *Home) fetch(ctx context.Context) error {
	page, err := h.src.Fetch(ctx)
	if err != nil {
		return err
	}
	h.apply(page)
	return nil
}

func (h *Home) apply(page Page) {
	if page.Partial {
		h.view.SetItems([]string{""})
		return
	}

	ids := make([]string, len(page.Statuses))
	for i, s := range page.Statuses {
		ids[i] = s.ID
	}
	h.mu.Lock()
	h.statuses = page.Statuses
	h.mu.Unlock()
	h.once.Do(func() { close(h.ready) })
	h.view.SetItems(ids)
}
