// Package chat bootstraps the embedded XMPP chat client from the server's
// connection data endpoint, and serves that endpoint.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/localsettings/internal/logging"
)

// DefaultConnDataURL is the path the connection data is fetched from.
const DefaultConnDataURL = "/xmpp/conndata"

var (
	// ErrNoConnData is returned when the endpoint answered with a null body.
	ErrNoConnData = errors.New("couldn't get data to connect to XMPP")

	// ErrUnexpectedStatus is returned when the endpoint answered outside [200, 400).
	ErrUnexpectedStatus = errors.New("unexpected response, can't get data to connect to XMPP")

	// ErrConnection is returned when the request could not be performed.
	ErrConnection = errors.New("connection error, can't get data to connect to XMPP")
)

// ConnData is the payload of the connection data endpoint.
type ConnData struct {
	PrebindURL  string `json:"prebind_url" mapstructure:"prebind_url"`
	JID         string `json:"jid" mapstructure:"jid"`
	HTTPBindURL string `json:"http_bind_url" mapstructure:"http_bind_url"`
}

// InitOptions is the configuration handed to the chat client.
type InitOptions struct {
	Debug            bool   `json:"debug"`
	Authentication   string `json:"authentication"`
	PrebindURL       string `json:"prebind_url"`
	KeepAlive        bool   `json:"keepalive"`
	JID              string `json:"jid"`
	AutoAway         int    `json:"auto_away"`
	AutoReconnect    bool   `json:"auto_reconnect"`
	BOSHServiceURL   string `json:"bosh_service_url"`
	MessageArchiving string `json:"message_archiving"`
	ViewMode         string `json:"view_mode"`
}

// NewInitOptions combines the connection data with the fixed client options.
func NewInitOptions(data ConnData) InitOptions {
	return InitOptions{
		Debug:            true,
		Authentication:   "prebind",
		PrebindURL:       data.PrebindURL,
		KeepAlive:        true,
		JID:              data.JID,
		AutoAway:         300,
		AutoReconnect:    true,
		BOSHServiceURL:   data.HTTPBindURL,
		MessageArchiving: "always",
		ViewMode:         "overlayed",
	}
}

// Initializer starts the chat client.
type Initializer interface {
	Initialize(ctx context.Context, opts InitOptions) error
}

// InitializerFunc adapts a function to Initializer.
type InitializerFunc func(ctx context.Context, opts InitOptions) error

// Initialize implements Initializer.
func (f InitializerFunc) Initialize(ctx context.Context, opts InitOptions) error { return f(ctx, opts) }

// Outcome classifies a bootstrap attempt.
type Outcome string

const (
	OutcomeInitialized Outcome = "initialized"
	OutcomeNoData      Outcome = "no_data"
	OutcomeBadStatus   Outcome = "bad_status"
	OutcomeBadBody     Outcome = "bad_body"
	OutcomeTransport   Outcome = "transport_error"
	OutcomeInitFailed  Outcome = "init_failed"
)

// Bootstrapper performs the one-shot connection data request.
type Bootstrapper struct {
	url         string
	client      *http.Client
	initializer Initializer
	logger      *slog.Logger
	observe     func(Outcome)
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Bootstrapper) {
		if c != nil {
			b.client = c
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrapper) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithObserver registers a callback receiving every outcome.
func WithObserver(fn func(Outcome)) Option {
	return func(b *Bootstrapper) {
		b.observe = fn
	}
}

// NewBootstrapper creates a bootstrapper fetching url. An empty url means
// DefaultConnDataURL.
func NewBootstrapper(url string, initializer Initializer, opts ...Option) *Bootstrapper {
	if url == "" {
		url = DefaultConnDataURL
	}
	b := &Bootstrapper{
		url:         url,
		client:      http.DefaultClient,
		initializer: initializer,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bootstrap fetches the connection data once and initializes the chat client
// when it is usable. Failures are logged and returned; there is no retry.
func (b *Bootstrapper) Bootstrap(ctx context.Context) (Outcome, error) {
	outcome, err := b.bootstrap(ctx)
	if b.observe != nil {
		b.observe(outcome)
	}
	return outcome, err
}

func (b *Bootstrapper) bootstrap(ctx context.Context) (Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		b.logger.Error(ErrConnection.Error(), "url", b.url, "error", err)
		return OutcomeTransport, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Error(ErrConnection.Error(), "url", b.url, "error", err)
		return OutcomeTransport, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		b.logger.Error(ErrUnexpectedStatus.Error(), "url", b.url, "status", resp.StatusCode)
		return OutcomeBadStatus, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		b.logger.Error(ErrConnection.Error(), "url", b.url, "error", err)
		return OutcomeTransport, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	b.logger.Info("got JID data", "body", string(body))

	var data *ConnData
	if err := json.Unmarshal(body, &data); err != nil {
		b.logger.Error("invalid XMPP connection data", "error", err)
		return OutcomeBadBody, fmt.Errorf("failed to decode connection data: %w", err)
	}
	if data == nil {
		b.logger.Info(ErrNoConnData.Error())
		return OutcomeNoData, ErrNoConnData
	}

	if err := b.initializer.Initialize(ctx, NewInitOptions(*data)); err != nil {
		b.logger.Error("chat client initialization failed", "error", err)
		return OutcomeInitFailed, fmt.Errorf("failed to initialize chat client: %w", err)
	}
	return OutcomeInitialized, nil
}
