package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/localsettings/internal/chat"
	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/go-chi/chi/v5"
)

// Server serves the settings engine over HTTP.
type Server struct {
	Engine   ports.SettingsEngine
	Streams  *StreamManager
	metrics  http.Handler
	connData *chat.ConnData
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStreams shares a stream manager, typically one whose Hooks were given
// to the engine.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) { s.Streams = sm }
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithConnData serves the chat connection data on /xmpp/conndata.
func WithConnData(data chat.ConnData) Option {
	return func(s *Server) { s.connData = &data }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine ports.SettingsEngine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.json", s.GetOpenAPI)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	if s.connData != nil {
		r.Get(chat.DefaultConnDataURL, chat.Handler(*s.connData))
	}

	r.Get("/accounts", s.ListAccounts)
	r.Route("/accounts/{account}", func(r chi.Router) {
		r.Get("/settings", s.GetSettings)
		r.Put("/settings", s.ReplaceSettings)
		r.Patch("/settings", s.ChangeSetting)
		r.Delete("/settings", s.ResetSettings)
		r.Get("/settings/dialog", s.RenderDialog)
		r.Get("/settings/pages/{index}", s.RenderPage)
		r.Get("/settings/columns/home", s.RenderHomeColumn)
		r.Post("/settings/fields/{field}", s.Interact)
		r.Get("/events", s.SubscribeEvents)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "localsettings-http",
		"version":     appVersion(),
		"api_version": APIVersion,
	})
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, NewOpenAPI())
}

// ListAccounts handles GET /accounts.
func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.Engine.Accounts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if accounts == nil {
		accounts = []string{}
	}
	s.writeJSON(w, http.StatusOK, accounts)
}

// GetSettings handles GET /accounts/{account}/settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Engine.Settings(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// ReplaceSettings handles PUT /accounts/{account}/settings.
// Keys missing from the body keep their default values.
func (s *Server) ReplaceSettings(w http.ResponseWriter, r *http.Request) {
	settings := domain.DefaultSettings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ReplaceSettings: invalid request body", "err", err)
		return
	}
	account := chi.URLParam(r, "account")
	if err := s.Engine.Replace(r.Context(), account, settings); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// ChangeSetting handles PATCH /accounts/{account}/settings.
func (s *Server) ChangeSetting(w http.ResponseWriter, r *http.Request) {
	var change domain.Change
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("ChangeSetting: invalid request body", "err", err)
		return
	}
	if len(change.Path) == 0 {
		http.Error(w, "Missing path", http.StatusBadRequest)
		return
	}
	settings, err := s.Engine.Change(r.Context(), chi.URLParam(r, "account"), change)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// ResetSettings handles DELETE /accounts/{account}/settings.
func (s *Server) ResetSettings(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.Reset(r.Context(), chi.URLParam(r, "account")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderDialog handles GET /accounts/{account}/settings/dialog?page=N.
func (s *Server) RenderDialog(w http.ResponseWriter, r *http.Request) {
	index := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid page %q", raw), http.StatusBadRequest)
			return
		}
		index = n
	}
	dialog, err := s.Engine.RenderDialog(r.Context(), chi.URLParam(r, "account"), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dialog)
}

// RenderPage handles GET /accounts/{account}/settings/pages/{index}.
// Out-of-range indexes render the first page.
func (s *Server) RenderPage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid page index %q", raw), http.StatusBadRequest)
		return
	}
	page, err := s.Engine.RenderPage(r.Context(), chi.URLParam(r, "account"), index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// RenderHomeColumn handles GET /accounts/{account}/settings/columns/home.
func (s *Server) RenderHomeColumn(w http.ResponseWriter, r *http.Request) {
	page, err := s.Engine.RenderColumn(r.Context(), chi.URLParam(r, "account"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// Interact handles POST /accounts/{account}/settings/fields/{field}.
func (s *Server) Interact(w http.ResponseWriter, r *http.Request) {
	var in view.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Interact: invalid request body", "err", err)
		return
	}
	settings, err := s.Engine.Interact(r.Context(), chi.URLParam(r, "account"), chi.URLParam(r, "field"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

// SubscribeEvents handles GET /accounts/{account}/events (SSE).
// The optional watch parameter keeps only events under the listed path prefixes.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	account := chi.URLParam(r, "account")
	var watch []domain.Path
	if raw := r.URL.Query().Get("watch"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				watch = append(watch, domain.ParsePath(p))
			}
		}
	}

	ch, cancel := s.Streams.Subscribe(account)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: subscribed", "account", account)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "account", account)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watched(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func watched(msg string, watch []domain.Path) bool {
	var e domain.ChangeEvent
	if err := json.Unmarshal([]byte(msg), &e); err != nil {
		return true
	}
	for _, prefix := range watch {
		if e.Path.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	var agg *domain.AggregateError
	switch {
	case errors.Is(err, domain.ErrFieldDisabled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownPath),
		errors.Is(err, domain.ErrTypeMismatch),
		errors.Is(err, domain.ErrInvalidValue),
		errors.As(err, &verr),
		errors.As(err, &agg):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
