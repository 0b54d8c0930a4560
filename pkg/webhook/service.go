// Package webhook runs the HTTP server receiving Zealy callbacks and turns
// them into Telegram notifications.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"questrelay/pkg/metrics"
)

const (
	claimKeyHeader       = "x-api-key"
	questNamePlaceholder = "Quest name not available"
	shutdownTimeout      = 5 * time.Second
)

// Notifier delivers a derived notification text to a Telegram chat.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Options configures the webhook server.
type Options struct {
	Host           string
	Port           int
	EndpointSecret string
	ClaimAPIKey    string
	QuestChatID    int64
}

// Service is the webhook HTTP surface: quest callbacks, claim callbacks,
// health, and metrics.
type Service struct {
	opts     Options
	notifier Notifier
	log      *slog.Logger
}

// NewService validates options and builds the server.
func NewService(opts Options, notifier Notifier, log *slog.Logger) (*Service, error) {
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if strings.TrimSpace(opts.EndpointSecret) == "" {
		return nil, errors.New("endpoint secret is required")
	}
	if opts.QuestChatID == 0 {
		return nil, errors.New("quest chat id is required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		opts:     opts,
		notifier: notifier,
		log:      log.With("component", "webhook.service"),
	}, nil
}

// questEvent is the callback body posted by Zealy.
type questEvent struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Time   json.RawMessage `json:"time"`
	Secret string          `json:"secret"`
	Data   questData       `json:"data"`
}

type questData struct {
	User  questUser `json:"user"`
	Quest questRef  `json:"quest"`
}

type questUser struct {
	Name string `json:"name"`
}

type questRef struct {
	Name string `json:"name"`
}

// Router builds the HTTP routes with request-ID and metrics middleware.
func (s *Service) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.requestMiddleware)

	router.HandleFunc("/webhook", s.handleQuestWebhook).Methods(http.MethodPost)
	router.HandleFunc("/claim", s.handleClaim).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	addr := s.opts.Host + ":" + strconv.Itoa(s.opts.Port)

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("Webhook server started", "address", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run webhook server: %w", err)
	}

	return nil
}

// handleQuestWebhook validates the shared secret and forwards a quest
// notification to the configured chat.
func (s *Service) handleQuestWebhook(w http.ResponseWriter, r *http.Request) {
	var event questEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !secretsEqual(event.Secret, s.opts.EndpointSecret) {
		http.Error(w, "Unauthorized", http.StatusForbidden)
		return
	}

	questName := event.Data.Quest.Name
	if questName == "" {
		questName = questNamePlaceholder
	}
	message := fmt.Sprintf("New Quest Published: %s\nDescription: %s", event.Data.User.Name, questName)

	if err := s.notifier.SendText(r.Context(), s.opts.QuestChatID, message); err != nil {
		s.log.Error("Failed to send quest notification", "event_id", event.ID, "error", err)
		http.Error(w, "Error sending message to Telegram", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Message sent successfully"))
}

// handleClaim validates the claim API key header and acknowledges a quest
// claim. A bad key is an explicit 401, never an escaping fault.
func (s *Service) handleClaim(w http.ResponseWriter, r *http.Request) {
	if !secretsEqual(r.Header.Get(claimKeyHeader), s.opts.ClaimAPIKey) {
		s.respondJSON(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var event questEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil || event.Data.User.Name == "" {
		s.respondJSON(w, http.StatusBadRequest, "Validation failed")
		return
	}

	questName := event.Data.Quest.Name
	if questName == "" {
		questName = questNamePlaceholder
	}
	message := fmt.Sprintf("Quest Claimed: %s\nDescription: %s", event.Data.User.Name, questName)

	if err := s.notifier.SendText(r.Context(), s.opts.QuestChatID, message); err != nil {
		s.log.Error("Failed to send claim notification", "event_id", event.ID, "error", err)
		s.respondJSON(w, http.StatusBadRequest, "Validation failed")
		return
	}

	s.respondJSON(w, http.StatusOK, "Quest completed")
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Service) respondJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		s.log.Error("Failed to write response", "error", err)
	}
}

// secretsEqual compares secrets in constant time.
func secretsEqual(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// requestMiddleware tags each request with an ID, records metrics, and logs
// the outcome.
func (s *Service) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		metrics.WebhookRequests.WithLabelValues(route, strconv.Itoa(wrapped.status)).Inc()
		s.log.Info("Handled request",
			"request_id", requestID,
			"method", r.Method,
			"route", route,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
