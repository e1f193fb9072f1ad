package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/autoventa/lead-intake/internal/observability/metrics"
	"github.com/autoventa/lead-intake/pkg/logging"
)

const defaultMaxBodyBytes = 10 * 1024

// RateLimiter decides whether a client may submit another lead right now.
type RateLimiter interface {
	Allow(clientID string) bool
}

// Notifier sends the human notification for a freshly stored lead.
// Failures are tolerated; the handler reports them as emailSent:false.
type Notifier interface {
	LeadReceived(ctx context.Context, lead *Lead) error
}

// Handler runs the intake pipeline for POST /api/leads.
type Handler struct {
	repo     Repository
	limiter  RateLimiter
	notifier Notifier
	metrics  *metrics.IntakeMetrics
	logger   *logging.Logger
	maxBody  int64
}

// NewHandler creates the intake handler. metrics and notifier may be
// nil; limiter may be nil to disable throttling.
func NewHandler(repo Repository, limiter RateLimiter, notifier Notifier, m *metrics.IntakeMetrics, logger *logging.Logger, maxBody int64) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &Handler{
		repo:     repo,
		limiter:  limiter,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		maxBody:  maxBody,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type validationBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

type successBody struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	EmailSent bool   `json:"emailSent"`
}

// Submit handles one inbound request. Exactly one response is written
// on every path, including panics.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("lead intake panicked", "panic", rec, "path", r.URL.Path)
			h.metrics.ObserveSubmission("error")
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
		}
		h.metrics.ObserveDuration(time.Since(start).Seconds())
	}()
	h.serve(w, r)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		// CORS headers, if enabled, were set by the middleware.
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
		return
	}

	ip := clientIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		h.logger.Warn("lead submission throttled", "client_ip", ip)
		h.metrics.ObserveSubmission("rate_limited")
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Too many requests. Try again in 15 minutes."})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		msg := "Invalid JSON body"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "Request body too large"
		}
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
		return
	}

	if errs := Validate(&sub); len(errs) > 0 {
		h.metrics.ObserveSubmission("invalid")
		writeJSON(w, http.StatusBadRequest, validationBody{Error: "Invalid data", Details: errs})
		return
	}

	lead := Normalize(&sub, ip)
	stored, err := h.repo.Create(r.Context(), lead)
	if err != nil {
		h.logger.Error("lead insert failed", "error", err, "client_ip", ip)
		h.metrics.ObserveSubmission("persist_error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "DB insert failed"})
		return
	}

	// Best-effort from here on: the lead is durable, an email failure
	// must not fail the request.
	emailSent := false
	if h.notifier == nil {
		h.logger.Warn("lead notifier not configured", "lead_id", stored.ID)
	} else if err := h.notifier.LeadReceived(r.Context(), lead); err != nil {
		h.logger.Warn("lead notification not sent", "error", err, "lead_id", stored.ID)
	} else {
		emailSent = true
	}
	if emailSent {
		h.metrics.ObserveEmail("sent")
	} else {
		h.metrics.ObserveEmail("failed")
	}

	h.metrics.ObserveSubmission("accepted")
	h.logger.Info("lead stored", "lead_id", stored.ID, "email_sent", emailSent, "client_ip", ip)
	writeJSON(w, http.StatusOK, successBody{Success: true, ID: stored.ID, EmailSent: emailSent})
}

// clientIP resolves the submitting client's address: first hop of
// X-Forwarded-For, then X-Real-Ip, then the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
