// Package httpapi exposes the contest evaluation engine over HTTP, plus the
// service's health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parkfair/contest-engine/internal/domain"
)

// Evaluator runs contest evaluations.
type Evaluator interface {
	Evaluate(ctx context.Context, facts domain.TicketFacts, evidence domain.UserEvidence, grounds []string) domain.ContestEvaluation
	CheckReadiness(ctx context.Context) error
}

// KitFinder looks up contest kits by violation code.
type KitFinder interface {
	Get(code string) *domain.ContestKit
}

// OutcomePublisher records completed evaluations for downstream analytics.
// Implementations must be safe for concurrent use.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, violationCode string, eval domain.ContestEvaluation) error
}

// Server exposes the evaluation API and operational endpoints.
type Server struct {
	httpServer *http.Server
	evaluator  Evaluator
	kits       KitFinder
	publisher  OutcomePublisher // nil when outcome publishing is disabled
	logger     *slog.Logger
}

// NewServer creates the API server. publisher may be nil.
func NewServer(addr string, evaluator Evaluator, kits KitFinder, publisher OutcomePublisher, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		evaluator: evaluator,
		kits:      kits,
		publisher: publisher,
		logger:    logger,
	}

	mux.HandleFunc("POST /v1/evaluations", s.handleEvaluate)
	mux.HandleFunc("GET /v1/kits/{code}", s.handleKit)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// evaluationRequest is the wire shape of an evaluation call.
type evaluationRequest struct {
	Ticket   ticketPayload       `json:"ticket"`
	Evidence domain.UserEvidence `json:"evidence"`
	Grounds  []string            `json:"grounds,omitempty"`
}

// ticketPayload mirrors domain.TicketFacts with a string date for ergonomic
// JSON input. daysSinceTicket may be omitted, in which case it is derived
// from the date.
type ticketPayload struct {
	TicketNumber    string  `json:"ticketNumber"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time,omitempty"`
	Location        string  `json:"location"`
	ViolationCode   string  `json:"violationCode"`
	Description     string  `json:"description,omitempty"`
	Amount          float64 `json:"amount"`
	DaysSinceTicket *int    `json:"daysSinceTicket,omitempty"`

	HadSignageIssue bool   `json:"hadSignageIssue,omitempty"`
	SignageDetail   string `json:"signageDetail,omitempty"`
	HadEmergency    bool   `json:"hadEmergency,omitempty"`
	MeterBroken     bool   `json:"meterBroken,omitempty"`
	PermitDisplayed bool   `json:"permitDisplayed,omitempty"`
	VehicleMoved    bool   `json:"vehicleMoved,omitempty"`
}

func (p ticketPayload) toFacts() (domain.TicketFacts, error) {
	facts := domain.TicketFacts{
		TicketNumber:    p.TicketNumber,
		Time:            p.Time,
		Location:        p.Location,
		ViolationCode:   p.ViolationCode,
		Description:     p.Description,
		Amount:          p.Amount,
		HadSignageIssue: p.HadSignageIssue,
		SignageDetail:   p.SignageDetail,
		HadEmergency:    p.HadEmergency,
		MeterBroken:     p.MeterBroken,
		PermitDisplayed: p.PermitDisplayed,
		VehicleMoved:    p.VehicleMoved,
	}
	if p.Date != "" {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return domain.TicketFacts{}, err
		}
		facts.Date = date
	}
	if p.DaysSinceTicket != nil {
		facts.DaysSinceTicket = *p.DaysSinceTicket
	} else if !facts.Date.IsZero() {
		facts.DaysSinceTicket = domain.DaysSince(facts.Date)
	}
	return facts, nil
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	facts, err := req.Ticket.toFacts()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ticket date, expected YYYY-MM-DD"})
		return
	}

	eval := s.evaluator.Evaluate(r.Context(), facts, req.Evidence, req.Grounds)
	writeJSON(w, http.StatusOK, eval)

	if s.publisher != nil {
		// Detach from the request context so a client disconnect does not
		// cancel the publish mid-flight.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.publisher.PublishOutcome(ctx, facts.ViolationCode, eval); err != nil {
				s.logger.Warn("outcome publish failed", "violation_code", facts.ViolationCode, "error", err)
			}
		}()
	}
}

// kitSummary is the read-side projection of a contest kit.
type kitSummary struct {
	ViolationID string   `json:"violationId"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	BaseFine    float64  `json:"baseFine"`
	BaseWinRate float64  `json:"baseWinRate"`
	Arguments   []string `json:"arguments"`
	Tips        string   `json:"tips,omitempty"`
	Pitfalls    string   `json:"pitfalls,omitempty"`
}

func (s *Server) handleKit(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	kit := s.kits.Get(code)
	if kit == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no contest kit for violation code " + code})
		return
	}

	summary := kitSummary{
		ViolationID: kit.ViolationID,
		Name:        kit.Name,
		Category:    kit.Category,
		BaseFine:    kit.BaseFine,
		BaseWinRate: kit.BaseWinRate,
		Tips:        kit.Tips,
		Pitfalls:    kit.Pitfalls,
	}
	for _, arg := range kit.Arguments {
		summary.Arguments = append(summary.Arguments, arg.ID)
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.evaluator.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
