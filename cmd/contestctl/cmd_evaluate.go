package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/parkfair/contest-engine/internal/adapter/openmeteo"
	"github.com/parkfair/contest-engine/internal/catalog"
	"github.com/parkfair/contest-engine/internal/config"
	"github.com/parkfair/contest-engine/internal/domain"
	"github.com/parkfair/contest-engine/internal/engine"
	"github.com/parkfair/contest-engine/internal/observability"
)

var evaluateFlags struct {
	catalogPath string
	requestPath string
	liveWeather bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one offline evaluation from a request file",
	Long: "Evaluate reads an evaluation request JSON file (see 'contestctl sample')\n" +
		"and prints the full evaluation result. Weather defenses require\n" +
		"--live-weather, which calls the configured weather archive.",
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.catalogPath, "catalog", "", "Path to a kit catalog YAML (default: embedded catalog)")
	f.StringVar(&evaluateFlags.requestPath, "request", "", "Path to an evaluation request JSON file (required)")
	f.BoolVar(&evaluateFlags.liveWeather, "live-weather", false, "Consult the historical weather archive")

	_ = evaluateCmd.MarkFlagRequired("request")
}

// evaluationRequest mirrors the HTTP API request shape for offline use.
type evaluationRequest struct {
	Ticket struct {
		TicketNumber    string  `json:"ticketNumber"`
		Date            string  `json:"date"`
		Time            string  `json:"time,omitempty"`
		Location        string  `json:"location"`
		ViolationCode   string  `json:"violationCode"`
		Description     string  `json:"description,omitempty"`
		Amount          float64 `json:"amount"`
		DaysSinceTicket *int    `json:"daysSinceTicket,omitempty"`
		HadSignageIssue bool    `json:"hadSignageIssue,omitempty"`
		SignageDetail   string  `json:"signageDetail,omitempty"`
		HadEmergency    bool    `json:"hadEmergency,omitempty"`
		MeterBroken     bool    `json:"meterBroken,omitempty"`
		PermitDisplayed bool    `json:"permitDisplayed,omitempty"`
		VehicleMoved    bool    `json:"vehicleMoved,omitempty"`
	} `json:"ticket"`
	Evidence domain.UserEvidence `json:"evidence"`
	Grounds  []string            `json:"grounds,omitempty"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(evaluateFlags.requestPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req evaluationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	registry, err := catalog.Load(evaluateFlags.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	var weather domain.WeatherLookup
	if evaluateFlags.liveWeather {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		weather = openmeteo.NewClient(cfg.WeatherBaseURL, cfg.CityLat, cfg.CityLon,
			cfg.SnowThresholdInches, cfg.WeatherTimeout, logger)
	}

	facts := domain.TicketFacts{
		TicketNumber:    req.Ticket.TicketNumber,
		Time:            req.Ticket.Time,
		Location:        req.Ticket.Location,
		ViolationCode:   req.Ticket.ViolationCode,
		Description:     req.Ticket.Description,
		Amount:          req.Ticket.Amount,
		HadSignageIssue: req.Ticket.HadSignageIssue,
		SignageDetail:   req.Ticket.SignageDetail,
		HadEmergency:    req.Ticket.HadEmergency,
		MeterBroken:     req.Ticket.MeterBroken,
		PermitDisplayed: req.Ticket.PermitDisplayed,
		VehicleMoved:    req.Ticket.VehicleMoved,
	}
	if req.Ticket.Date != "" {
		date, err := time.Parse("2006-01-02", req.Ticket.Date)
		if err != nil {
			return fmt.Errorf("invalid ticket date %q, expected YYYY-MM-DD", req.Ticket.Date)
		}
		facts.Date = date
	}
	if req.Ticket.DaysSinceTicket != nil {
		facts.DaysSinceTicket = *req.Ticket.DaysSinceTicket
	} else if !facts.Date.IsZero() {
		facts.DaysSinceTicket = domain.DaysSince(facts.Date)
	}

	eng := engine.New(registry, weather, logger, metrics)
	eval := eng.Evaluate(cmd.Context(), facts, req.Evidence, req.Grounds)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(eval)
}
