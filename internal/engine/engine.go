// Package engine sequences the contest evaluation pipeline:
// eligibility → weather → selection → fill → win rate → confidence →
// checklist → assembly. Stages are strictly sequential within one
// evaluation; evaluations share no mutable state, so the engine is safe for
// unlimited concurrent use.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parkfair/contest-engine/internal/domain"
	"github.com/parkfair/contest-engine/internal/observability"
)

// Fixed parameters of the no-kit generic fallback evaluation and of the
// recommendation threshold.
const (
	genericWinRate      = 0.15
	genericConfidence   = 0.3
	genericDeadlineDays = 21
	recommendThreshold  = 0.30
)

// Catalog is the read-only kit lookup the engine evaluates against.
type Catalog interface {
	Get(violationCode string) *domain.ContestKit
	Len() int
}

// Engine evaluates citation contests against a kit catalog, with an optional
// historical weather collaborator.
type Engine struct {
	catalog Catalog
	weather domain.WeatherLookup
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine. Pass a nil weather lookup to disable weather
// defenses entirely.
func New(catalog Catalog, weather domain.WeatherLookup, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		catalog: catalog,
		weather: weather,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil when the engine can serve evaluations.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if e.catalog.Len() == 0 {
		return errors.New("kit catalog is empty")
	}
	return nil
}

// Evaluate runs the full pipeline for one citation. It never returns an
// error: a missing kit degrades to the generic evaluation and a failed
// weather lookup degrades to "no weather defense". The only suspension point
// is the weather call, which honors ctx.
func (e *Engine) Evaluate(ctx context.Context, facts domain.TicketFacts, evidence domain.UserEvidence, grounds []string) domain.ContestEvaluation {
	return e.evaluate(ctx, e.catalog.Get(facts.ViolationCode), facts, evidence, grounds)
}

func (e *Engine) evaluate(ctx context.Context, kit *domain.ContestKit, facts domain.TicketFacts, evidence domain.UserEvidence, grounds []string) domain.ContestEvaluation {
	start := time.Now()

	if kit == nil {
		e.metrics.Evaluations.WithLabelValues("fallback").Inc()
		e.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
		return e.genericEvaluation(facts)
	}

	eligibility := domain.CheckEligibility(kit, facts)
	weather := e.resolveWeather(ctx, kit, facts)

	ectx := domain.EvalContext{
		Facts:    facts,
		Evidence: evidence,
		Weather:  weather,
		Grounds:  grounds,
	}

	selection := domain.SelectArgument(kit, ectx)
	text := domain.FillTemplate(selection.Selected, ectx)
	winRate := domain.EstimateWinRate(ectx, selection.Selected)
	confidence := domain.EstimateConfidence(ectx, selection.Selected)
	checklist := domain.BuildChecklist(kit, selection.Selected, evidence)

	recommend := eligibility.Eligible && winRate >= recommendThreshold

	outcome := "not_recommended"
	if recommend {
		outcome = "recommended"
	}
	e.metrics.Evaluations.WithLabelValues(outcome).Inc()
	e.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	e.logger.Debug("evaluation complete",
		"violation_code", facts.ViolationCode,
		"kit", kit.ViolationID,
		"selected", selection.Selected.ID,
		"recommend", recommend,
		"win_rate", winRate,
	)

	return domain.ContestEvaluation{
		Recommend:         recommend,
		Confidence:        confidence,
		EstimatedWinRate:  winRate,
		SelectedArgument:  selection.Selected,
		BackupArgument:    selection.Backup,
		ArgumentText:      text,
		WeatherDefense:    weather,
		EvidenceChecklist: checklist,
		Warnings:          eligibility.Warnings,
		DisqualifyReasons: eligibility.DisqualifyReasons,
		EvaluatedAt:       domain.Now(),
	}
}

// ArgumentRecommendation is the convenience result: just the best argument
// and whether a weather defense applies.
type ArgumentRecommendation struct {
	Argument       *domain.ArgumentTemplate
	WeatherApplies bool
}

// RecommendedArgument is a thin wrapper over Evaluate for callers that only
// need the best argument for a violation code and ticket date. Returns nil
// when no kit covers the code.
func (e *Engine) RecommendedArgument(ctx context.Context, violationCode string, ticketDate time.Time, evidence domain.UserEvidence) *ArgumentRecommendation {
	kit := e.catalog.Get(violationCode)
	if kit == nil {
		return nil
	}
	facts := domain.TicketFacts{
		ViolationCode:   violationCode,
		Date:            ticketDate,
		DaysSinceTicket: domain.DaysSince(ticketDate),
	}
	eval := e.evaluate(ctx, kit, facts, evidence, nil)
	return &ArgumentRecommendation{
		Argument:       eval.SelectedArgument,
		WeatherApplies: eval.WeatherDefense != nil && eval.WeatherDefense.Applicable,
	}
}

// resolveWeather consults the lookup when the kit declares weather relevance.
// Lookup failure is logged and treated as "no weather data"; the pipeline
// continues without a defense.
func (e *Engine) resolveWeather(ctx context.Context, kit *domain.ContestKit, facts domain.TicketFacts) *domain.WeatherDefense {
	if kit.WeatherRelevance == domain.WeatherNone || e.weather == nil {
		return nil
	}

	record, err := e.weather.HistoricalWeather(ctx, facts.Date)
	if err != nil {
		e.metrics.WeatherLookups.WithLabelValues("error").Inc()
		e.logger.Warn("weather lookup failed, continuing without weather defense",
			"violation_code", facts.ViolationCode,
			"date", facts.Date.Format("2006-01-02"),
			"error", err,
		)
		return nil
	}
	e.metrics.WeatherLookups.WithLabelValues("success").Inc()

	return domain.BuildWeatherDefense(kit.WeatherRelevance, record)
}

// genericEvaluation is the degraded result when no kit covers the violation
// code: a generic template, fixed win rate and confidence, and a
// recommendation based only on contest timing.
func (e *Engine) genericEvaluation(facts domain.TicketFacts) domain.ContestEvaluation {
	generic := &domain.ArgumentTemplate{
		ID:       "generic_contest",
		Name:     "General Contest",
		Role:     domain.RoleFallback,
		Category: domain.CategoryProcedural,
		WinRate:  genericWinRate,
		Text: "I am respectfully contesting citation [TICKET_NUMBER], issued on " +
			"[DATE] at [LOCATION] for violation [VIOLATION_CODE] in the amount of " +
			"[AMOUNT]. I believe this citation was issued in error because [REASON]. " +
			"I ask that the circumstances be reviewed and the citation dismissed.",
	}

	ectx := domain.EvalContext{Facts: facts}

	e.logger.Info("no contest kit for violation code, using generic template",
		"violation_code", facts.ViolationCode)

	return domain.ContestEvaluation{
		Recommend:        facts.DaysSinceTicket <= genericDeadlineDays,
		Confidence:       genericConfidence,
		EstimatedWinRate: genericWinRate,
		SelectedArgument: generic,
		ArgumentText:     domain.FillTemplate(generic, ectx),
		Warnings: []string{
			fmt.Sprintf("no contest kit available for violation code %q, using generic template", facts.ViolationCode),
		},
		UsedGenericKit: true,
		EvaluatedAt:    domain.Now(),
	}
}
