package engine

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkfair/contest-engine/internal/catalog"
	"github.com/parkfair/contest-engine/internal/domain"
	"github.com/parkfair/contest-engine/internal/observability"
)

// fakeWeather counts invocations and serves a canned record or error.
type fakeWeather struct {
	record domain.WeatherRecord
	err    error
	calls  int
}

func (f *fakeWeather) HistoricalWeather(_ context.Context, _ time.Time) (domain.WeatherRecord, error) {
	f.calls++
	if f.err != nil {
		return domain.WeatherRecord{}, f.err
	}
	return f.record, nil
}

func newTestEngine(t *testing.T, weather domain.WeatherLookup) *Engine {
	t.Helper()
	reg, err := catalog.Default()
	require.NoError(t, err)
	return New(reg, weather, slog.Default(), observability.NewMetricsForTesting())
}

func streetCleaningFacts(days int) domain.TicketFacts {
	return domain.TicketFacts{
		TicketNumber:    "T-555001",
		Date:            time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Location:        "1200 N Clark St",
		ViolationCode:   "street_cleaning",
		Amount:          60,
		DaysSinceTicket: days,
		HadSignageIssue: true,
	}
}

func TestEvaluate_SignageScenario(t *testing.T) {
	e := newTestEngine(t, nil)
	evidence := domain.UserEvidence{HasPhotos: true}

	eval := e.Evaluate(context.Background(), streetCleaningFacts(5), evidence, nil)

	require.NotNil(t, eval.SelectedArgument)
	assert.Equal(t, "sc_signage_inadequate", eval.SelectedArgument.ID)
	assert.True(t, eval.Recommend)
	assert.False(t, eval.UsedGenericKit)
	assert.Empty(t, eval.DisqualifyReasons)
	assert.Greater(t, eval.EstimatedWinRate, 0.30)

	assert.Contains(t, eval.ArgumentText, "T-555001")
	assert.Contains(t, eval.ArgumentText, "1200 N Clark St")
	assert.NotContains(t, eval.ArgumentText, "[TICKET_NUMBER]")

	require.NotEmpty(t, eval.EvidenceChecklist)
	assert.True(t, eval.EvidenceChecklist[0].SupportsSelected,
		"checklist leads with evidence for the selected argument")
	assert.False(t, eval.EvaluatedAt.IsZero())
}

func TestEvaluate_UnknownCodeUsesGenericTemplate(t *testing.T) {
	e := newTestEngine(t, nil)
	facts := domain.TicketFacts{
		TicketNumber:    "T-1",
		ViolationCode:   "0-00-000",
		DaysSinceTicket: 5,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)

	assert.True(t, eval.UsedGenericKit)
	assert.True(t, eval.Recommend)
	assert.InDelta(t, 0.15, eval.EstimatedWinRate, 1e-9)
	assert.InDelta(t, 0.3, eval.Confidence, 1e-9)
	require.NotNil(t, eval.SelectedArgument)
	assert.Equal(t, "generic_contest", eval.SelectedArgument.ID)
	assert.Contains(t, eval.ArgumentText, "T-1")
	assert.Contains(t, eval.ArgumentText, "[REASON]", "reason is for the user to complete")
	require.Len(t, eval.Warnings, 1)
	assert.Contains(t, eval.Warnings[0], `"0-00-000"`)
}

func TestEvaluate_GenericRecommendationIsTimingOnly(t *testing.T) {
	e := newTestEngine(t, nil)
	facts := domain.TicketFacts{ViolationCode: "0-00-000", DaysSinceTicket: 21}

	assert.True(t, e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil).Recommend)

	facts.DaysSinceTicket = 22
	assert.False(t, e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil).Recommend)
}

func TestEvaluate_PastDeadlineDisqualifies(t *testing.T) {
	e := newTestEngine(t, nil)

	eval := e.Evaluate(context.Background(), streetCleaningFacts(30), domain.UserEvidence{HasPhotos: true}, nil)

	assert.False(t, eval.Recommend)
	require.NotEmpty(t, eval.DisqualifyReasons)
	assert.NotNil(t, eval.SelectedArgument,
		"the letter is still assembled so the user can see what they would have argued")
}

func TestEvaluate_WeatherPrimarySelectsWeatherArgument(t *testing.T) {
	fw := &fakeWeather{record: domain.WeatherRecord{
		Date:              time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:       "slight snowfall",
		Conditions:        []string{"snow"},
		SnowfallInches:    1.4,
		HasAdverseWeather: true,
		DefenseRelevant:   true,
	}}
	e := newTestEngine(t, fw)

	facts := domain.TicketFacts{
		TicketNumber:    "T-2",
		Date:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		ViolationCode:   "snow_route",
		DaysSinceTicket: 3,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)

	assert.Equal(t, 1, fw.calls)
	require.NotNil(t, eval.WeatherDefense)
	assert.True(t, eval.WeatherDefense.Applicable)
	require.NotNil(t, eval.SelectedArgument)
	assert.Equal(t, domain.CategoryWeather, eval.SelectedArgument.Category)
	assert.Contains(t, eval.ArgumentText, "1.4 inches")
}

func TestEvaluate_WeatherPrimaryBanInEffectNotPromoted(t *testing.T) {
	// Accumulation met the enforcement minimum, so the ban was properly in
	// effect: the defense is not usable for a primary-relevance kit, no
	// promotion and no weather bonuses.
	fw := &fakeWeather{record: domain.WeatherRecord{
		Date:              time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:       "heavy snowfall",
		Conditions:        []string{"snow"},
		SnowfallInches:    4.2,
		HasAdverseWeather: true,
		DefenseRelevant:   false,
	}}
	e := newTestEngine(t, fw)

	facts := domain.TicketFacts{
		ViolationCode:   "snow_route",
		Date:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DaysSinceTicket: 3,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)

	require.NotNil(t, eval.WeatherDefense)
	assert.False(t, eval.WeatherDefense.Applicable)
	assert.Empty(t, eval.WeatherDefense.Paragraph)

	// The weather argument may still win on its ordinary score, but its win
	// rate carries no weather boost.
	require.NotNil(t, eval.SelectedArgument)
	assert.InDelta(t, eval.SelectedArgument.WinRate, eval.EstimatedWinRate, 1e-9)
}

func TestEvaluate_WeatherIrrelevantKitNeverInvokesLookup(t *testing.T) {
	fw := &fakeWeather{}
	e := newTestEngine(t, fw)

	facts := domain.TicketFacts{
		ViolationCode:   "expired_meter",
		Date:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DaysSinceTicket: 3,
		MeterBroken:     true,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)

	assert.Equal(t, 0, fw.calls)
	assert.Nil(t, eval.WeatherDefense)
}

func TestEvaluate_WeatherLookupFailureDegradesGracefully(t *testing.T) {
	fw := &fakeWeather{err: errors.New("upstream timeout")}
	e := newTestEngine(t, fw)

	facts := domain.TicketFacts{
		ViolationCode:   "snow_route",
		Date:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DaysSinceTicket: 3,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)

	assert.Equal(t, 1, fw.calls)
	assert.Nil(t, eval.WeatherDefense)
	require.NotNil(t, eval.SelectedArgument, "evaluation proceeds without a weather defense")
	assert.Contains(t, eval.ArgumentText, "[SNOWFALL]",
		"weather tokens stay unfilled for the reviewer to spot")
}

func TestEvaluate_NilWeatherLookupDisablesWeather(t *testing.T) {
	e := newTestEngine(t, nil)

	facts := domain.TicketFacts{
		ViolationCode:   "snow_route",
		Date:            time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DaysSinceTicket: 3,
	}

	eval := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)
	assert.Nil(t, eval.WeatherDefense)
}

func TestEvaluate_GroundsSteerSelection(t *testing.T) {
	e := newTestEngine(t, nil)
	facts := domain.TicketFacts{
		ViolationCode:   "street_cleaning",
		Date:            time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		DaysSinceTicket: 5,
		VehicleMoved:    true,
	}

	without := e.Evaluate(context.Background(), facts, domain.UserEvidence{}, nil)
	with := e.Evaluate(context.Background(), facts, domain.UserEvidence{},
		[]string{"vehicle moved before cleaning started"})

	require.NotNil(t, without.SelectedArgument)
	require.NotNil(t, with.SelectedArgument)
	assert.NotEqual(t, without.SelectedArgument.ID, with.SelectedArgument.ID,
		"typed grounds shift which argument wins")
}

func TestRecommendedArgument(t *testing.T) {
	e := newTestEngine(t, nil)

	rec := e.RecommendedArgument(context.Background(), "street_cleaning",
		time.Now().AddDate(0, 0, -4), domain.UserEvidence{HasPhotos: true})

	require.NotNil(t, rec)
	require.NotNil(t, rec.Argument)
	assert.False(t, rec.WeatherApplies)

	assert.Nil(t, e.RecommendedArgument(context.Background(), "0-00-000",
		time.Now(), domain.UserEvidence{}))
}

// countingCatalog records how often the engine asks for a kit.
type countingCatalog struct {
	inner Catalog
	gets  int
}

func (c *countingCatalog) Get(code string) *domain.ContestKit {
	c.gets++
	return c.inner.Get(code)
}

func (c *countingCatalog) Len() int { return c.inner.Len() }

func TestRecommendedArgument_SingleCatalogLookup(t *testing.T) {
	reg, err := catalog.Default()
	require.NoError(t, err)
	cc := &countingCatalog{inner: reg}
	e := New(cc, nil, slog.Default(), observability.NewMetricsForTesting())

	rec := e.RecommendedArgument(context.Background(), "street_cleaning",
		time.Now().AddDate(0, 0, -4), domain.UserEvidence{})

	require.NotNil(t, rec)
	assert.Equal(t, 1, cc.gets)
}

func TestCheckReadiness(t *testing.T) {
	e := newTestEngine(t, nil)
	assert.NoError(t, e.CheckReadiness(context.Background()))

	empty, err := catalog.NewRegistry(nil, nil)
	require.NoError(t, err)
	e = New(empty, nil, slog.Default(), observability.NewMetricsForTesting())
	assert.Error(t, e.CheckReadiness(context.Background()))
}
