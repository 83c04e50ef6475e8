package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWinRate_BaseRate(t *testing.T) {
	arg := &ArgumentTemplate{WinRate: 0.40}
	assert.InDelta(t, 0.40, EstimateWinRate(EvalContext{}, arg), 1e-9)
}

func TestEstimateWinRate_EvidenceBoosts(t *testing.T) {
	arg := &ArgumentTemplate{WinRate: 0.40}
	c := EvalContext{Evidence: UserEvidence{
		HasPhotos:    true,
		HasWitnesses: true,
		HasDocuments: true,
	}}

	// 0.40 + 0.10 + 0.08 + 0.07
	assert.InDelta(t, 0.65, EstimateWinRate(c, arg), 1e-9)
}

func TestEstimateWinRate_WeatherBoostRequiresWeatherCategory(t *testing.T) {
	c := EvalContext{Weather: usableWeather()}

	weather := &ArgumentTemplate{WinRate: 0.40, Category: CategoryWeather}
	assert.InDelta(t, 0.52, EstimateWinRate(c, weather), 1e-9)

	signage := &ArgumentTemplate{WinRate: 0.40, Category: CategorySignage}
	assert.InDelta(t, 0.40, EstimateWinRate(c, signage), 1e-9)
}

func TestEstimateWinRate_TimingPenaltiesAccumulate(t *testing.T) {
	arg := &ArgumentTemplate{WinRate: 0.40}

	assert.InDelta(t, 0.40, EstimateWinRate(EvalContext{Facts: TicketFacts{DaysSinceTicket: 14}}, arg), 1e-9)
	assert.InDelta(t, 0.35, EstimateWinRate(EvalContext{Facts: TicketFacts{DaysSinceTicket: 15}}, arg), 1e-9)
	// Past 60 days both penalties apply.
	assert.InDelta(t, 0.20, EstimateWinRate(EvalContext{Facts: TicketFacts{DaysSinceTicket: 65}}, arg), 1e-9)
}

func TestEstimateWinRate_Clamped(t *testing.T) {
	low := &ArgumentTemplate{WinRate: 0.10}
	c := EvalContext{Facts: TicketFacts{DaysSinceTicket: 90}}
	assert.InDelta(t, MinWinRate, EstimateWinRate(c, low), 1e-9)

	high := &ArgumentTemplate{WinRate: 0.90, Category: CategoryWeather}
	c = EvalContext{
		Evidence: UserEvidence{HasPhotos: true, HasWitnesses: true, HasDocuments: true},
		Weather:  usableWeather(),
	}
	assert.InDelta(t, MaxWinRate, EstimateWinRate(c, high), 1e-9)
}

func TestEstimateConfidence_Base(t *testing.T) {
	arg := &ArgumentTemplate{WinRate: 0.30}
	assert.InDelta(t, 0.5, EstimateConfidence(EvalContext{}, arg), 1e-9)
}

func TestEstimateConfidence_WinRateThresholds(t *testing.T) {
	assert.InDelta(t, 0.5, EstimateConfidence(EvalContext{}, &ArgumentTemplate{WinRate: 0.40}), 1e-9,
		"0.40 is not above the first threshold")
	assert.InDelta(t, 0.6, EstimateConfidence(EvalContext{}, &ArgumentTemplate{WinRate: 0.45}), 1e-9)
	assert.InDelta(t, 0.7, EstimateConfidence(EvalContext{}, &ArgumentTemplate{WinRate: 0.55}), 1e-9,
		"both thresholds stack")
}

func TestEstimateConfidence_CappedAtOne(t *testing.T) {
	c := EvalContext{
		Evidence: UserEvidence{HasPhotos: true, HasDocuments: true, HasWitnesses: true},
		Weather:  usableWeather(),
	}
	// 0.5 + 0.15 + 0.10 + 0.10 + 0.10 + 0.10 + 0.10 = 1.15, capped.
	got := EstimateConfidence(c, &ArgumentTemplate{WinRate: 0.55})
	assert.InDelta(t, 1.0, got, 1e-9)
}
