package domain

// Win-rate bounds. The engine never claims certainty in either direction.
const (
	MinWinRate = 0.05
	MaxWinRate = 0.95
)

// EstimateWinRate adjusts the selected argument's historical win rate by the
// evidence and timing signals in the context, clamped to [MinWinRate,
// MaxWinRate]. Out-of-range inputs (negative day counts, win rates outside
// [0,1] that slipped past catalog validation) clamp rather than error.
func EstimateWinRate(c EvalContext, selected *ArgumentTemplate) float64 {
	rate := selected.WinRate

	if c.Evidence.HasPhotos {
		rate += 0.10
	}
	if c.Evidence.HasWitnesses {
		rate += 0.08
	}
	if c.Evidence.HasDocuments {
		rate += 0.07
	}
	if selected.Category == CategoryWeather && c.WeatherUsable() {
		rate += 0.12
	}

	// Contest-timing penalties are cumulative.
	if c.Facts.DaysSinceTicket > 14 {
		rate -= 0.05
	}
	if c.Facts.DaysSinceTicket > 60 {
		rate -= 0.15
	}

	return clamp(rate, MinWinRate, MaxWinRate)
}

// EstimateConfidence scores how much the recommendation should be trusted
// given available signal density, on a 0–1 scale. This is a separate axis
// from the win rate: abundant evidence raises confidence even when the odds
// of winning stay modest.
func EstimateConfidence(c EvalContext, selected *ArgumentTemplate) float64 {
	conf := 0.5

	if c.Evidence.HasPhotos {
		conf += 0.15
	}
	if c.Evidence.HasDocuments {
		conf += 0.10
	}
	if c.Evidence.HasWitnesses {
		conf += 0.10
	}
	if selected.WinRate > 0.40 {
		conf += 0.10
	}
	if selected.WinRate > 0.50 {
		conf += 0.10
	}
	if c.WeatherUsable() {
		conf += 0.10
	}

	return clamp(conf, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
