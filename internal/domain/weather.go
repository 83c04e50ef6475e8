package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// WeatherRecord is one day of historical weather as reported by the lookup
// collaborator.
type WeatherRecord struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Conditions  []string  `json:"conditions,omitempty"`
	// SnowfallInches is the official snowfall total for the day.
	SnowfallInches float64 `json:"snowfallInches"`
	// HasAdverseWeather is the weak gate: any adverse conditions at all.
	HasAdverseWeather bool `json:"hasAdverseWeather"`
	// DefenseRelevant is the strict, legally meaningful gate: official
	// snowfall below the enforcement minimum, meaning a snow-route ban was
	// never triggered that day.
	DefenseRelevant bool `json:"defenseRelevant"`
}

// WeatherLookup retrieves historical weather for a calendar date. It may
// fail on transient errors; callers must degrade gracefully.
type WeatherLookup interface {
	HistoricalWeather(ctx context.Context, date time.Time) (WeatherRecord, error)
}

// WeatherDefense summarizes whether weather evidence is usable for a ticket
// and, when it is, the defense paragraph to weave into the argument.
type WeatherDefense struct {
	Applicable bool          `json:"applicable"`
	Record     WeatherRecord `json:"record"`
	Paragraph  string        `json:"paragraph,omitempty"`
}

// BuildWeatherDefense gates a weather record by the kit's relevance class and
// synthesizes the defense paragraph when usable. Primary relevance requires
// the strict DefenseRelevant flag; supporting and emergency accept the weaker
// HasAdverseWeather flag. Returns nil for WeatherNone.
func BuildWeatherDefense(rel WeatherRelevance, rec WeatherRecord) *WeatherDefense {
	var usable bool
	switch rel {
	case WeatherPrimary:
		usable = rec.DefenseRelevant
	case WeatherSupporting, WeatherEmergency:
		usable = rec.HasAdverseWeather
	default:
		return nil
	}

	wd := &WeatherDefense{Applicable: usable, Record: rec}
	if usable {
		wd.Paragraph = defenseParagraph(rel, rec)
	}
	return wd
}

// defenseParagraph words the defense differently per relevance class:
// primary asserts the restriction's trigger was never met and the citation
// should not have issued; supporting frames weather as a contributing,
// non-dispositive factor; emergency frames it as excusing non-compliance.
func defenseParagraph(rel WeatherRelevance, rec WeatherRecord) string {
	date := rec.Date.Format("January 2, 2006")
	desc := rec.Description
	conds := strings.Join(rec.Conditions, ", ")
	if conds == "" {
		conds = "no notable conditions recorded"
	}

	switch rel {
	case WeatherPrimary:
		return fmt.Sprintf(
			"Official weather records for %s show %s (%s). Accumulation never reached the minimum that puts the restriction into effect, so citations issued under it that day should not have been written.",
			date, desc, conds)
	case WeatherSupporting:
		return fmt.Sprintf(
			"Weather records for %s show %s (%s). These conditions reduced visibility and made compliance substantially more difficult, and should be weighed as a contributing factor in this contest.",
			date, desc, conds)
	case WeatherEmergency:
		return fmt.Sprintf(
			"Weather records for %s show %s (%s). These conditions created an unsafe situation in which strict compliance would have put people and property at risk, excusing the violation.",
			date, desc, conds)
	default:
		return ""
	}
}
