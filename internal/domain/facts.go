package domain

import (
	"sort"
	"strings"
	"time"
)

// TicketFacts is the structured description of one citation plus derived
// timing fields. Constructed per evaluation, never persisted by the engine.
// The engine does not validate facts; callers are responsible for sane input.
type TicketFacts struct {
	TicketNumber  string    `json:"ticketNumber"`
	Date          time.Time `json:"date"`
	Time          string    `json:"time,omitempty"` // as printed on the citation, e.g. "09:42"
	Location      string    `json:"location"`
	ViolationCode string    `json:"violationCode"`
	Description   string    `json:"description,omitempty"`
	Amount        float64   `json:"amount"`

	// DaysSinceTicket is computed by the caller (or via DaysSince).
	DaysSinceTicket int `json:"daysSinceTicket"`

	// Optional contextual flags. A false boolean or empty string means
	// "not claimed", which condition evaluation treats as absent.
	HadSignageIssue bool   `json:"hadSignageIssue,omitempty"`
	SignageDetail   string `json:"signageDetail,omitempty"`
	HadEmergency    bool   `json:"hadEmergency,omitempty"`
	MeterBroken     bool   `json:"meterBroken,omitempty"`
	PermitDisplayed bool   `json:"permitDisplayed,omitempty"`
	VehicleMoved    bool   `json:"vehicleMoved,omitempty"`
}

// UserEvidence is the caller's self-reported inventory of evidence categories.
type UserEvidence struct {
	HasPhotos           bool     `json:"hasPhotos"`
	PhotoTypes          []string `json:"photoTypes,omitempty"`
	HasWitnesses        bool     `json:"hasWitnesses"`
	HasDocuments        bool     `json:"hasDocuments"`
	DocumentTypes       []string `json:"documentTypes,omitempty"`
	HasReceipts         bool     `json:"hasReceipts"`
	HasPoliceReport     bool     `json:"hasPoliceReport"`
	HasMedicalDocuments bool     `json:"hasMedicalDocuments"`
	HasLocationHistory  bool     `json:"hasLocationHistory"`
}

// Satisfies reports whether the user's evidence inventory covers the given
// evidence id, using a fixed category-membership mapping: ids are matched to
// inventory flags by well-known substrings ("photo" → HasPhotos, "police" →
// HasPoliceReport, ...). Ids that map to no category are never satisfied.
func (ev UserEvidence) Satisfies(id string) bool {
	s := strings.ToLower(id)
	switch {
	case strings.Contains(s, "police"):
		return ev.HasPoliceReport
	case strings.Contains(s, "medical"):
		return ev.HasMedicalDocuments
	case strings.Contains(s, "photo"):
		return ev.HasPhotos
	case strings.Contains(s, "witness"):
		return ev.HasWitnesses
	case strings.Contains(s, "receipt"):
		return ev.HasReceipts
	case strings.Contains(s, "location"), strings.Contains(s, "gps"):
		return ev.HasLocationHistory
	case strings.Contains(s, "document"), strings.Contains(s, "permit"),
		strings.Contains(s, "registration"), strings.Contains(s, "statement"):
		return ev.HasDocuments
	default:
		return false
	}
}

// EvalContext bundles everything condition evaluation and scoring can see:
// ticket facts, the user's evidence inventory, the resolved weather defense
// (nil when unavailable), and any free-text contest grounds the user typed.
type EvalContext struct {
	Facts    TicketFacts
	Evidence UserEvidence
	Weather  *WeatherDefense
	Grounds  []string
}

// WeatherUsable reports whether a usable weather defense is present.
func (c EvalContext) WeatherUsable() bool {
	return c.Weather != nil && c.Weather.Applicable
}

// fieldResolvers maps every condition field name the catalog may reference to
// a typed accessor. Optional values resolve to nil when unset so that the
// exists / notExists operators behave like a null-or-undefined check.
// The catalog loader rejects condition fields absent from this table, so a
// typo in kit data fails at load time instead of silently passing here.
var fieldResolvers = map[string]func(EvalContext) any{
	"daysSinceTicket": func(c EvalContext) any { return c.Facts.DaysSinceTicket },
	"amount":          func(c EvalContext) any { return c.Facts.Amount },
	"violationCode":   func(c EvalContext) any { return stringOrNil(c.Facts.ViolationCode) },
	"location":        func(c EvalContext) any { return stringOrNil(c.Facts.Location) },
	"ticketTime":      func(c EvalContext) any { return stringOrNil(c.Facts.Time) },

	"hadSignageIssue": func(c EvalContext) any { return flagOrNil(c.Facts.HadSignageIssue) },
	"signageDetail":   func(c EvalContext) any { return stringOrNil(c.Facts.SignageDetail) },
	"hadEmergency":    func(c EvalContext) any { return flagOrNil(c.Facts.HadEmergency) },
	"meterBroken":     func(c EvalContext) any { return flagOrNil(c.Facts.MeterBroken) },
	"permitDisplayed": func(c EvalContext) any { return flagOrNil(c.Facts.PermitDisplayed) },
	"vehicleMoved":    func(c EvalContext) any { return flagOrNil(c.Facts.VehicleMoved) },

	"hasPhotos":           func(c EvalContext) any { return flagOrNil(c.Evidence.HasPhotos) },
	"hasWitnesses":        func(c EvalContext) any { return flagOrNil(c.Evidence.HasWitnesses) },
	"hasDocuments":        func(c EvalContext) any { return flagOrNil(c.Evidence.HasDocuments) },
	"hasReceipts":         func(c EvalContext) any { return flagOrNil(c.Evidence.HasReceipts) },
	"hasPoliceReport":     func(c EvalContext) any { return flagOrNil(c.Evidence.HasPoliceReport) },
	"hasMedicalDocuments": func(c EvalContext) any { return flagOrNil(c.Evidence.HasMedicalDocuments) },
	"hasLocationHistory":  func(c EvalContext) any { return flagOrNil(c.Evidence.HasLocationHistory) },

	"snowfall": func(c EvalContext) any {
		if c.Weather == nil {
			return nil
		}
		return c.Weather.Record.SnowfallInches
	},
}

// KnownConditionField reports whether name is a legal condition field.
func KnownConditionField(name string) bool {
	_, ok := fieldResolvers[name]
	return ok
}

// ConditionFields returns the sorted list of legal condition field names.
func ConditionFields() []string {
	names := make([]string, 0, len(fieldResolvers))
	for name := range fieldResolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveField returns the context value for a condition field, or nil when
// the field is unknown or its value is unset.
func resolveField(c EvalContext, name string) any {
	fn, ok := fieldResolvers[name]
	if !ok {
		return nil
	}
	return fn(c)
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func flagOrNil(b bool) any {
	if !b {
		return nil
	}
	return true
}

// DaysSince returns whole days elapsed between the given calendar date and
// now, using the package clock. Future dates yield negative values; the
// engine clamps rather than rejects odd input.
func DaysSince(date time.Time) int {
	return int(clock.Now().UTC().Sub(date.UTC()).Hours() / 24)
}
