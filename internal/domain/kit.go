package domain

// WeatherRelevance describes how strongly historical weather can excuse or
// invalidate a citation for a violation type.
type WeatherRelevance string

const (
	// WeatherNone marks weather as irrelevant; the lookup is never consulted.
	WeatherNone WeatherRelevance = ""
	// WeatherPrimary means weather alone can invalidate the citation, e.g.
	// snowfall below the enforcement threshold for a snow-route ban.
	WeatherPrimary WeatherRelevance = "primary"
	// WeatherSupporting means weather contributes context but does not win
	// on its own (visibility, access difficulty).
	WeatherSupporting WeatherRelevance = "supporting"
	// WeatherEmergency means weather created unsafe conditions that excused
	// non-compliance.
	WeatherEmergency WeatherRelevance = "emergency"
)

// FailureAction is what happens when an eligibility rule fails.
type FailureAction string

const (
	ActionDisqualify         FailureAction = "disqualify"
	ActionWarn               FailureAction = "warn"
	ActionSuggestAlternative FailureAction = "suggest_alternative" // reserved, no runtime effect
)

// CheckKind discriminates the typed rule-check variants.
type CheckKind string

const (
	// CheckAlwaysTrue is the explicit fail-open variant: any eligibility
	// expression the catalog grammar does not model parses to this.
	CheckAlwaysTrue CheckKind = "always_true"
	// CheckDaysSinceTicket compares the ticket's age in days to a constant.
	CheckDaysSinceTicket CheckKind = "days_since_ticket"
)

// ComparatorOp is the comparison inside a RuleCheck.
type ComparatorOp string

const (
	CmpLTE ComparatorOp = "<="
	CmpGTE ComparatorOp = ">="
	CmpLT  ComparatorOp = "<"
	CmpGT  ComparatorOp = ">"
	CmpEQ  ComparatorOp = "=="
)

// RuleCheck is the typed predicate behind an eligibility rule.
type RuleCheck struct {
	Kind  CheckKind
	Op    ComparatorOp
	Value int
}

// Passes evaluates the check against ticket facts. Unmodeled kinds and
// comparators pass unconditionally.
func (c RuleCheck) Passes(facts TicketFacts) bool {
	if c.Kind != CheckDaysSinceTicket {
		return true
	}
	d := facts.DaysSinceTicket
	switch c.Op {
	case CmpLTE:
		return d <= c.Value
	case CmpGTE:
		return d >= c.Value
	case CmpLT:
		return d < c.Value
	case CmpGT:
		return d > c.Value
	case CmpEQ:
		return d == c.Value
	default:
		return true
	}
}

// EligibilityRule gates whether a kit applies to a given ticket.
type EligibilityRule struct {
	ID          string
	Description string
	Check       RuleCheck
	OnFailure   FailureAction
	Message     string
}

// EvidenceTier is the required / recommended / optional grouping within a kit.
type EvidenceTier string

const (
	TierRequired    EvidenceTier = "required"
	TierRecommended EvidenceTier = "recommended"
	TierOptional    EvidenceTier = "optional"
)

// EvidenceItem is one piece of evidence a kit knows about.
type EvidenceItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Impact      float64 `json:"impact"` // 0–1 relative strength
	Example     string  `json:"example,omitempty"`
	Tips        string  `json:"tips,omitempty"`
}

// EvidenceCatalog groups a kit's evidence items by tier.
type EvidenceCatalog struct {
	Required    []EvidenceItem
	Recommended []EvidenceItem
	Optional    []EvidenceItem
}

// ConditionOp is a comparison operator on an ArgumentCondition.
type ConditionOp string

const (
	OpEquals      ConditionOp = "equals"
	OpNotEquals   ConditionOp = "notEquals"
	OpExists      ConditionOp = "exists"
	OpNotExists   ConditionOp = "notExists"
	OpGreaterThan ConditionOp = "greaterThan"
	OpLessThan    ConditionOp = "lessThan"
	OpContains    ConditionOp = "contains"
)

// ArgumentCondition gates an argument's applicability on one context field.
type ArgumentCondition struct {
	Field string      `json:"field"`
	Op    ConditionOp `json:"op"`
	Value any         `json:"value,omitempty"`
}

// ArgumentRole is the structural slot an argument occupies within its kit.
type ArgumentRole string

const (
	RolePrimary     ArgumentRole = "primary"
	RoleSecondary   ArgumentRole = "secondary"
	RoleFallback    ArgumentRole = "fallback"
	RoleSituational ArgumentRole = "situational"
)

// ArgumentCategory tags the legal theory an argument rests on.
type ArgumentCategory string

const (
	CategoryProcedural     ArgumentCategory = "procedural"
	CategorySignage        ArgumentCategory = "signage"
	CategoryEmergency      ArgumentCategory = "emergency"
	CategoryWeather        ArgumentCategory = "weather"
	CategoryTechnical      ArgumentCategory = "technical"
	CategoryCircumstantial ArgumentCategory = "circumstantial"
	CategoryVisibility     ArgumentCategory = "visibility"
)

// ArgumentTemplate is one contestation template with its applicability
// conditions, supporting evidence, and historical win rate.
type ArgumentTemplate struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Role               ArgumentRole        `json:"role"`
	Category           ArgumentCategory    `json:"category"`
	Text               string              `json:"text"`
	RequiredFacts      []string            `json:"requiredFacts,omitempty"`
	WinRate            float64             `json:"winRate"`
	Conditions         []ArgumentCondition `json:"conditions,omitempty"`
	SupportingEvidence []string            `json:"supportingEvidence,omitempty"`
}

// ContestKit is the per-violation-type reference record.
type ContestKit struct {
	ViolationID      string
	Name             string
	Category         string
	BaseFine         float64
	BaseWinRate      float64
	WeatherRelevance WeatherRelevance
	Eligibility      []EligibilityRule
	Evidence         EvidenceCatalog
	Arguments        []ArgumentTemplate
	Tips             string
	Pitfalls         string
}

// Fallback returns the kit's condition-free last-resort argument, or nil if
// the kit is malformed (the catalog loader rejects such kits).
func (k *ContestKit) Fallback() *ArgumentTemplate {
	return k.argumentByRole(RoleFallback)
}

// Primary returns the kit's primary argument.
func (k *ContestKit) Primary() *ArgumentTemplate {
	return k.argumentByRole(RolePrimary)
}

func (k *ContestKit) argumentByRole(role ArgumentRole) *ArgumentTemplate {
	for i := range k.Arguments {
		if k.Arguments[i].Role == role {
			return &k.Arguments[i]
		}
	}
	return nil
}

// Candidates returns the arguments eligible for scoring: everything except
// the fallback.
func (k *ContestKit) Candidates() []*ArgumentTemplate {
	out := make([]*ArgumentTemplate, 0, len(k.Arguments))
	for i := range k.Arguments {
		if k.Arguments[i].Role != RoleFallback {
			out = append(out, &k.Arguments[i])
		}
	}
	return out
}
