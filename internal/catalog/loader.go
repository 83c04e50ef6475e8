package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/parkfair/contest-engine/internal/domain"
)

//go:embed kits.yaml
var defaultCatalog []byte

// checkExprRe is the comparator grammar for eligibility check expressions.
// Only deadline-day comparisons are modeled; anything else parses to the
// explicit always-true check, so an unmodeled rule can never block a ticket.
var checkExprRe = regexp.MustCompile(`^\s*daysSinceTicket\s*(<=|>=|==|<|>)\s*(\d+)\s*$`)

// YAML document shapes. Kept separate from the domain types so the file
// format can evolve without touching the engine.

type catalogFile struct {
	Kits    []kitYAML         `yaml:"kits"`
	Aliases map[string]string `yaml:"aliases"`
}

type kitYAML struct {
	ViolationID      string        `yaml:"violation_id"`
	Name             string        `yaml:"name"`
	Category         string        `yaml:"category"`
	BaseFine         float64       `yaml:"base_fine"`
	BaseWinRate      float64       `yaml:"base_win_rate"`
	WeatherRelevance string        `yaml:"weather_relevance"`
	Eligibility      []ruleYAML    `yaml:"eligibility"`
	Evidence         evidenceYAML  `yaml:"evidence"`
	Arguments        []argYAML     `yaml:"arguments"`
	Tips             string        `yaml:"tips"`
	Pitfalls         string        `yaml:"pitfalls"`
}

type ruleYAML struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Check       string `yaml:"check"`
	OnFailure   string `yaml:"on_failure"`
	Message     string `yaml:"message"`
}

type evidenceYAML struct {
	Required    []evidenceItemYAML `yaml:"required"`
	Recommended []evidenceItemYAML `yaml:"recommended"`
	Optional    []evidenceItemYAML `yaml:"optional"`
}

type evidenceItemYAML struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Impact      float64 `yaml:"impact"`
	Example     string  `yaml:"example"`
	Tips        string  `yaml:"tips"`
}

type argYAML struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	Role               string          `yaml:"role"`
	Category           string          `yaml:"category"`
	WinRate            float64         `yaml:"win_rate"`
	Text               string          `yaml:"text"`
	RequiredFacts      []string        `yaml:"required_facts"`
	Conditions         []conditionYAML `yaml:"conditions"`
	SupportingEvidence []string        `yaml:"supporting_evidence"`
}

type conditionYAML struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
}

// Default loads the embedded kit catalog.
func Default() (*Registry, error) {
	return Parse(defaultCatalog)
}

// Load reads a YAML catalog from disk. An empty path loads the embedded
// default catalog.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kit catalog: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML kit catalog.
func Parse(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse kit catalog: %w", err)
	}
	if len(file.Kits) == 0 {
		return nil, errors.New("kit catalog contains no kits")
	}

	kits := make([]*domain.ContestKit, 0, len(file.Kits))
	for _, ky := range file.Kits {
		kit, err := convertKit(ky)
		if err != nil {
			return nil, fmt.Errorf("kit %q: %w", ky.ViolationID, err)
		}
		kits = append(kits, kit)
	}

	return NewRegistry(kits, file.Aliases)
}

func convertKit(ky kitYAML) (*domain.ContestKit, error) {
	if ky.ViolationID == "" {
		return nil, errors.New("missing violation_id")
	}
	if ky.BaseWinRate < 0 || ky.BaseWinRate > 1 {
		return nil, fmt.Errorf("base_win_rate %v outside [0,1]", ky.BaseWinRate)
	}

	relevance, err := parseRelevance(ky.WeatherRelevance)
	if err != nil {
		return nil, err
	}

	kit := &domain.ContestKit{
		ViolationID:      ky.ViolationID,
		Name:             ky.Name,
		Category:         ky.Category,
		BaseFine:         ky.BaseFine,
		BaseWinRate:      ky.BaseWinRate,
		WeatherRelevance: relevance,
		Tips:             ky.Tips,
		Pitfalls:         ky.Pitfalls,
	}

	for _, ry := range ky.Eligibility {
		rule, err := convertRule(ry)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", ry.ID, err)
		}
		kit.Eligibility = append(kit.Eligibility, rule)
	}

	kit.Evidence = domain.EvidenceCatalog{
		Required:    convertEvidence(ky.Evidence.Required),
		Recommended: convertEvidence(ky.Evidence.Recommended),
		Optional:    convertEvidence(ky.Evidence.Optional),
	}
	if err := validateEvidence(kit.Evidence); err != nil {
		return nil, err
	}

	for _, ay := range ky.Arguments {
		arg, err := convertArgument(ay)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", ay.ID, err)
		}
		kit.Arguments = append(kit.Arguments, arg)
	}
	if err := validateArguments(kit.Arguments); err != nil {
		return nil, err
	}

	return kit, nil
}

func parseRelevance(s string) (domain.WeatherRelevance, error) {
	switch s {
	case "", "false":
		return domain.WeatherNone, nil
	case "primary":
		return domain.WeatherPrimary, nil
	case "supporting":
		return domain.WeatherSupporting, nil
	case "emergency":
		return domain.WeatherEmergency, nil
	default:
		return domain.WeatherNone, fmt.Errorf("unknown weather_relevance %q", s)
	}
}

func convertRule(ry ruleYAML) (domain.EligibilityRule, error) {
	var action domain.FailureAction
	switch ry.OnFailure {
	case "disqualify":
		action = domain.ActionDisqualify
	case "warn":
		action = domain.ActionWarn
	case "suggest_alternative":
		action = domain.ActionSuggestAlternative
	default:
		return domain.EligibilityRule{}, fmt.Errorf("unknown on_failure %q", ry.OnFailure)
	}

	return domain.EligibilityRule{
		ID:          ry.ID,
		Description: ry.Description,
		Check:       ParseCheck(ry.Check),
		OnFailure:   action,
		Message:     ry.Message,
	}, nil
}

// ParseCheck parses an eligibility check expression into a typed predicate.
// Expressions outside the deadline-day grammar yield CheckAlwaysTrue.
func ParseCheck(expr string) domain.RuleCheck {
	m := checkExprRe.FindStringSubmatch(expr)
	if m == nil {
		return domain.RuleCheck{Kind: domain.CheckAlwaysTrue}
	}
	value, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.RuleCheck{Kind: domain.CheckAlwaysTrue}
	}
	return domain.RuleCheck{
		Kind:  domain.CheckDaysSinceTicket,
		Op:    domain.ComparatorOp(m[1]),
		Value: value,
	}
}

func convertEvidence(items []evidenceItemYAML) []domain.EvidenceItem {
	out := make([]domain.EvidenceItem, 0, len(items))
	for _, iy := range items {
		out = append(out, domain.EvidenceItem{
			ID:          iy.ID,
			Name:        iy.Name,
			Description: iy.Description,
			Impact:      iy.Impact,
			Example:     iy.Example,
			Tips:        iy.Tips,
		})
	}
	return out
}

func validateEvidence(ev domain.EvidenceCatalog) error {
	seen := map[string]bool{}
	for _, tier := range [][]domain.EvidenceItem{ev.Required, ev.Recommended, ev.Optional} {
		for _, it := range tier {
			if it.ID == "" {
				return errors.New("evidence item missing id")
			}
			if seen[it.ID] {
				return fmt.Errorf("duplicate evidence id %q", it.ID)
			}
			seen[it.ID] = true
			if it.Impact < 0 || it.Impact > 1 {
				return fmt.Errorf("evidence %q impact %v outside [0,1]", it.ID, it.Impact)
			}
		}
	}
	return nil
}

var validConditionOps = map[domain.ConditionOp]bool{
	domain.OpEquals:      true,
	domain.OpNotEquals:   true,
	domain.OpExists:      true,
	domain.OpNotExists:   true,
	domain.OpGreaterThan: true,
	domain.OpLessThan:    true,
	domain.OpContains:    true,
}

func convertArgument(ay argYAML) (domain.ArgumentTemplate, error) {
	role := domain.ArgumentRole(ay.Role)
	switch role {
	case domain.RolePrimary, domain.RoleSecondary, domain.RoleFallback, domain.RoleSituational:
	default:
		return domain.ArgumentTemplate{}, fmt.Errorf("unknown role %q", ay.Role)
	}

	category := domain.ArgumentCategory(ay.Category)
	switch category {
	case domain.CategoryProcedural, domain.CategorySignage, domain.CategoryEmergency,
		domain.CategoryWeather, domain.CategoryTechnical, domain.CategoryCircumstantial,
		domain.CategoryVisibility:
	default:
		return domain.ArgumentTemplate{}, fmt.Errorf("unknown category %q", ay.Category)
	}

	if ay.WinRate < 0 || ay.WinRate > 1 {
		return domain.ArgumentTemplate{}, fmt.Errorf("win_rate %v outside [0,1]", ay.WinRate)
	}

	arg := domain.ArgumentTemplate{
		ID:                 ay.ID,
		Name:               ay.Name,
		Role:               role,
		Category:           category,
		Text:               ay.Text,
		RequiredFacts:      ay.RequiredFacts,
		WinRate:            ay.WinRate,
		SupportingEvidence: ay.SupportingEvidence,
	}

	for _, cy := range ay.Conditions {
		if !domain.KnownConditionField(cy.Field) {
			return domain.ArgumentTemplate{}, fmt.Errorf("condition references unknown field %q", cy.Field)
		}
		op := domain.ConditionOp(cy.Op)
		if !validConditionOps[op] {
			return domain.ArgumentTemplate{}, fmt.Errorf("condition has unknown op %q", cy.Op)
		}
		arg.Conditions = append(arg.Conditions, domain.ArgumentCondition{
			Field: cy.Field,
			Op:    op,
			Value: cy.Value,
		})
	}

	return arg, nil
}

// validateArguments enforces the kit shape: exactly one primary, one
// secondary, and one fallback, with the fallback condition-free.
func validateArguments(args []domain.ArgumentTemplate) error {
	counts := map[domain.ArgumentRole]int{}
	for _, a := range args {
		counts[a.Role]++
		if a.Role == domain.RoleFallback && len(a.Conditions) > 0 {
			return fmt.Errorf("fallback argument %q must have no conditions", a.ID)
		}
	}
	for _, role := range []domain.ArgumentRole{domain.RolePrimary, domain.RoleSecondary, domain.RoleFallback} {
		if counts[role] != 1 {
			return fmt.Errorf("kit needs exactly one %s argument, has %d", role, counts[role])
		}
	}
	return nil
}
