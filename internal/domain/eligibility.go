package domain

// EligibilityResult classifies eligibility-rule failures for one ticket.
type EligibilityResult struct {
	Eligible          bool
	Warnings          []string
	DisqualifyReasons []string
}

// CheckEligibility runs the kit's rules against the ticket facts in
// declaration order. A failed rule contributes its message to Warnings or
// DisqualifyReasons according to its failure action; suggest_alternative is
// reserved and currently contributes nothing. The ticket is eligible iff no
// disqualifying rule failed.
func CheckEligibility(kit *ContestKit, facts TicketFacts) EligibilityResult {
	res := EligibilityResult{Eligible: true}
	for _, rule := range kit.Eligibility {
		if rule.Check.Passes(facts) {
			continue
		}
		switch rule.OnFailure {
		case ActionDisqualify:
			res.DisqualifyReasons = append(res.DisqualifyReasons, rule.Message)
		case ActionWarn:
			res.Warnings = append(res.Warnings, rule.Message)
		}
	}
	res.Eligible = len(res.DisqualifyReasons) == 0
	return res
}
