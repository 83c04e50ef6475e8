package domain

import (
	"sort"
	"strings"
)

const (
	evidenceBonus = 10.0
	weatherBonus  = 25.0
	groundsBonus  = 15.0
)

// Selection is the outcome of argument scoring: the best argument and, when
// one exists, a backup.
type Selection struct {
	Selected *ArgumentTemplate
	Backup   *ArgumentTemplate
}

type scoredArgument struct {
	arg   *ArgumentTemplate
	score float64
}

// SelectArgument picks the best and second-best argument for the context.
//
// Candidates are the kit's primary, secondary, and situational arguments;
// the fallback never competes, it is the last resort. Candidates whose
// conditions are not all satisfied are filtered out. Survivors score
// winRate*100, +10 per supporting-evidence id the user's inventory covers,
// +25 for a weather-category argument when a weather defense is usable, and
// +15 when a user-typed ground overlaps the argument's display name.
//
// A usable weather defense promotes the best positive-scoring
// weather-category survivor to Selected regardless of raw ranking, so a
// statutory weather defense is never buried under a higher-win-rate argument
// that fits the facts less precisely.
func SelectArgument(kit *ContestKit, c EvalContext) Selection {
	var survivors []scoredArgument
	for _, arg := range kit.Candidates() {
		if !ConditionsSatisfied(c, arg) {
			continue
		}
		survivors = append(survivors, scoredArgument{arg: arg, score: scoreArgument(arg, c)})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].score > survivors[j].score
	})

	fallback := kit.Fallback()

	if c.WeatherUsable() {
		if sel := weatherPriority(survivors, fallback); sel != nil {
			return *sel
		}
	}

	switch len(survivors) {
	case 0:
		return Selection{Selected: fallback}
	case 1:
		return Selection{Selected: survivors[0].arg, Backup: fallback}
	default:
		return Selection{Selected: survivors[0].arg, Backup: survivors[1].arg}
	}
}

func scoreArgument(arg *ArgumentTemplate, c EvalContext) float64 {
	score := arg.WinRate * 100
	for _, id := range arg.SupportingEvidence {
		if c.Evidence.Satisfies(id) {
			score += evidenceBonus
		}
	}
	if arg.Category == CategoryWeather && c.WeatherUsable() {
		score += weatherBonus
	}
	if groundsMatch(c.Grounds, arg.Name) {
		score += groundsBonus
	}
	return score
}

// weatherPriority returns the selection preferring the best weather-category
// survivor with a positive score, or nil when none survived filtering.
func weatherPriority(survivors []scoredArgument, fallback *ArgumentTemplate) *Selection {
	for _, s := range survivors {
		if s.arg.Category != CategoryWeather || s.score <= 0 {
			continue
		}
		sel := Selection{Selected: s.arg, Backup: fallback}
		for _, other := range survivors {
			if other.arg.Category != CategoryWeather {
				sel.Backup = other.arg
				break
			}
		}
		return &sel
	}
	return nil
}

// groundsMatch reports whether any user-typed ground textually overlaps the
// argument name, case-insensitive, substring in either direction.
func groundsMatch(grounds []string, name string) bool {
	lname := strings.ToLower(name)
	for _, g := range grounds {
		lg := strings.ToLower(strings.TrimSpace(g))
		if lg == "" {
			continue
		}
		if strings.Contains(lname, lg) || strings.Contains(lg, lname) {
			return true
		}
	}
	return false
}
