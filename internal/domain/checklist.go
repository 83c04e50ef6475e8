package domain

import "sort"

// ChecklistItem is one evidence item annotated for the user: which tier it
// came from, whether it supports the selected argument, and whether the
// user's inventory already covers it.
type ChecklistItem struct {
	EvidenceItem
	Tier             EvidenceTier `json:"tier"`
	SupportsSelected bool         `json:"supportsSelected"`
	Provided         bool         `json:"provided"`
}

// BuildChecklist flattens the kit's evidence tiers into a single prioritized
// list: items supporting the selected argument come first, ordered by
// descending impact; everything else keeps catalog order. Tier membership is
// preserved as metadata only. Each item is annotated with whether the user's
// evidence inventory indicates possession.
func BuildChecklist(kit *ContestKit, selected *ArgumentTemplate, ev UserEvidence) []ChecklistItem {
	supporting := make(map[string]bool, len(selected.SupportingEvidence))
	for _, id := range selected.SupportingEvidence {
		supporting[id] = true
	}

	var items []ChecklistItem
	appendTier := func(tier EvidenceTier, src []EvidenceItem) {
		for _, it := range src {
			items = append(items, ChecklistItem{
				EvidenceItem:     it,
				Tier:             tier,
				SupportsSelected: supporting[it.ID],
				Provided:         ev.Satisfies(it.ID),
			})
		}
	}
	appendTier(TierRequired, kit.Evidence.Required)
	appendTier(TierRecommended, kit.Evidence.Recommended)
	appendTier(TierOptional, kit.Evidence.Optional)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SupportsSelected != items[j].SupportsSelected {
			return items[i].SupportsSelected
		}
		if items[i].SupportsSelected {
			return items[i].Impact > items[j].Impact
		}
		return false
	})

	return items
}
