package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checklistKit() *ContestKit {
	return &ContestKit{
		Evidence: EvidenceCatalog{
			Required: []EvidenceItem{
				{ID: "ticket_copy", Name: "Copy of Ticket", Impact: 0.2},
			},
			Recommended: []EvidenceItem{
				{ID: "sign_photo", Name: "Photo of Signage", Impact: 0.8},
				{ID: "street_photo", Name: "Photo of Street", Impact: 0.6},
			},
			Optional: []EvidenceItem{
				{ID: "witness_statement", Name: "Witness Statement", Impact: 0.9},
				{ID: "parking_receipt", Name: "Parking Receipt", Impact: 0.3},
			},
		},
	}
}

func TestBuildChecklist_SupportingItemsFirstByImpact(t *testing.T) {
	kit := checklistKit()
	selected := &ArgumentTemplate{
		SupportingEvidence: []string{"sign_photo", "witness_statement"},
	}

	items := BuildChecklist(kit, selected, UserEvidence{})

	require.Len(t, items, 5)
	// Supporting partition first, higher impact first within it.
	assert.Equal(t, "witness_statement", items[0].ID)
	assert.Equal(t, "sign_photo", items[1].ID)
	assert.True(t, items[0].SupportsSelected)
	assert.True(t, items[1].SupportsSelected)

	// Non-supporting items keep catalog order: tiers in sequence.
	assert.Equal(t, "ticket_copy", items[2].ID)
	assert.Equal(t, "street_photo", items[3].ID)
	assert.Equal(t, "parking_receipt", items[4].ID)
	for _, it := range items[2:] {
		assert.False(t, it.SupportsSelected)
	}
}

func TestBuildChecklist_TierMetadataPreserved(t *testing.T) {
	kit := checklistKit()
	items := BuildChecklist(kit, &ArgumentTemplate{}, UserEvidence{})

	byID := map[string]ChecklistItem{}
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, TierRequired, byID["ticket_copy"].Tier)
	assert.Equal(t, TierRecommended, byID["sign_photo"].Tier)
	assert.Equal(t, TierOptional, byID["witness_statement"].Tier)
}

func TestBuildChecklist_ProvidedReflectsInventory(t *testing.T) {
	kit := checklistKit()
	ev := UserEvidence{HasPhotos: true, HasReceipts: true}

	items := BuildChecklist(kit, &ArgumentTemplate{}, ev)

	byID := map[string]bool{}
	for _, it := range items {
		byID[it.ID] = it.Provided
	}

	assert.True(t, byID["sign_photo"])
	assert.True(t, byID["street_photo"])
	assert.True(t, byID["parking_receipt"])
	assert.False(t, byID["witness_statement"])
	assert.False(t, byID["ticket_copy"], "id maps to no inventory category")
}

func TestUserEvidence_Satisfies(t *testing.T) {
	ev := UserEvidence{
		HasPoliceReport:     true,
		HasMedicalDocuments: true,
		HasPhotos:           true,
		HasLocationHistory:  true,
		HasDocuments:        true,
	}

	assert.True(t, ev.Satisfies("police_report"))
	assert.True(t, ev.Satisfies("medical_docs"))
	assert.True(t, ev.Satisfies("sign_photo"))
	assert.True(t, ev.Satisfies("gps_history"))
	assert.True(t, ev.Satisfies("permit_copy"))

	assert.False(t, ev.Satisfies("witness_statement"),
		"witness match takes precedence over the statement-as-document match")
	assert.False(t, ev.Satisfies("parking_receipt"))
	assert.False(t, ev.Satisfies("ticket_copy"))
}
