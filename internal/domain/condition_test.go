package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCondition_Equals(t *testing.T) {
	assert.True(t, EvaluateCondition("unpaid", OpEquals, "unpaid"))
	assert.False(t, EvaluateCondition("paid", OpEquals, "unpaid"))
	assert.True(t, EvaluateCondition(5, OpEquals, 5.0), "numeric equality crosses int/float")
	assert.True(t, EvaluateCondition(true, OpNotEquals, false))
}

func TestEvaluateCondition_EqualsCoercesNumericStrings(t *testing.T) {
	// Catalog literals arrive as strings or numbers depending on how the
	// YAML was written; both spellings must compare equal.
	assert.True(t, EvaluateCondition("60", OpEquals, 60))
	assert.True(t, EvaluateCondition(60.0, OpEquals, "60"))
}

func TestEvaluateCondition_Exists(t *testing.T) {
	assert.True(t, EvaluateCondition(true, OpExists, nil))
	assert.True(t, EvaluateCondition("anything", OpExists, nil))
	assert.False(t, EvaluateCondition(nil, OpExists, nil))

	assert.True(t, EvaluateCondition(nil, OpNotExists, nil))
	assert.False(t, EvaluateCondition(0, OpNotExists, nil), "zero is a value, not absence")
}

func TestEvaluateCondition_Ordering(t *testing.T) {
	assert.True(t, EvaluateCondition(100.0, OpGreaterThan, 50))
	assert.False(t, EvaluateCondition(50, OpGreaterThan, 100))
	assert.True(t, EvaluateCondition(1.5, OpLessThan, 2))
	assert.False(t, EvaluateCondition(2, OpLessThan, 2), "strict comparison")
}

func TestEvaluateCondition_OrderingRequiresNumbers(t *testing.T) {
	// Non-numeric operands make ordering comparisons false, never a panic.
	assert.False(t, EvaluateCondition("tall", OpGreaterThan, "short"))
	assert.False(t, EvaluateCondition(nil, OpLessThan, 5))
}

func TestEvaluateCondition_Contains(t *testing.T) {
	assert.True(t, EvaluateCondition("sign was missing", OpContains, "missing"))
	assert.False(t, EvaluateCondition("sign was missing", OpContains, "obscured"))
	assert.True(t, EvaluateCondition(12345, OpContains, "234"), "contains coerces both sides to strings")
	assert.False(t, EvaluateCondition(nil, OpContains, "x"))
}

// Unknown operators evaluate to true so a typo in catalog data never
// silently blocks a candidate argument. The loader rejects unknown ops, so
// this can only trigger for kits constructed in code.
func TestEvaluateCondition_UnknownOperatorFailsOpen(t *testing.T) {
	assert.True(t, EvaluateCondition("anything", ConditionOp("approximately"), "else"))
}

func TestConditionSatisfied_ResolvesContextFields(t *testing.T) {
	c := EvalContext{
		Facts:    TicketFacts{DaysSinceTicket: 5, HadSignageIssue: true},
		Evidence: UserEvidence{HasPhotos: true},
	}

	assert.True(t, ConditionSatisfied(c, ArgumentCondition{Field: "hadSignageIssue", Op: OpExists}))
	assert.True(t, ConditionSatisfied(c, ArgumentCondition{Field: "daysSinceTicket", Op: OpLessThan, Value: 10}))
	assert.True(t, ConditionSatisfied(c, ArgumentCondition{Field: "hasPhotos", Op: OpExists}))
	assert.False(t, ConditionSatisfied(c, ArgumentCondition{Field: "hadEmergency", Op: OpExists}),
		"unset boolean flags resolve as absent")
}

func TestConditionSatisfied_UnknownFieldResolvesAsAbsent(t *testing.T) {
	c := EvalContext{}
	assert.False(t, ConditionSatisfied(c, ArgumentCondition{Field: "noSuchField", Op: OpExists}))
	assert.True(t, ConditionSatisfied(c, ArgumentCondition{Field: "noSuchField", Op: OpNotExists}))
}

func TestConditionsSatisfied(t *testing.T) {
	c := EvalContext{Facts: TicketFacts{HadSignageIssue: true, DaysSinceTicket: 5}}

	arg := &ArgumentTemplate{Conditions: []ArgumentCondition{
		{Field: "hadSignageIssue", Op: OpExists},
		{Field: "daysSinceTicket", Op: OpLessThan, Value: 21},
	}}
	assert.True(t, ConditionsSatisfied(c, arg))

	arg.Conditions = append(arg.Conditions, ArgumentCondition{Field: "hadEmergency", Op: OpExists})
	assert.False(t, ConditionsSatisfied(c, arg))

	assert.True(t, ConditionsSatisfied(c, &ArgumentTemplate{}), "zero conditions always qualifies")
}

func TestKnownConditionField(t *testing.T) {
	assert.True(t, KnownConditionField("daysSinceTicket"))
	assert.True(t, KnownConditionField("hasPoliceReport"))
	assert.False(t, KnownConditionField("daysSinceTciket"))

	assert.Contains(t, ConditionFields(), "snowfall")
}
