package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EvaluateCondition evaluates a single comparison between a context value and
// a literal. It never panics and has no side effects.
//
// Go is statically typed, so the loose comparison semantics the catalog data
// was written against are made explicit here: equality compares numerically
// when both sides parse as numbers and by string rendering otherwise,
// greaterThan/lessThan require both sides to be numeric, and contains
// coerces both sides to strings. Unknown operators evaluate to true so a
// typo in catalog data never silently blocks a candidate argument; the
// loader validates operators, so this can only trigger for kits built in
// code.
func EvaluateCondition(actual any, op ConditionOp, expected any) bool {
	switch op {
	case OpEquals:
		return looselyEqual(actual, expected)
	case OpNotEquals:
		return !looselyEqual(actual, expected)
	case OpExists:
		return actual != nil
	case OpNotExists:
		return actual == nil
	case OpGreaterThan:
		a, aok := toFloat(actual)
		b, bok := toFloat(expected)
		return aok && bok && a > b
	case OpLessThan:
		a, aok := toFloat(actual)
		b, bok := toFloat(expected)
		return aok && bok && a < b
	case OpContains:
		if actual == nil || expected == nil {
			return false
		}
		return strings.Contains(stringify(actual), stringify(expected))
	default:
		return true
	}
}

// ConditionSatisfied resolves the condition's field in the context and
// evaluates it.
func ConditionSatisfied(c EvalContext, cond ArgumentCondition) bool {
	return EvaluateCondition(resolveField(c, cond.Field), cond.Op, cond.Value)
}

// ConditionsSatisfied reports whether all of an argument's conditions hold.
// An argument with zero conditions always qualifies.
func ConditionsSatisfied(c EvalContext, arg *ArgumentTemplate) bool {
	for _, cond := range arg.Conditions {
		if !ConditionSatisfied(c, cond) {
			return false
		}
	}
	return true
}

func looselyEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return stringify(a) == stringify(b)
}

// toFloat coerces numeric values (and numeric strings) to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	return fmt.Sprint(v)
}
