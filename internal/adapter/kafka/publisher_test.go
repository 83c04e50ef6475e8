package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	evaluatedAt := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	event := OutcomeEvent{
		ID:                 "evt-123",
		ViolationCode:      "street_cleaning",
		Recommend:          true,
		EstimatedWinRate:   0.58,
		Confidence:         0.75,
		SelectedArgumentID: "sc_signage_inadequate",
		EvaluatedAt:        evaluatedAt,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("evt-123"), msg.Key)

	var decoded OutcomeEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "violation_code", msg.Headers[0].Key)
	assert.Equal(t, []byte("street_cleaning"), msg.Headers[0].Value)
	assert.Equal(t, "evaluated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-03-09T14:30:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_OmitsEmptyOptionalFields(t *testing.T) {
	event := OutcomeEvent{
		ID:            "evt-1",
		ViolationCode: "0-00-000",
		EvaluatedAt:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.NotContains(t, string(msg.Value), "selected_argument_id")
	assert.NotContains(t, string(msg.Value), "used_generic_kit")
}
