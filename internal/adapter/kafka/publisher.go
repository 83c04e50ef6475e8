// Package kafka publishes evaluation outcome events for downstream
// analytics. Publishing is best-effort: the evaluation itself never persists
// anything, and a publish failure must not affect the caller's response.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/parkfair/contest-engine/internal/config"
	"github.com/parkfair/contest-engine/internal/domain"
)

// OutcomeEvent is the serialized record of one completed evaluation.
type OutcomeEvent struct {
	ID                 string    `json:"id"`
	ViolationCode      string    `json:"violation_code"`
	Recommend          bool      `json:"recommend"`
	EstimatedWinRate   float64   `json:"estimated_win_rate"`
	Confidence         float64   `json:"confidence"`
	SelectedArgumentID string    `json:"selected_argument_id,omitempty"`
	UsedGenericKit     bool      `json:"used_generic_kit,omitempty"`
	EvaluatedAt        time.Time `json:"evaluated_at"`
}

// Publisher produces outcome events to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishOutcome serializes and publishes one evaluation outcome.
func (p *Publisher) PublishOutcome(ctx context.Context, violationCode string, eval domain.ContestEvaluation) error {
	event := OutcomeEvent{
		ID:               uuid.NewString(),
		ViolationCode:    violationCode,
		Recommend:        eval.Recommend,
		EstimatedWinRate: eval.EstimatedWinRate,
		Confidence:       eval.Confidence,
		UsedGenericKit:   eval.UsedGenericKit,
		EvaluatedAt:      eval.EvaluatedAt,
	}
	if eval.SelectedArgument != nil {
		event.SelectedArgumentID = eval.SelectedArgument.ID
	}

	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an OutcomeEvent into a Kafka message.
func serializeToMessage(event OutcomeEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize outcome event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "violation_code", Value: []byte(event.ViolationCode)},
			{Key: "evaluated_at", Value: []byte(event.EvaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
