package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// DecisionEvent is the advisory event published for every gated alert.
// Consumers use it for dashboards and audit; nothing in the request path
// depends on it.
type DecisionEvent struct {
	EventType   string   `json:"event_type"`
	Pair        string   `json:"pair"`
	Side        string   `json:"side"`
	Sentiment   float64  `json:"sentiment"`
	Confidence  *float64 `json:"confidence,omitempty"`
	ShouldTrade bool     `json:"should_trade"`
	Action      string   `json:"action"`
	Reason      string   `json:"reason"`
	Timestamp   string   `json:"timestamp"`
}

// NewDecisionEvent builds the event for one handled alert
func NewDecisionEvent(pair, side string, sentiment float64, confidence *float64, shouldTrade bool, action, reason string) DecisionEvent {
	return DecisionEvent{
		EventType:   "TRADE_DECISION",
		Pair:        pair,
		Side:        side,
		Sentiment:   sentiment,
		Confidence:  confidence,
		ShouldTrade: shouldTrade,
		Action:      action,
		Reason:      reason,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Producer publishes decision events to Kafka
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Kafka producer for the decisions topic
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// PublishDecision publishes a decision event keyed by pair
func (p *Producer) PublishDecision(ctx context.Context, event DecisionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Pair),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish decision event: %w", err)
	}
	return nil
}

// Close closes the Kafka writer
func (p *Producer) Close() error {
	return p.writer.Close()
}
