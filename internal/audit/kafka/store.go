// Package kafka publishes audit events to a Kafka topic. It satisfies
// audit.Store so the worker can drain into Kafka instead of memory when
// brokers are configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/KoustavBera/Odoo25/internal/audit"
)

// Topic is the Kafka topic audit events are produced to.
const Topic = "stackit.audit"

// Store produces audit events to Kafka. Records are keyed by acting user so
// a user's events stay ordered within a partition.
type Store struct {
	client *kgo.Client
}

// New connects to the brokers and ensures the audit topic exists.
func New(ctx context.Context, brokers []string) (*Store, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	adm := kadm.NewClient(client)
	// Creating an existing topic reports TOPIC_ALREADY_EXISTS; per-topic
	// response errors are ignored here and real connectivity problems
	// surface on the Ping below.
	_, _ = adm.CreateTopic(ctx, 1, 1, nil, Topic)

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	return &Store{client: client}, nil
}

// Append produces one event synchronously. The audit worker is the only
// caller, so request latency is never on this path.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: Topic,
		Key:   []byte(event.UserID),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (s *Store) Close() {
	s.client.Close()
}
