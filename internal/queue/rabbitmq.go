package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KOFI-GYIMAH/first-commit/internal/models"
	"github.com/KOFI-GYIMAH/first-commit/pkg/logger"
	"github.com/streadway/amqp"
)

const LookupQueue = "first_commit_lookups"

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	queue, err := channel.QueueDeclare(
		LookupQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", LookupQueue, err)
	}

	logger.Info("Connected to RabbitMQ, publishing lookups to %s", queue.Name)
	return &RabbitMQ{
		conn:    conn,
		channel: channel,
		queue:   queue.Name,
	}, nil
}

// * RecordLookup publishes the lookup for the ledger consumer
func (r *RabbitMQ) RecordLookup(ctx context.Context, lookup models.Lookup) error {
	body, err := encodeLookup(lookup)
	if err != nil {
		return err
	}

	return r.channel.Publish(
		"",
		r.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    lookup.ID.String(),
			Timestamp:    lookup.ResolvedAt,
			Body:         body,
		},
	)
}

// * ConsumeLookups hands every queued lookup to handler until ctx is cancelled.
// * Messages are acked once handled; undecodable or failed ones are dropped, not requeued.
func (r *RabbitMQ) ConsumeLookups(ctx context.Context, handler func(ctx context.Context, lookup models.Lookup) error) error {
	msgs, err := r.channel.Consume(
		r.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", r.queue, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping lookup consumer")
				return
			case d, ok := <-msgs:
				if !ok {
					logger.Warn("Lookup delivery channel closed")
					return
				}
				r.handleDelivery(ctx, d, handler)
			}
		}
	}()

	return nil
}

func (r *RabbitMQ) handleDelivery(ctx context.Context, d amqp.Delivery, handler func(ctx context.Context, lookup models.Lookup) error) {
	lookup, err := decodeLookup(d.Body)
	if err != nil {
		logger.Error("Error decoding lookup message: %v", err)
		_ = d.Nack(false, false)
		return
	}

	if err := handler(ctx, lookup); err != nil {
		logger.Error("Error recording lookup %s: %v", lookup.ID, err)
		_ = d.Nack(false, false)
		return
	}

	if err := d.Ack(false); err != nil {
		logger.Warn("Failed to ack lookup %s: %v", lookup.ID, err)
	}
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}

func encodeLookup(lookup models.Lookup) ([]byte, error) {
	body, err := json.Marshal(lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lookup %s: %w", lookup.ID, err)
	}
	return body, nil
}

func decodeLookup(body []byte) (models.Lookup, error) {
	var lookup models.Lookup
	if err := json.Unmarshal(body, &lookup); err != nil {
		return models.Lookup{}, fmt.Errorf("invalid lookup payload: %w", err)
	}
	if lookup.Username == "" || lookup.Outcome == "" {
		return models.Lookup{}, fmt.Errorf("lookup %s is missing username or outcome", lookup.ID)
	}
	return lookup, nil
}
