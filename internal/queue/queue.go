package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/streadway/amqp"

	appErrors "github.com/leadloop/outreach-backend/internal/errors"
	"github.com/leadloop/outreach-backend/internal/service"
)

// TopicLeadEvents carries lead lifecycle events from the API to the worker.
const TopicLeadEvents = "lead_events"

// LeadEvent is the payload published when a lead is created or changes
// status. EventID makes redelivery idempotent downstream.
type LeadEvent struct {
	EventID string `json:"event_id"`
	LeadID  int    `json:"lead_id"`
	Status  string `json:"status"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured (single-binary deployments and tests).
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// AMQPQueue publishes and consumes JSON payloads over RabbitMQ. Topics map to
// durable queues.
type AMQPQueue struct {
	ch *amqp.Channel
}

func NewAMQPQueue(conn *amqp.Connection) (*AMQPQueue, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return &AMQPQueue{ch: ch}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var raw json.RawMessage = d.Body
			if err := handler(raw); err != nil {
				log.Println("⚠️ handler failed, requeueing:", err)
				d.Nack(false, true)
				continue
			}
			d.Ack(false)
		}
	}()

	return nil
}

// StartLeadEventSubscriber routes lead events to the sequence service. The
// service's event dedupe makes redelivery harmless.
func StartLeadEventSubscriber(q Queue, seqService *service.SequenceService) {
	go func() {
		err := q.Subscribe(TopicLeadEvents, func(payload any) error {
			event, err := decodeLeadEvent(payload)
			if err != nil {
				log.Println("⚠️ dropping malformed lead event:", err)
				return nil // no retry
			}

			log.Printf("📩 processing lead event %s (lead %d, status %s)\n", event.EventID, event.LeadID, event.Status)

			_, err = seqService.GenerateForEvent(context.Background(), event.EventID, event.LeadID)
			var leadMissing *appErrors.ErrLeadNotFound
			var coachMissing *appErrors.ErrCoachNotFound
			if errors.As(err, &leadMissing) || errors.As(err, &coachMissing) {
				log.Println("⚠️ dropping event for missing record:", err)
				return nil // requeueing cannot fix this
			}
			return err
		})

		if err != nil {
			log.Println("⚠️ failed to start subscriber for", TopicLeadEvents, ":", err)
		}
	}()
}

// decodeLeadEvent accepts both in-process LeadEvent values and raw JSON from
// a broker.
func decodeLeadEvent(payload any) (LeadEvent, error) {
	switch p := payload.(type) {
	case LeadEvent:
		return p, nil
	case *LeadEvent:
		return *p, nil
	case json.RawMessage:
		var event LeadEvent
		if err := json.Unmarshal(p, &event); err != nil {
			return LeadEvent{}, err
		}
		return event, nil
	case []byte:
		var event LeadEvent
		if err := json.Unmarshal(p, &event); err != nil {
			return LeadEvent{}, err
		}
		return event, nil
	default:
		return LeadEvent{}, fmt.Errorf("unsupported payload type %T", payload)
	}
}
