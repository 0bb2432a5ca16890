package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Yohannes19/sbms/internal/model"
)

// Publisher sends domain events to RabbitMQ. Publishing is best effort:
// every failure is logged and swallowed so a broker outage never breaks
// the request that triggered the event. Messages are marked persistent.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher targeting the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// ContractSigned publishes a ContractSignedEvent for the new contract.
func (p *Publisher) ContractSigned(ctx context.Context, c *model.Contract) {
	ev := ContractSignedEvent{
		EventID:    uuid.NewString(),
		ContractID: c.ID,
		TenantID:   c.TenantID,
		RoomID:     c.RoomID,
		StartDate:  c.StartDate,
		RentCents:  c.RentCents,
		SignedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if c.EndDate != nil {
		ev.EndDate = *c.EndDate
	}
	p.publish(ctx, ContractSignedQueue, ev)
}

// PaymentRecorded publishes a PaymentRecordedEvent for the new payment.
func (p *Publisher) PaymentRecorded(ctx context.Context, pay *model.Payment) {
	ev := PaymentRecordedEvent{
		EventID:     uuid.NewString(),
		PaymentID:   pay.ID,
		ContractID:  pay.ContractID,
		AmountCents: pay.AmountCents,
		RecordedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if pay.Method != nil {
		ev.Method = *pay.Method
	}
	p.publish(ctx, PaymentRecordedQueue, ev)
}

// publish dials, declares the queue (idempotent, durable) and sends one
// persistent JSON message on the default exchange.
func (p *Publisher) publish(ctx context.Context, queueName string, event any) {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare %s failed: %v", queueName, err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queueName, err)
	}
}
