package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Yohannes19/sbms/internal/money"
)

// StartLedgerConsumer connects to RabbitMQ, declares the contract.signed
// and payment.recorded queues (durable) and appends every event to
// logs/ledger.log in a single-line, human-friendly format. It runs a
// reconnect loop forever: dial failures back off exponentially up to 30s,
// and a dropped connection is re-established. Bad messages are rejected
// without requeue so a poison message cannot spin the loop.
func StartLedgerConsumer(url string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("ledger-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("ledger-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("ledger-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{ContractSignedQueue, PaymentRecordedQueue} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	contracts, err := ch.Consume(ContractSignedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", ContractSignedQueue, err)
	}
	payments, err := ch.Consume(PaymentRecordedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", PaymentRecordedQueue, err)
	}

	for {
		select {
		case d, ok := <-contracts:
			if !ok {
				return errors.New("contract deliveries channel closed")
			}
			handle(d, formatContractSigned)
		case d, ok := <-payments:
			if !ok {
				return errors.New("payment deliveries channel closed")
			}
			handle(d, formatPaymentRecorded)
		}
	}
}

func handle(d amqp.Delivery, format func([]byte) (string, error)) {
	line, err := format(d.Body)
	if err != nil {
		log.Printf("ledger-consumer: handle message failed: %v", err)
		_ = d.Nack(false, false)
		return
	}
	if err := appendLedger(line); err != nil {
		log.Printf("ledger-consumer: append ledger failed: %v", err)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}

func formatContractSigned(body []byte) (string, error) {
	var ev ContractSignedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	end := ev.EndDate
	if end == "" {
		end = "open"
	}
	return fmt.Sprintf("[%s] Contract signed | contract_id=%d | tenant_id=%d | room_id=%d | period=%s..%s | rent=%s\n",
		ev.SignedAt, ev.ContractID, ev.TenantID, ev.RoomID, ev.StartDate, end, money.FormatCents(ev.RentCents)), nil
}

func formatPaymentRecorded(body []byte) (string, error) {
	var ev PaymentRecordedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}
	method := ev.Method
	if method == "" {
		method = "-"
	}
	return fmt.Sprintf("[%s] Payment recorded | payment_id=%d | contract_id=%d | amount=%s | method=%s\n",
		ev.RecordedAt, ev.PaymentID, ev.ContractID, money.FormatCents(ev.AmountCents), method), nil
}

func appendLedger(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "ledger.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
