package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errors.New("rabbitmq: broker did not confirm message")

// RabbitPublisher publishes to one durable queue through the default exchange.
// The channel runs in confirm mode, so PublishJSON only returns nil once the
// broker has taken responsibility for the message.
type RabbitPublisher struct {
	Queue string

	mu   sync.Mutex // amqp channels are not safe for concurrent publishes
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	p := &RabbitPublisher{Queue: queue, conn: conn}
	if p.ch, err = conn.Channel(); err != nil {
		p.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err = p.ch.Confirm(false); err != nil {
		p.Close()
		return nil, fmt.Errorf("rabbitmq confirm mode: %w", err)
	}
	if err = DeclareQueue(p.ch, queue); err != nil {
		p.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", queue, err)
	}
	return p, nil
}

// DeclareQueue declares the durable queue shared by the API and cmd/email_worker.
// Both sides must agree on the arguments or the second declare fails.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	return err
}

func (p *RabbitPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishJSON marshals body and publishes it as a persistent message.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("rabbitmq encode: %w", err)
	}
	msg := amqp.Publishing{
		MessageId:    uuid.NewString(),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	}

	p.mu.Lock()
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.Queue, false, false, msg)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	ok, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPublishNacked
	}
	return nil
}
