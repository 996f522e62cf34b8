package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shenikar/roadside_dispatch/internal/models"
)

const (
	publishTimeout = 5 * time.Second
	// запас под подтверждения, пришедшие после таймаута ожидания
	confirmBuffer = 64
)

// RabbitMQPublisher публикует уведомления в topic exchange с подтверждением брокера
type RabbitMQPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
	confirms chan amqp.Confirmation
}

// NewRabbitMQPublisher объявляет exchange и включает publisher confirms
func NewRabbitMQPublisher(conn *amqp.Connection, exchange string) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: failed to declare exchange %s: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq: failed to enable confirms: %w", err)
	}

	return &RabbitMQPublisher{
		ch:       ch,
		exchange: exchange,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, confirmBuffer)),
	}, nil
}

// RoutingKey - ключ маршрутизации вида emergency.<event>
func RoutingKey(n models.Notification) string {
	return "emergency." + string(n.Event)
}

// Notify публикует уведомление и ждёт подтверждения брокера
func (p *RabbitMQPublisher) Notify(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if p.ch.IsClosed() {
		return errors.New("rabbitmq: publish channel is not open")
	}

	// публикации сериализуются, чтобы номер подтверждения соответствовал сообщению
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(n), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    n.ID.String(),
		Timestamp:    n.CreatedAt,
		Headers: amqp.Table{
			"recipient_id":   n.RecipientID,
			"recipient_kind": string(n.RecipientKind),
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: failed to publish notification: %w", err)
	}

	return awaitConfirm(ctx, p.confirms, tag)
}

// awaitConfirm ждёт подтверждения публикации с номером tag.
// Запоздавшие подтверждения прошлых публикаций, чьё ожидание истекло, пропускаются.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case c, ok := <-confirms:
			if !ok {
				return errors.New("rabbitmq: confirm channel closed")
			}
			if c.DeliveryTag < tag {
				continue
			}
			if c.DeliveryTag > tag {
				return fmt.Errorf("rabbitmq: confirm %d arrived while waiting for %d", c.DeliveryTag, tag)
			}
			if !c.Ack {
				return errors.New("rabbitmq: publish not acknowledged")
			}
			return nil
		case <-ctx.Done():
			return fmt.Errorf("rabbitmq: no confirm for delivery %d: %w", tag, ctx.Err())
		}
	}
}

// Close закрывает канал публикации
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
