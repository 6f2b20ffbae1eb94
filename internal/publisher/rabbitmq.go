package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"tubeharvest/internal/domain"
)

// RabbitMQ publishes harvested records to a direct exchange. It is safe for
// concurrent use.
type RabbitMQ struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher"),
	}, nil
}

const (
	TypeChannel = "channel"
	TypeVideos  = "videos"
)

type ChannelMessage struct {
	Action    string         `json:"action"` // "create" or "update"
	Channel   domain.Channel `json:"channel"`
	Timestamp time.Time      `json:"timestamp"`
}

type VideosMessage struct {
	Action    string         `json:"action"` // always "upsert"
	UserID    string         `json:"user_id"`
	Videos    []domain.Video `json:"videos"`
	Timestamp time.Time      `json:"timestamp"`
}

func (r *RabbitMQ) PublishChannel(ctx context.Context, ch *domain.Channel, isNew bool) error {
	action := "update"
	if isNew {
		action = "create"
	}

	msg := ChannelMessage{
		Action:    action,
		Channel:   *ch,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, TypeChannel, msg); err != nil {
		return err
	}

	r.logger.Debug("published channel",
		"user_id", ch.UserID,
		"action", action,
	)

	return nil
}

func (r *RabbitMQ) PublishVideos(ctx context.Context, userID string, videos []domain.Video) error {
	msg := VideosMessage{
		Action:    "upsert",
		UserID:    userID,
		Videos:    videos,
		Timestamp: time.Now().UTC(),
	}

	if err := r.publish(ctx, TypeVideos, msg); err != nil {
		return err
	}

	r.logger.Debug("published videos",
		"user_id", userID,
		"count", len(videos),
	)

	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, kind string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         kind,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s message: %w", kind, err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
