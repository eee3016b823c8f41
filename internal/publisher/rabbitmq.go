package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"shorts_pipeline/internal/domain"
)

type RabbitMQ struct {
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

const EventVideoCompleted = "video.completed"

// VideoMessage announces a finished video to downstream publishers.
type VideoMessage struct {
	Event         string    `json:"event"`
	Platform      string    `json:"platform"`
	VideoID       uuid.UUID `json:"video_id"`
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Script        string    `json:"script"`
	VideoPath     string    `json:"video_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Duration      int       `json:"duration_seconds"`
	Style         string    `json:"style"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewVideoMessage(video *domain.Video, platform string, at time.Time) VideoMessage {
	return VideoMessage{
		Event:         EventVideoCompleted,
		Platform:      platform,
		VideoID:       video.ID,
		OpportunityID: video.OpportunityID,
		Title:         video.Title,
		Description:   video.Description,
		Script:        video.Script,
		VideoPath:     video.VideoPath,
		ThumbnailPath: video.ThumbnailPath,
		Duration:      video.Duration,
		Style:         video.Style,
		Timestamp:     at.UTC(),
	}
}

// PublishVideo sends a video.completed message for the given target platform.
func (r *RabbitMQ) PublishVideo(ctx context.Context, video *domain.Video, platform string) error {
	body, err := json.Marshal(NewVideoMessage(video, platform, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         EventVideoCompleted,
			MessageId:    video.ID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published video",
		"video_id", video.ID,
		"platform", platform,
	)

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
