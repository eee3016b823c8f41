//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"shorts_pipeline/internal/domain"
	"shorts_pipeline/internal/testutil"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) video() *domain.Video {
	return &domain.Video{
		ID:            uuid.New(),
		OpportunityID: uuid.New(),
		Title:         "Keto Guide - Viral Video",
		Description:   testutil.Ptr("A guide"),
		Script:        "Stop scrolling.",
		VideoPath:     "/srv/videos/video-1.mp4",
		ThumbnailPath: "/srv/videos/video-1.jpg",
		Duration:      31,
		Style:         "static",
		Status:        domain.VideoStatusCompleted,
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishVideo() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-video",
		RoutingKey: "video.completed",
		QueueName:  "test-queue-video",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	video := s.video()
	err = pub.PublishVideo(s.ctx, video, "tiktok")
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal("application/json", msg.ContentType)
	s.Equal(EventVideoCompleted, msg.Type)
	s.Equal(video.ID.String(), msg.MessageId)

	var received VideoMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(EventVideoCompleted, received.Event)
	s.Equal("tiktok", received.Platform)
	s.Equal(video.ID, received.VideoID)
	s.Equal(video.OpportunityID, received.OpportunityID)
	s.Equal("Keto Guide - Viral Video", received.Title)
	s.Require().NotNil(received.Description)
	s.Equal("A guide", *received.Description)
	s.Equal(31, received.Duration)
	s.Equal("/srv/videos/video-1.mp4", received.VideoPath)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessagePersistence() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-persist",
		RoutingKey: "test-routing-key-persist",
		QueueName:  "test-queue-persist",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.PublishVideo(s.ctx, s.video(), "youtube")
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}