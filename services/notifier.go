package services

import (
	"encoding/json"
	"log"
	"time"

	"authorsheaven/config"
	"authorsheaven/global"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EngagementEvent is published for an external notification consumer
// whenever a reader interacts with an article.
type EngagementEvent struct {
	Type        string    `json:"type"`
	ArticleSlug string    `json:"article_slug"`
	ActorID     uint      `json:"actor_id"`
	Actor       string    `json:"actor"`
	CommentID   uint      `json:"comment_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// PublishEvent sends an engagement event to the configured queue. A nil
// channel (rabbit not configured) makes this a no-op; publish failures are
// logged and never fail the request.
func PublishEvent(event EngagementEvent) {
	if global.RabbitChannel == nil {
		return
	}
	event.OccurredAt = time.Now()

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode engagement event: %v", err)
		return
	}

	qname := "engagement.events"
	if config.AppConfig != nil && config.AppConfig.RabbitMQ.Queue != "" {
		qname = config.AppConfig.RabbitMQ.Queue
	}

	err = global.RabbitChannel.Publish("", qname, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("failed to publish engagement event: %v", err)
	}
}
