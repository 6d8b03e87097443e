package changefeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/api/option"
)

var (
	_ Publisher  = (*PubSub)(nil)
	_ Subscriber = (*PubSub)(nil)
)

// PubSub carries change events between instances over Google Cloud Pub/Sub.
// Events travel MessagePack encoded.
type PubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	sub    *pubsub.Subscription
}

const (
	// subscriptionTTL deletes per-instance subscriptions nobody has pulled
	// from for a day.
	subscriptionTTL = 24 * time.Hour
	// subscriptionRetention is the Pub/Sub minimum.
	subscriptionRetention = 10 * time.Minute
)

// SubscriptionID names the subscription of one instance. Every instance
// needs its own: Pub/Sub splits a shared subscription's messages between
// its receivers.
func SubscriptionID(base, instanceID string) string {
	return base + "-" + instanceID
}

// NewPubSub connects to the topic, creating it if needed. A non-empty
// subscriptionID is created if missing; with an empty one the feed can
// only publish.
func NewPubSub(ctx context.Context, projectID, topicID, subscriptionID string, opts ...option.ClientOption) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("check topic %s: %w", topicID, err)
	}
	if !exists {
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			client.Close()
			return nil, fmt.Errorf("create topic %s: %w", topicID, err)
		}
		log.Info("Created pubsub topic", "topic", topicID)
	}

	feed := &PubSub{client: client, topic: topic}
	if subscriptionID == "" {
		return feed, nil
	}

	sub := client.Subscription(subscriptionID)
	exists, err = sub.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("check subscription %s: %w", subscriptionID, err)
	}
	if !exists {
		sub, err = client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{
			Topic:             topic,
			RetentionDuration: subscriptionRetention,
			ExpirationPolicy:  subscriptionTTL,
		})
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("create subscription %s: %w", subscriptionID, err)
		}
		log.Info("Created pubsub subscription", "subscription", subscriptionID)
	}
	feed.sub = sub
	return feed, nil
}

func (p *PubSub) Publish(ctx context.Context, e Event) error {
	data, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"op": string(e.Op)},
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publish change event %s: %w", e.ID, err)
	}
	log.Debug("Published change event", "event", e.ID, "serverID", serverID)
	return nil
}

func (p *PubSub) Subscribe(ctx context.Context) (<-chan Event, error) {
	if p.sub == nil {
		return nil, errors.New("pubsub feed has no subscription")
	}
	ch := make(chan Event, subscriberBuffer)
	go func() {
		defer close(ch)
		err := p.sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
			var e Event
			if err := msgpack.Unmarshal(m.Data, &e); err != nil {
				log.Error("Dropping undecodable change event", "messageID", m.ID, "error", err)
				m.Ack()
				return
			}
			select {
			case ch <- e:
				m.Ack()
			case <-ctx.Done():
				m.Nack()
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Error("Pubsub receive stopped", "error", err)
		}
	}()
	return ch, nil
}

// Close flushes pending publishes and releases the client.
func (p *PubSub) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
