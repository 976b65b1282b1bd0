// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisSource feeds a [Hub] from a Redis Pub/Sub channel.
type RedisSource struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
}

// NewRedisSource creates a source listening on channel.
func NewRedisSource(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisSource {
	return &RedisSource{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger.With(slog.String("component", "signal_source"), slog.String("channel", channel)),
	}
}

/*
Run subscribes to the channel and dispatches every message until context is
cancelled.

Returns:
  - error: Subscription failures only; cancellation returns nil
*/
func (source *RedisSource) Run(context context.Context) error {
	subscription := source.client.Subscribe(context, source.channel)
	defer subscription.Close()

	// Wait for the subscription confirmation so start-up failures surface here.
	if _, err := subscription.Receive(context); err != nil {
		if context.Err() != nil {
			return nil
		}
		return fmt.Errorf("signal: subscribe %s: %w", source.channel, err)
	}

	source.logger.Info("signal_source_subscribed")
	source.pump(context, subscription.Channel())
	source.logger.Info("signal_source_stopped")

	return nil
}

// pump drains messages until the context ends or the channel closes.
func (source *RedisSource) pump(context context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-context.Done():
			return
		case message, ok := <-messages:
			if !ok {
				return
			}
			source.hub.Dispatch([]byte(message.Payload))
		}
	}
}

// RedisPublisher announces events on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher for channel.
func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish encodes event and publishes it.
func (publisher *RedisPublisher) Publish(context context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("signal: encode event: %w", err)
	}
	if err := publisher.client.Publish(context, publisher.channel, payload).Err(); err != nil {
		return fmt.Errorf("signal: publish %s: %w", publisher.channel, err)
	}
	return nil
}
