// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

// Package events carries in-process notifications between the training
// and serving sides. The trainer publishes a snapshot-trained event
// after persisting a new artifact version; the reloader subscribes and
// swaps the serving snapshot.
package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/atlashr/talentgraph/internal/logging"
)

// TopicSnapshotTrained carries SnapshotTrained events.
const TopicSnapshotTrained = "mobility.snapshot.trained"

// SnapshotTrained announces that a new artifact version is persisted
// and ready to serve.
type SnapshotTrained struct {
	SnapshotID string `json:"snapshot_id"`
	Version    int    `json:"version"`
}

// Bus wraps a watermill gochannel pub/sub for in-process messaging.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus creates an in-process event bus.
func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 16},
			watermill.NewStdLoggerWithOut(logging.Logger(), false, false),
		),
	}
}

// Close shuts the bus down, closing all subscriber channels.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// PublishSnapshotTrained announces a freshly persisted version.
func (b *Bus) PublishSnapshotTrained(event SnapshotTrained) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal snapshot event: %w", err)
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := b.pubSub.Publish(TopicSnapshotTrained, msg); err != nil {
		return fmt.Errorf("publish snapshot event: %w", err)
	}
	return nil
}

// SubscribeSnapshotTrained returns a channel of decoded events. The
// channel closes when ctx is cancelled or the bus shuts down.
func (b *Bus) SubscribeSnapshotTrained(ctx context.Context) (<-chan SnapshotTrained, error) {
	messages, err := b.pubSub.Subscribe(ctx, TopicSnapshotTrained)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicSnapshotTrained, err)
	}

	events := make(chan SnapshotTrained)
	go func() {
		defer close(events)
		logger := logging.WithComponent("event-bus")
		for msg := range messages {
			var event SnapshotTrained
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Error().Err(err).Str("message_id", msg.UUID).Msg("dropping undecodable snapshot event")
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
