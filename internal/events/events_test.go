// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package events

import (
	"context"
	"testing"
	"time"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := bus.SubscribeSnapshotTrained(ctx)
	if err != nil {
		t.Fatalf("SubscribeSnapshotTrained() error = %v", err)
	}

	want := SnapshotTrained{SnapshotID: "snap-123", Version: 7}
	if err := bus.PublishSnapshotTrained(want); err != nil {
		t.Fatalf("PublishSnapshotTrained() error = %v", err)
	}

	select {
	case got := <-events:
		if got != want {
			t.Errorf("received %+v, want %+v", got, want)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for snapshot event")
	}
}

func TestBusMultipleEventsInOrder(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := bus.SubscribeSnapshotTrained(ctx)
	if err != nil {
		t.Fatalf("SubscribeSnapshotTrained() error = %v", err)
	}

	for v := 1; v <= 3; v++ {
		if err := bus.PublishSnapshotTrained(SnapshotTrained{SnapshotID: "s", Version: v}); err != nil {
			t.Fatalf("publish version %d: %v", v, err)
		}
	}

	for want := 1; want <= 3; want++ {
		select {
		case got := <-events:
			if got.Version != want {
				t.Errorf("event %d has version %d", want, got.Version)
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for event %d", want)
		}
	}
}

func TestBusSubscriberStopsOnCancel(t *testing.T) {
	bus := NewBus()
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := bus.SubscribeSnapshotTrained(ctx)
	if err != nil {
		t.Fatalf("SubscribeSnapshotTrained() error = %v", err)
	}
	cancel()

	select {
	case _, open := <-events:
		if open {
			t.Error("received event after cancellation")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event channel not closed after cancellation")
	}
}
