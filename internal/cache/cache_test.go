// TalentGraph - Workforce Analytics and Career Mobility Engine
// Copyright 2026 AtlasHR Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/atlashr/talentgraph

package cache

import (
	"testing"
	"time"
)

// fakeClock advances only when told to, so expiry tests never sleep.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)}
}

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("key", "value")
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() miss for freshly set key")
	}
	if got != "value" {
		t.Errorf("Get() = %v, want value", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("Get() hit for absent key")
	}

	stats := c.GetStats()
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Minute, clock)

	c.Set("key", "value")
	clock.Advance(30 * time.Second)
	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry expired before TTL")
	}

	clock.Advance(31 * time.Second)
	if _, ok := c.Get("key"); ok {
		t.Error("entry survived past TTL")
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Minute, clock)

	c.SetWithTTL("short", "v", time.Second)
	c.SetWithTTL("long", "v", time.Hour)

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("short-TTL entry survived")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("long-TTL entry expired early")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("entry survived Clear()")
	}
	if stats := c.GetStats(); stats.TotalKeys != 0 {
		t.Errorf("TotalKeys after Clear = %d, want 0", stats.TotalKeys)
	}
}

func TestCacheCleanup(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock(time.Minute, clock)

	c.Set("stale", 1)
	clock.Advance(2 * time.Minute)
	c.Set("fresh", 2)

	c.Cleanup()

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("TotalKeys after Cleanup = %d, want 1", stats.TotalKeys)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry removed by Cleanup")
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New(time.Minute)
	if rate := c.HitRate(); rate != 0 {
		t.Errorf("HitRate on empty cache = %v, want 0", rate)
	}

	c.Set("key", 1)
	c.Get("key")
	c.Get("key")
	c.Get("absent")

	want := float64(2) / 3 * 100
	if rate := c.HitRate(); rate != want {
		t.Errorf("HitRate = %v, want %v", rate, want)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		ID   string
		TopK int
	}

	k1 := GenerateKey("similar", params{ID: "EMP001", TopK: 5})
	k2 := GenerateKey("similar", params{ID: "EMP001", TopK: 5})
	k3 := GenerateKey("similar", params{ID: "EMP002", TopK: 5})

	if k1 != k2 {
		t.Error("same params produced different keys")
	}
	if k1 == k3 {
		t.Error("different params produced the same key")
	}
}
