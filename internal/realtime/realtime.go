// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package realtime subscribes to the backend's websocket event stream and
// turns document mutations into RecordChanged events for the UI. The
// subscriber reconnects with capped exponential backoff and never blocks on a
// slow consumer; events are advisory refresh hints, so dropping one under
// pressure costs a redundant reload at worst.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saleemdev/devsecops-dashboard/internal/config"
	"github.com/saleemdev/devsecops-dashboard/internal/logger"
)

// RecordChanged reports one document mutation observed on the stream.
type RecordChanged struct {
	Event   string // doc_insert, doc_update or doc_delete
	Doctype string
	Name    string
}

// wireEvent is the stream's JSON shape.
type wireEvent struct {
	Event   string `json:"event"`
	Doctype string `json:"doctype"`
	Name    string `json:"name"`
}

// Subscriber maintains the websocket connection for the lifetime of its
// context.
type Subscriber struct {
	cfg    config.RealtimeConfig
	url    string
	events chan RecordChanged
}

// NewSubscriber prepares a subscriber for the given websocket URL. Run must
// be called to start the connection loop.
func NewSubscriber(url string, cfg config.RealtimeConfig) *Subscriber {
	size := cfg.EventQueueSize
	if size <= 0 {
		size = 64
	}
	return &Subscriber{
		cfg:    cfg,
		url:    url,
		events: make(chan RecordChanged, size),
	}
}

// Events is the stream of observed mutations. Closed when Run returns.
func (s *Subscriber) Events() <-chan RecordChanged {
	return s.events
}

// Run connects and reads until the context is cancelled, reconnecting on any
// failure. It always returns ctx.Err().
func (s *Subscriber) Run(ctx context.Context) error {
	log := logger.GetRealtimeLogger()
	defer close(s.events)

	backoff := s.cfg.ReconnectBase
	if backoff <= 0 {
		backoff = time.Second
	}
	maxBackoff := s.cfg.ReconnectMax
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}
	delay := backoff

	for {
		start := time.Now()
		err := s.readLoop(ctx)
		uptime := time.Since(start)
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Dur("retry_in", delay).Msg("event stream disconnected")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = nextDelay(delay, backoff, maxBackoff, uptime)
	}
}

// nextDelay doubles the reconnect delay up to max. A connection that stayed
// up for at least max counts as healthy and restarts the schedule from base,
// so a flaky stream is not stuck at the cap forever.
func nextDelay(current, base, max, uptime time.Duration) time.Duration {
	if uptime >= max {
		return base
	}
	next := current * 2
	if next > max {
		next = max
	}
	return next
}

// readLoop holds one connection open and forwards its events. A successful
// connect resets nothing here; the caller owns the backoff schedule.
func (s *Subscriber) readLoop(ctx context.Context) error {
	log := logger.GetRealtimeLogger()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.url, nil)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Debug().Str("url", s.url).Msg("event stream connected")

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var evt wireEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			log.Debug().Err(err).Msg("discarding malformed event")
			continue
		}

		select {
		case s.events <- RecordChanged(evt):
		default:
			log.Debug().Str("doctype", evt.Doctype).Msg("event queue full, dropping")
		}
	}
}
