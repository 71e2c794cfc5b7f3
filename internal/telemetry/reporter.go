// Package telemetry ships error events to the external error collector.
// Reporting is fire-and-forget: the request path enqueues onto a Redis list
// and a background worker pool drains it, so a slow or absent collector never
// blocks a response.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const Queue = "telemetry:errors"

// Event is the wire format pushed onto the queue.
type Event struct {
	RequestID string    `json:"request_id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Kind      string    `json:"kind"` // "error" | "panic"
	Detail    string    `json:"detail"`
	Time      time.Time `json:"time"`
}

type Reporter interface {
	ReportError(ctx context.Context, requestID, method, path string, err error)
	ReportPanic(ctx context.Context, requestID, method, path string, recovered interface{})
}

// ─── Redis-backed reporter ───────────────────────────────────────────────────

type redisReporter struct{ rdb *redis.Client }

func NewRedisReporter(rdb *redis.Client) Reporter { return &redisReporter{rdb: rdb} }

func (r *redisReporter) ReportError(ctx context.Context, requestID, method, path string, err error) {
	r.enqueue(ctx, Event{
		RequestID: requestID, Method: method, Path: path,
		Kind: "error", Detail: err.Error(), Time: time.Now(),
	})
}

func (r *redisReporter) ReportPanic(ctx context.Context, requestID, method, path string, recovered interface{}) {
	r.enqueue(ctx, Event{
		RequestID: requestID, Method: method, Path: path,
		Kind: "panic", Detail: fmt.Sprint(recovered), Time: time.Now(),
	})
}

func (r *redisReporter) enqueue(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	// Best effort: losing a telemetry event must never fail the request.
	if err := r.rdb.LPush(ctx, Queue, data).Err(); err != nil {
		log.Warn().Err(err).Msg("telemetry enqueue failed")
	}
}

// ─── No-op reporter ──────────────────────────────────────────────────────────

// NewNopReporter is used in tests and redis-less development.
func NewNopReporter() Reporter { return nopReporter{} }

type nopReporter struct{}

func (nopReporter) ReportError(context.Context, string, string, string, error)       {}
func (nopReporter) ReportPanic(context.Context, string, string, string, interface{}) {}
