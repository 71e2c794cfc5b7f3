package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StartWorkerPool launches numWorkers goroutines draining the telemetry queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("telemetry worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("telemetry worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, Queue).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			forward(result[1])
		}
	}
}

// forward hands an event to the external collector. The collector itself is
// an operational concern; here events land in the structured log stream that
// the collector agent tails.
func forward(raw string) {
	var ev Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		log.Warn().Str("raw", raw).Msg("malformed telemetry event dropped")
		return
	}
	log.Error().
		Str("request_id", ev.RequestID).
		Str("method", ev.Method).
		Str("path", ev.Path).
		Str("kind", ev.Kind).
		Time("occurred_at", ev.Time).
		Msg(ev.Detail)
}
