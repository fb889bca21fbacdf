package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OpLogInserter persists one operation log record. Satisfied by
// repository.OpLogRepository.
type OpLogInserter interface {
	Insert(ctx context.Context, l *model.OpLog) error
}

// OpLogWorker consumes the op-log queue and writes records to PostgreSQL.
// Recording is asynchronous so request latency never depends on the log
// table.
type OpLogWorker struct {
	logs OpLogInserter
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewOpLogWorker creates a new OpLogWorker.
func NewOpLogWorker(logs OpLogInserter, rdb *redis.Client, log zerolog.Logger) *OpLogWorker {
	return &OpLogWorker{
		logs: logs,
		rdb:  rdb,
		log:  log.With().Str("component", "oplog_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *OpLogWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *OpLogWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.Key.OpLogQueue()).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var record model.OpLog
	if err := json.Unmarshal([]byte(result[1]), &record); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.logs.Insert(ctx, &record); err != nil {
		w.log.Error().Err(err).
			Str("oper_name", record.OperName).
			Str("oper_url", record.OperURL).
			Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.Key.OpLogQueue(), result[1])
		time.Sleep(5 * time.Second)
	}
}

// drain processes all remaining items in the queue before shutdown.
func (w *OpLogWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.Key.OpLogQueue()).Result()
		if err != nil {
			break
		}

		var record model.OpLog
		if err := json.Unmarshal([]byte(result), &record); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.logs.Insert(ctx, &record); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.Key.OpLogQueue(), result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained op-log queue")
	}
}
