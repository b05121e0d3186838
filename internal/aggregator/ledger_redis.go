package aggregator

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"eventagg/internal/config"
	"eventagg/internal/eventpb"
)

const (
	ledgerFieldTaskID    = "task_id"
	ledgerFieldAttempt   = "attempt_number"
	ledgerFieldReports   = "reports"
	ledgerFieldFirstSeen = "first_seen"
	ledgerFieldLastSeen  = "last_seen"
	ledgerFieldLastPeer  = "last_peer"
)

// RedisLedger stores one hash per dropped attempt so several aggregator
// instances share the same view.
type RedisLedger struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisLedger connects to redis and verifies reachability.
// Params: ctx dial context; cfg redis ledger options.
// Returns: ledger or connection error.
func NewRedisLedger(ctx context.Context, cfg config.RedisLedgerConfig) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout.Duration,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout.Duration)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return newRedisLedgerWithClient(client, cfg.KeyPrefix, cfg.TTL.Duration), nil
}

func newRedisLedgerWithClient(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Record increments the report counter of every dropped attempt in one pipeline.
// Params: ctx redis call context; batch admitted payload.
// Returns: pipeline execution error.
func (l *RedisLedger) Record(ctx context.Context, batch *Batch) error {
	seen := strconv.FormatInt(batch.ReceivedAt.UnixNano(), 10)

	_, err := l.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, attempt := range batch.Dropped {
			key := l.key(attempt)
			pipe.HIncrBy(ctx, key, ledgerFieldReports, 1)
			pipe.HSetNX(ctx, key, ledgerFieldFirstSeen, seen)
			pipe.HSet(ctx, key,
				ledgerFieldTaskID, hex.EncodeToString(attempt.GetTaskId()),
				ledgerFieldAttempt, attempt.GetAttemptNumber(),
				ledgerFieldLastSeen, seen,
				ledgerFieldLastPeer, batch.Peer,
			)
			if l.ttl > 0 {
				pipe.Expire(ctx, key, l.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

// Lookup reads the hash of attempt.
// Params: ctx redis call context; attempt task attempt identity.
// Returns: record, found flag, or read/parse error.
func (l *RedisLedger) Lookup(ctx context.Context, attempt *eventpb.TaskAttempt) (DroppedRecord, bool, error) {
	values, err := l.client.HGetAll(ctx, l.key(attempt)).Result()
	if err != nil {
		return DroppedRecord{}, false, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(values) == 0 {
		return DroppedRecord{}, false, nil
	}

	record := DroppedRecord{
		TaskID:        bytes.Clone(attempt.GetTaskId()),
		AttemptNumber: attempt.GetAttemptNumber(),
		LastPeer:      values[ledgerFieldLastPeer],
	}
	if record.Reports, err = strconv.ParseInt(values[ledgerFieldReports], 10, 64); err != nil {
		return DroppedRecord{}, false, fmt.Errorf("parse %s: %w", ledgerFieldReports, err)
	}
	if record.FirstSeen, err = parseUnixNano(values[ledgerFieldFirstSeen]); err != nil {
		return DroppedRecord{}, false, fmt.Errorf("parse %s: %w", ledgerFieldFirstSeen, err)
	}
	if record.LastSeen, err = parseUnixNano(values[ledgerFieldLastSeen]); err != nil {
		return DroppedRecord{}, false, fmt.Errorf("parse %s: %w", ledgerFieldLastSeen, err)
	}
	return record, true, nil
}

// Close releases the redis client.
func (l *RedisLedger) Close() error {
	return l.client.Close()
}

func (l *RedisLedger) key(attempt *eventpb.TaskAttempt) string {
	return l.keyPrefix + attempt.Key()
}

func parseUnixNano(raw string) (time.Time, error) {
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, nanos), nil
}
