package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"college_assistant_bot/internal/app"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// AuditListKey is the Redis list holding audit events, newest first.
	AuditListKey = "college_bot:audit"
	// DefaultMaxEvents caps the list so it cannot grow without bound.
	DefaultMaxEvents = 10000

	pingTimeout = 5 * time.Second
)

// RedisConfig selects the Redis instance of the audit journal.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

func encodeEvent(ev app.AuditEvent) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit event %s: %w", ev.Type, err)
	}
	return payload, nil
}

// RedisJournal pushes audit events as JSON onto a capped Redis list.
type RedisJournal struct {
	rdb       redis.Cmdable
	key       string
	maxEvents int64
}

func NewRedisJournal(rdb redis.Cmdable) *RedisJournal {
	return &RedisJournal{rdb: rdb, key: AuditListKey, maxEvents: DefaultMaxEvents}
}

func (j *RedisJournal) Publish(ctx context.Context, ev app.AuditEvent) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}

	pipe := j.rdb.TxPipeline()
	pipe.LPush(ctx, j.key, payload)
	pipe.LTrim(ctx, j.key, 0, j.maxEvents-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push audit event %s: %w", ev.Type, err)
	}
	return nil
}

// LogJournal writes the encoded events to the log instead of an external store.
type LogJournal struct {
	log *logrus.Entry
}

func NewLogJournal(log *logrus.Entry) *LogJournal {
	return &LogJournal{log: log}
}

func (j *LogJournal) Publish(_ context.Context, ev app.AuditEvent) error {
	payload, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	j.log.WithField("payload", string(payload)).Debug("Audit event journaled")
	return nil
}
