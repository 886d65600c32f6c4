package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userdeck/admin-console/internal/core/ports"
)

const (
	notificationsKey = "console:notifications"
	retention        = 15 * time.Minute
	maxRecent        = 50

	defaultDialTimeout = 5 * time.Second
)

// Config holds the connection settings for the notification center's Redis
// backend.
type Config struct {
	Addr string
	DB   int
	// DialTimeout bounds the startup connectivity check. Defaults to 5s.
	DialTimeout time.Duration
}

// NotificationStore keeps transient toast notifications in a Redis sorted
// set scored by creation time. Entries older than the retention window are
// trimmed on every read.
type NotificationStore struct {
	client *redis.Client
}

// Open dials Redis, verifies connectivity with a ping, and returns the
// notification store bound to that client. The caller owns Close.
func Open(ctx context.Context, cfg Config) (*NotificationStore, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewNotificationStore(client), nil
}

func NewNotificationStore(client *redis.Client) *NotificationStore {
	return &NotificationStore{client: client}
}

// Client exposes the underlying connection for the readiness probe.
func (s *NotificationStore) Client() *redis.Client {
	return s.client
}

func (s *NotificationStore) Close() error {
	return s.client.Close()
}

// Push appends a notification and refreshes the key's expiry.
func (s *NotificationStore) Push(ctx context.Context, n ports.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, notificationsKey, redis.Z{
		Score:  float64(n.CreatedAt.UnixMilli()),
		Member: payload,
	})
	pipe.Expire(ctx, notificationsKey, retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

// Recent returns the newest notifications inside the retention window,
// newest first, capped at maxRecent.
func (s *NotificationStore) Recent(ctx context.Context) ([]ports.Notification, error) {
	cutoff := time.Now().Add(-retention).UnixMilli()
	if err := s.client.ZRemRangeByScore(ctx, notificationsKey, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return nil, fmt.Errorf("trim notifications: %w", err)
	}

	raw, err := s.client.ZRevRange(ctx, notificationsKey, 0, maxRecent-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	out := make([]ports.Notification, 0, len(raw))
	for _, member := range raw {
		var n ports.Notification
		if err := json.Unmarshal([]byte(member), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
