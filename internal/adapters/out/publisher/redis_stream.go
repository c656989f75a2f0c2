package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordertracker/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is used when REDIS_STREAM is not set.
const DefaultStream = "ordertracker:ledger-events"

var ErrStreamIsRequired = errors.New("redis stream name is required")

// RedisOptions holds the connection settings of the event stream.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

// RedisStreamPublisher appends ledger events to a Redis stream.
//
// Each entry carries event_id, kind, package_id, status, note and updated_time.
// Consumers should dedupe on event_id since the relay may deliver an event
// twice after a crash.
//
// Example:
//
//	client, err := NewRedisClient(ctx, RedisOptions{Addr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	pub, err := NewRedisStreamPublisher(client, DefaultStream)
//	if err != nil {
//	    return err
//	}
//	return pub.Publish(ctx, event)
type RedisStreamPublisher struct {
	client redis.Cmdable
	stream string
}

// NewRedisClient opens a client for opts and checks it with PING.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisStreamPublisher returns ErrStreamIsRequired for a blank stream name.
func NewRedisStreamPublisher(client redis.Cmdable, stream string) (*RedisStreamPublisher, error) {
	stream = strings.TrimSpace(stream)
	if stream == "" {
		return nil, ErrStreamIsRequired
	}
	return &RedisStreamPublisher{client: client, stream: stream}, nil
}

func (p *RedisStreamPublisher) Stream() string {
	return p.stream
}

// Publish issues one XADD with an auto-generated entry id.
func (p *RedisStreamPublisher) Publish(ctx context.Context, event order.Event) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: streamValues(event),
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s event %s: %w", p.stream, event.ID(), err)
	}
	return nil
}

func streamValues(event order.Event) map[string]any {
	entry := event.Entry()
	return map[string]any{
		"event_id":     event.ID().String(),
		"kind":         string(event.Kind()),
		"package_id":   entry.PackageID().String(),
		"status":       entry.Status().String(),
		"note":         entry.Note(),
		"updated_time": entry.UpdatedTime().UTC().Format(time.RFC3339Nano),
	}
}
