package output

import (
	"bytes"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis publishes each rendered line to a pub/sub channel so other tooling
// can subscribe to the event stream.
type Redis struct {
	client  *redis.Client
	channel string
}

func NewRedis(client *redis.Client, channel string) *Redis {
	return &Redis{client: client, channel: channel}
}

func (r *Redis) WriteBatch(entries [][]byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, entry := range entries {
		line := bytes.TrimRight(entry, "\n")
		if err := r.client.Publish(ctx, r.channel, line).Err(); err != nil {
			return err
		}
	}
	return nil
}
