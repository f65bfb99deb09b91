package drivingtimecache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"chameleon-scheduler/internal/domain"
)

// Redis is a ports.DrivingTimeCache backed by one Redis hash per origin
// terminal (key "driving_time:<from>", field "<to>", value the delta in
// seconds). A hash-per-origin gives an O(1) HGET per lookup and a single
// HGETALL per origin when enumerating Pairs, without needing a secondary
// index of known origins — this is the natural home for a matrix that must
// be shared, read-mostly, across many concurrent optimizer worker
// processes, the role the teacher's go.mod pulls in go-redis for but never
// actually wires up.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an already-connected client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func hashKey(from domain.TerminalID) string {
	return fmt.Sprintf("driving_time:%d", from)
}

func (r *Redis) Get(from, to domain.TerminalID) (domain.NonNegativeTimeDelta, bool) {
	v, err := r.client.HGet(context.Background(), hashKey(from), strconv.Itoa(int(to))).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return domain.NonNegativeTimeDelta(n), true
}

func (r *Redis) Set(ctx context.Context, from, to domain.TerminalID, dt domain.NonNegativeTimeDelta) error {
	if err := r.client.HSet(ctx, hashKey(from), strconv.Itoa(int(to)), int64(dt)).Err(); err != nil {
		return fmt.Errorf("redis driving time cache: set (%d, %d): %w", from, to, err)
	}
	return nil
}

func (r *Redis) Pairs(ctx context.Context) ([][2]domain.TerminalID, error) {
	var out [][2]domain.TerminalID
	iter := r.client.Scan(ctx, 0, "driving_time:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		var from int
		if _, err := fmt.Sscanf(key, "driving_time:%d", &from); err != nil {
			continue
		}
		fields, err := r.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis driving time cache: hgetall %q: %w", key, err)
		}
		for field := range fields {
			to, err := strconv.Atoi(field)
			if err != nil {
				continue
			}
			out = append(out, [2]domain.TerminalID{domain.TerminalID(from), domain.TerminalID(to)})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis driving time cache: scan: %w", err)
	}
	return out, nil
}
