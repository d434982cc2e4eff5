package routing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/hongjunna/toporider/internal/log"

	"github.com/redis/go-redis/v9"
)

// cache keeps successful route responses in Redis. A nil client disables it.
type cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func cacheKey(q Query) string {
	var b strings.Builder
	b.WriteString("route:")
	b.WriteString(q.Mode)
	b.WriteString(":")
	b.WriteString(q.Profile)
	for _, p := range q.Points {
		b.WriteString(":")
		b.WriteString(formatPoint(p))
	}
	return b.String()
}

func (c cache) get(ctx context.Context, key string) (Response, bool) {
	if c.redis == nil {
		return Response{}, false
	}
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnw("route cache read failed", "key", key, "error", err)
		}
		return Response{}, false
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warnw("route cache entry corrupt", "key", key, "error", err)
		return Response{}, false
	}
	return resp, true
}

func (c cache) set(ctx context.Context, key string, resp Response) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warnw("route cache write failed", "key", key, "error", err)
	}
}
