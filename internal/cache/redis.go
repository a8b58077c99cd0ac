package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope carries the absolute deadline alongside the payload.
// Redis only keeps a single TTL per key, which we use for the sliding
// window; the absolute cutoff is enforced on read.
type redisEnvelope struct {
	Deadline int64  `json:"deadline"`
	Sliding  int64  `json:"sliding"`
	Value    []byte `json:"value"`
}

type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Unreadable entry: drop it and report a miss.
		_ = r.client.Del(ctx, key).Err()
		return nil, ErrMiss
	}

	now := time.Now()
	deadline := time.Unix(env.Deadline, 0)
	if now.After(deadline) {
		_ = r.client.Del(ctx, key).Err()
		return nil, ErrMiss
	}

	// Slide the key TTL forward, never past the absolute deadline.
	if env.Sliding > 0 {
		slid := time.Duration(env.Sliding) * time.Second
		if remaining := time.Until(deadline); remaining < slid {
			slid = remaining
		}
		_ = r.client.Expire(ctx, key, slid).Err()
	}
	return env.Value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, exp Expiration) error {
	env := redisEnvelope{
		Deadline: time.Now().Add(exp.Absolute).Unix(),
		Sliding:  int64(exp.Sliding / time.Second),
		Value:    value,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	ttl := exp.Absolute
	if exp.Sliding > 0 && exp.Sliding < ttl {
		ttl = exp.Sliding
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
