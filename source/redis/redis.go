// Package redis implements a feedcache.Source over Redis: the snapshot is a
// hash read with HGETALL, the live feed is a Pub/Sub channel carrying framed
// update envelopes.
//
// Per the cache contract there is no retry or reconnect: Fetch runs once, the
// subscription is opened once and consumed until the context is cancelled or
// the connection dies. Producers publish with Publish and seed the snapshot
// hash with Seed so both paths share one codec and one envelope format.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/feedcache"
	"github.com/unkn0wn-root/feedcache/codec"
	"github.com/unkn0wn-root/feedcache/internal/wire"
)

var ErrNilClient = errors.New("redis source: nil client")

type Source[V any] struct {
	rdb         goredis.UniversalClient
	hashKey     string
	channel     string
	codec       codec.Codec[V]
	closeClient bool
}

var _ feedcache.Source[int] = (*Source[int])(nil)

type Config[V any] struct {
	Client  goredis.UniversalClient
	HashKey string // hash holding the bulk snapshot
	Channel string // pub/sub channel carrying live updates
	Codec   codec.Codec[V]

	CloseClient bool // set true only if this source exclusively owns the client
}

func New[V any](cfg Config[V]) (*Source[V], error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.HashKey == "" || cfg.Channel == "" {
		return nil, errors.New("redis source: hash key and channel are required")
	}
	if cfg.Codec == nil {
		return nil, errors.New("redis source: codec is required")
	}
	return &Source[V]{
		rdb:         cfg.Client,
		hashKey:     cfg.HashKey,
		channel:     cfg.Channel,
		codec:       cfg.Codec,
		closeClient: cfg.CloseClient,
	}, nil
}

// Fetch reads the snapshot hash. The result is atomic: any undecodable field
// fails the whole fetch rather than returning a partial mapping.
func (s *Source[V]) Fetch(ctx context.Context) (map[string]V, error) {
	fields, err := s.rdb.HGetAll(ctx, s.hashKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]V, len(fields))
	for k, raw := range fields {
		v, err := s.codec.Decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("redis source: decode snapshot field %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Subscribe opens the Pub/Sub subscription and returns the update channel.
// A malformed or undecodable message becomes a single failed element; the
// feed continues. The channel closes when ctx is cancelled or the
// subscription connection closes.
func (s *Source[V]) Subscribe(ctx context.Context) (<-chan feedcache.Update[V], error) {
	sub := s.rdb.Subscribe(ctx, s.channel)
	// force the subscription handshake so an unreachable server fails the
	// call, not the first element
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan feedcache.Update[V])
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- s.decode(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *Source[V]) decode(payload string) feedcache.Update[V] {
	key, raw, err := wire.DecodeUpdate([]byte(payload))
	if err != nil {
		return feedcache.Update[V]{Err: err}
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		return feedcache.Update[V]{Key: key, Err: fmt.Errorf("redis source: decode update %q: %w", key, err)}
	}
	return feedcache.Update[V]{Key: key, Value: v}
}

// Publish sends one live update on the channel. Producer-side helper.
func (s *Source[V]) Publish(ctx context.Context, key string, value V) error {
	payload, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	env, err := wire.EncodeUpdate(key, payload)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, env).Err()
}

// Seed writes one snapshot hash field. Producer-side helper.
func (s *Source[V]) Seed(ctx context.Context, key string, value V) error {
	payload, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, s.hashKey, key, payload).Err()
}

// Close releases the underlying redis client only when this source owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Source[V]) Close() error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
