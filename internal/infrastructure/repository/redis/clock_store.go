package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
)

const clockKeyPrefix = "draft:clock:"

// Config holds the redis clock store settings.
type Config struct {
	Client *goredis.Client
	// TTL bounds how long an abandoned session's clock lingers. Zero keeps it.
	TTL time.Duration
}

// ClockStore shares turn clock baselines between API replicas.
type ClockStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewClockStore(ctx context.Context, cfg Config) (*ClockStore, error) {
	if cfg.Client == nil {
		return nil, crerr.New("redis client cannot be nil")
	}
	if cfg.TTL < 0 {
		return nil, crerr.Newf("clock state ttl must be >= 0, got %s", cfg.TTL)
	}
	if err := cfg.Client.Ping(ctx).Err(); err != nil {
		return nil, crerr.Wrap(err, "ping redis")
	}

	return &ClockStore{client: cfg.Client, ttl: cfg.TTL}, nil
}

func (s *ClockStore) Load(ctx context.Context, sessionID string) (draft.ClockState, bool, error) {
	raw, err := s.client.Get(ctx, clockKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return draft.ClockState{}, false, nil
		}
		return draft.ClockState{}, false, crerr.Wrapf(err, "get clock state session=%s", sessionID)
	}

	var state draft.ClockState
	if err := sonic.Unmarshal(raw, &state); err != nil {
		return draft.ClockState{}, false, crerr.Wrapf(err, "decode clock state session=%s", sessionID)
	}
	return state, true, nil
}

func (s *ClockStore) Save(ctx context.Context, sessionID string, state draft.ClockState) error {
	raw, err := sonic.Marshal(state)
	if err != nil {
		return crerr.Wrapf(err, "encode clock state session=%s", sessionID)
	}
	if err := s.client.Set(ctx, clockKey(sessionID), raw, s.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "set clock state session=%s", sessionID)
	}
	return nil
}

func (s *ClockStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, clockKey(sessionID)).Err(); err != nil {
		return crerr.Wrapf(err, "delete clock state session=%s", sessionID)
	}
	return nil
}

func clockKey(sessionID string) string {
	return clockKeyPrefix + sessionID
}
