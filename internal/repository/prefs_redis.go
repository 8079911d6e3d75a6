package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"PredictPulse/internal/domain/models"
)

// RedisPreferenceStore keeps per-user liked/dismissed/clicked ticker
// sets in Redis. Liking removes the ticker from the dismissed set and
// vice versa, so the two sets can never overlap.
type RedisPreferenceStore struct {
	cli    *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisPreferenceStore(cfg RedisConfig) (*RedisPreferenceStore, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cli.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisPreferenceStore{cli: cli, prefix: cfg.Prefix}, nil
}

func (s *RedisPreferenceStore) key(userID, set string) string {
	return fmt.Sprintf("%s:prefs:%s:%s", s.prefix, userID, set)
}

func (s *RedisPreferenceStore) Like(ctx context.Context, userID, ticker string) error {
	pipe := s.cli.TxPipeline()
	pipe.SAdd(ctx, s.key(userID, "liked"), ticker)
	pipe.SRem(ctx, s.key(userID, "dismissed"), ticker)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis like: %w", err)
	}
	return nil
}

func (s *RedisPreferenceStore) Dismiss(ctx context.Context, userID, ticker string) error {
	pipe := s.cli.TxPipeline()
	pipe.SAdd(ctx, s.key(userID, "dismissed"), ticker)
	pipe.SRem(ctx, s.key(userID, "liked"), ticker)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis dismiss: %w", err)
	}
	return nil
}

func (s *RedisPreferenceStore) Click(ctx context.Context, userID, ticker string) error {
	if err := s.cli.SAdd(ctx, s.key(userID, "clicked"), ticker).Err(); err != nil {
		return fmt.Errorf("redis click: %w", err)
	}
	return nil
}

func (s *RedisPreferenceStore) Get(ctx context.Context, userID string) (models.Preferences, error) {
	var p models.Preferences

	liked, err := s.cli.SMembers(ctx, s.key(userID, "liked")).Result()
	if err != nil {
		return p, fmt.Errorf("redis get liked: %w", err)
	}
	dismissed, err := s.cli.SMembers(ctx, s.key(userID, "dismissed")).Result()
	if err != nil {
		return p, fmt.Errorf("redis get dismissed: %w", err)
	}
	clicked, err := s.cli.SMembers(ctx, s.key(userID, "clicked")).Result()
	if err != nil {
		return p, fmt.Errorf("redis get clicked: %w", err)
	}

	p.Liked = liked
	p.Dismissed = dismissed
	p.Clicked = clicked
	return p, nil
}

func (s *RedisPreferenceStore) Close() error {
	return s.cli.Close()
}
