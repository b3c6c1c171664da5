// Package redis stores rendered artifacts in Redis, one hash per run.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "folio:artifacts:"

// Hash fields of a run.
const (
	fieldProductPage    = "product_page"
	fieldFAQ            = "faq"
	fieldComparisonPage = "comparison_page"
)

// farFuture scores index entries that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ArtifactStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL sets the expiration of stored runs.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithClock replaces time.Now for index scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(runID string) string {
	return s.prefix + runID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Write replaces the artifacts of a run.
func (s *Store) Write(ctx context.Context, runID string, artifacts domain.Artifacts) error {
	if err := ports.ValidateRunID(runID); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()

	key := s.key(runID)
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		fieldProductPage, artifacts.ProductPage,
		fieldFAQ, artifacts.FAQ,
		fieldComparisonPage, artifacts.ComparisonPage,
	)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	// Index score is the expiry time, so List can prune lazily.
	score := float64(s.now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: runID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Read retrieves the artifacts of a run.
func (s *Store) Read(ctx context.Context, runID string) (domain.Artifacts, error) {
	vals, err := s.client.HGetAll(ctx, s.key(runID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Artifacts{}, domain.ErrArtifactsNotFound
		}
		return domain.Artifacts{}, fmt.Errorf("failed to get from redis: %w", err)
	}
	if len(vals) == 0 {
		return domain.Artifacts{}, domain.ErrArtifactsNotFound
	}
	return domain.Artifacts{
		ProductPage:    vals[fieldProductPage],
		FAQ:            vals[fieldFAQ],
		ComparisonPage: vals[fieldComparisonPage],
	}, nil
}

// List returns the stored run IDs, oldest expiry first.
// Expired entries are pruned from the index on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(s.now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("(%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired runs: %w", err)
	}

	runs, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
