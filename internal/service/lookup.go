package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"franceguessr/internal/cache"
	"franceguessr/internal/database"
	"franceguessr/internal/model"
	"franceguessr/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cachePrefix = "postalcodes"

var (
	getPostalCode   = store.GetPostalCodeByInseeCode
	listPostalCodes = store.ListPostalCodesByPrefix
)

// PostalCodeLookup answers the two read-only postal code queries, through
// the cache when one is configured.
type PostalCodeLookup struct {
	DB    database.DB
	Cache cache.Cache
	TTL   time.Duration
	// Namespace separates the cache entries of one import from another.
	Namespace string
}

// NewPostalCodeLookup returns a lookup whose cache keys are scoped to a fresh
// generation id.
func NewPostalCodeLookup(db database.DB, c cache.Cache, ttl time.Duration) *PostalCodeLookup {
	if c == nil {
		c = cache.Disabled{}
	}
	return &PostalCodeLookup{DB: db, Cache: c, TTL: ttl, Namespace: uuid.NewString()}
}

// ByCode returns the first postal code with the given insee code, or nil
// when there is none.
func (l *PostalCodeLookup) ByCode(ctx context.Context, code string) (*model.PostalCode, error) {
	key := l.key("code", code)
	var cached *model.PostalCode
	if l.fromCache(ctx, key, &cached) {
		return cached, nil
	}

	p, err := getPostalCode(ctx, l.DB, code)
	if errors.Is(err, store.ErrNotFound) {
		p, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ByCode: %w", err)
	}
	l.toCache(ctx, key, p)
	return p, nil
}

// ByPrefix returns every postal code whose insee code starts with prefix.
func (l *PostalCodeLookup) ByPrefix(ctx context.Context, prefix string) ([]model.PostalCode, error) {
	key := l.key("prefix", prefix)
	var cached []model.PostalCode
	if l.fromCache(ctx, key, &cached) && cached != nil {
		return cached, nil
	}

	list, err := listPostalCodes(ctx, l.DB, prefix)
	if err != nil {
		return nil, fmt.Errorf("ByPrefix: %w", err)
	}
	l.toCache(ctx, key, list)
	return list, nil
}

func (l *PostalCodeLookup) key(kind, value string) string {
	return fmt.Sprintf("%s:%s:%s:%s", cachePrefix, l.Namespace, kind, value)
}

func (l *PostalCodeLookup) fromCache(ctx context.Context, key string, dst any) bool {
	if l.Cache == nil {
		return false
	}
	raw, err := l.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache entry unreadable")
		return false
	}
	return true
}

func (l *PostalCodeLookup) toCache(ctx context.Context, key string, v any) {
	if l.Cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := l.Cache.Set(ctx, key, raw, l.TTL).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
