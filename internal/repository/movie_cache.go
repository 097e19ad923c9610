package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/theater-staff/internal/config"
	"github.com/iliyamo/theater-staff/internal/model"
)

// RowSource is anything that can list raw movie rows.
type RowSource interface {
	FetchRows(ctx context.Context) ([]MovieRow, error)
}

// CachedMovies is a Redis read-through cache in front of the movie rows.
// Only raw rows are cached: decoding runs on every call so a bad record
// still fails the fetch, and availability is never cached at all.
type CachedMovies struct {
	src RowSource
	rdb *redis.Client
	cfg config.CacheConfig
	log *slog.Logger
}

// NewCachedMovies returns a cache over src.  With caching disabled or a nil
// client every call goes straight to src.
func NewCachedMovies(src RowSource, rdb *redis.Client, cfg config.CacheConfig, log *slog.Logger) *CachedMovies {
	if log == nil {
		log = slog.Default()
	}
	return &CachedMovies{src: src, rdb: rdb, cfg: cfg, log: log}
}

func (c *CachedMovies) key() string { return c.cfg.Prefix + ":movies:rows" }

func (c *CachedMovies) enabled() bool { return c.cfg.Enabled && c.rdb != nil && c.cfg.TTL > 0 }

// FetchRows serves rows from Redis when present, otherwise from src.
// Redis failures are logged and bypassed.
func (c *CachedMovies) FetchRows(ctx context.Context) ([]MovieRow, error) {
	if !c.enabled() {
		return c.src.FetchRows(ctx)
	}
	if bs, err := c.rdb.Get(ctx, c.key()).Bytes(); err == nil {
		var rows []MovieRow
		if err := json.Unmarshal(bs, &rows); err == nil {
			return rows, nil
		}
		c.log.Warn("movie cache entry unreadable, refetching", "key", c.key())
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("movie cache read failed", "err", err)
	}

	rows, err := c.src.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	if bs, err := json.Marshal(rows); err == nil && (c.cfg.MaxBytes <= 0 || len(bs) <= c.cfg.MaxBytes) {
		if err := c.rdb.Set(ctx, c.key(), bs, c.cfg.TTL).Err(); err != nil {
			c.log.Warn("movie cache write failed", "err", err)
		}
	}
	return rows, nil
}

// FetchMovies decodes the (possibly cached) rows.
func (c *CachedMovies) FetchMovies(ctx context.Context) ([]model.Movie, error) {
	rows, err := c.FetchRows(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeMovies(rows)
}

// Invalidate drops the cached rows.
func (c *CachedMovies) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key()).Err()
}
