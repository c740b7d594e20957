package datasource

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
)

// CacheConfig holds TTLs for cached provider data. Season stats move slowly;
// games and lines move throughout the day.
type CacheConfig struct {
	StatsTTL time.Duration
	GamesTTL time.Duration
}

// DefaultCacheConfig returns the standard TTLs: 12 hours for season stats,
// 6 hours for game results.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		StatsTTL: 12 * time.Hour,
		GamesTTL: 6 * time.Hour,
	}
}

// CachedProvider wraps a Provider with an in-memory TTL cache. Team stats
// and recent games are cached; schedule and line queries pass through since
// they are fetched once per run and must be fresh.
type CachedProvider struct {
	inner  Provider
	cache  *gocache.Cache
	cfg    CacheConfig
	logger *logrus.Entry

	hits   int64
	misses int64
}

// NewCachedProvider wraps the given provider with caching.
func NewCachedProvider(inner Provider, cfg CacheConfig, baseLogger *logrus.Logger) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  gocache.New(cfg.StatsTTL, 30*time.Minute),
		cfg:    cfg,
		logger: baseLogger.WithField("component", "datasource_cache"),
	}
}

func (p *CachedProvider) GamesByDate(ctx context.Context, date string, d1Only, upcomingOnly bool) ([]models.Game, error) {
	return p.inner.GamesByDate(ctx, date, d1Only, upcomingOnly)
}

func (p *CachedProvider) LinesForTeamDate(ctx context.Context, teamName, date string) (*models.MarketLines, error) {
	return p.inner.LinesForTeamDate(ctx, teamName, date)
}

func (p *CachedProvider) TeamStats(ctx context.Context, teamID int) (*models.TeamSeasonStats, error) {
	key := fmt.Sprintf("stats:%d", teamID)
	if cached, ok := p.cache.Get(key); ok {
		p.hits++
		metrics.RecordCacheHit()
		return cached.(*models.TeamSeasonStats), nil
	}
	p.misses++
	metrics.RecordCacheMiss()

	stats, err := p.inner.TeamStats(ctx, teamID)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, stats, p.cfg.StatsTTL)
	return stats, nil
}

func (p *CachedProvider) RecentGames(ctx context.Context, teamID int, limit int) ([]models.RecentGame, error) {
	key := fmt.Sprintf("recent:%d:%d", teamID, limit)
	if cached, ok := p.cache.Get(key); ok {
		p.hits++
		metrics.RecordCacheHit()
		return cached.([]models.RecentGame), nil
	}
	p.misses++
	metrics.RecordCacheMiss()

	games, err := p.inner.RecentGames(ctx, teamID, limit)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, games, p.cfg.GamesTTL)
	return games, nil
}

// Stats returns cache hit and miss counts since startup.
func (p *CachedProvider) Stats() (hits, misses int64) {
	return p.hits, p.misses
}

// Flush empties the cache.
func (p *CachedProvider) Flush() {
	p.cache.Flush()
	p.logger.Info("Cache flushed")
}
