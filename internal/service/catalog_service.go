package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// CatalogService serves the term course catalog with a redis cache in
// front of the slot tables. The cache only backs this read path; the
// optimizer always reads a fresh snapshot through its own store.
type CatalogService struct {
	courseRepo *repository.CourseRepository
	rdb        *redis.Client
	ttl        time.Duration
	log        zerolog.Logger
}

func NewCatalogService(courseRepo *repository.CourseRepository, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		courseRepo: courseRepo,
		rdb:        rdb,
		ttl:        ttl,
		log:        log.With().Str("component", "catalog_service").Logger(),
	}
}

// Catalog returns the offered courses of a term, optionally filtered by
// a substring query against the course code.
func (s *CatalogService) Catalog(ctx context.Context, academicYear int, term, query string) ([]model.CatalogEntry, error) {
	entries, err := s.cachedCatalog(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return entries, nil
	}

	filtered := make([]model.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToUpper(e.Code), query) ||
			strings.Contains(strings.ToUpper(e.Name), query) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// Invalidate drops the cached catalog for a term after staff edit slots.
func (s *CatalogService) Invalidate(ctx context.Context, academicYear int, term string) {
	if err := s.rdb.Del(ctx, config.CacheKey.CatalogKey(academicYear, term)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

func (s *CatalogService) cachedCatalog(ctx context.Context, academicYear int, term string) ([]model.CatalogEntry, error) {
	key := config.CacheKey.CatalogKey(academicYear, term)

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var entries []model.CatalogEntry
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return entries, nil
		}
		// Corrupt cache entry: fall through to the database.
		s.log.Warn().Str("key", key).Msg("discarding unreadable catalog cache entry")
	} else if err != redis.Nil {
		// Redis being down must not take the catalog with it.
		s.log.Warn().Err(err).Msg("catalog cache read failed")
	}

	entries, err := s.courseRepo.ListCatalog(ctx, academicYear, term)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(entries); err == nil {
		if err := s.rdb.Set(ctx, key, encoded, s.ttl).Err(); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return entries, nil
}
