package digest

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"contract-backend/internal/ingestions"
	"contract-backend/internal/report"
	"contract-backend/internal/shared/telemetry"
	"contract-backend/internal/shared/util"
)

// Cache entries are content-addressed, so a long TTL is safe: a changed
// document hashes to a new key and simply misses.
const (
	cacheTTL     = 24 * time.Hour
	cacheCleanup = time.Hour
)

// Service answers clause-digest lookups from a content-addressed memory
// cache with read-through to the ingestion record's analysis seed.
type Service struct {
	repo  ingestions.Repo
	cache *gocache.Cache
}

func NewService(repo ingestions.Repo) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

// Lookup returns the digest for the given extracted text, if one is
// known: first from the memory cache, then from the ingestion's persisted
// seed when its content hash still matches. The second return value
// reports whether a digest was found.
func (s *Service) Lookup(text string, ing *ingestions.Ingestion) (ingestions.ClauseDigest, bool) {
	hash := util.HashContent(text)
	if cached, ok := s.cache.Get(hash); ok {
		if d, ok := cached.(ingestions.ClauseDigest); ok {
			return d, true
		}
	}
	if ing != nil && ing.Metadata.AnalysisSeed != nil {
		seed := ing.Metadata.AnalysisSeed
		if seed.ContentHash == hash && seed.ClauseDigest != nil {
			if !IsWeakClauseSet(ing.Metadata.ClauseExtractions) {
				s.cache.Set(hash, *seed.ClauseDigest, cacheTTL)
				return *seed.ClauseDigest, true
			}
		}
	}
	return ingestions.ClauseDigest{}, false
}

// Store computes and caches the digest for extracted text, then persists
// it onto the ingestion record best-effort: write failures are logged and
// swallowed because the digest already served this request from memory.
func (s *Service) Store(ctx context.Context, ingestionID, text string, extractions []report.ClauseExtraction) ingestions.ClauseDigest {
	hash := util.HashContent(text)
	d := Build(extractions)
	s.cache.Set(hash, d, cacheTTL)

	if s.repo == nil || ingestionID == "" {
		return d
	}
	seed := ingestions.AnalysisSeed{
		ContentHash:  hash,
		ClauseDigest: &d,
	}
	if err := s.repo.UpdateAnalysisSeed(ctx, ingestionID, seed, extractions); err != nil {
		telemetry.Error("clause digest persistence failed", map[string]any{
			"ingestion_id": ingestionID,
			"error":        err.Error(),
		})
	}
	return d
}
