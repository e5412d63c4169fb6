// Package memory provides in-memory repositories for tests and local
// development without Postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floorballportalen/turnering/internal/domain/staging"
)

type StagingRepository struct {
	mu      sync.RWMutex
	imports []staging.Import
}

func NewStagingRepository() *StagingRepository {
	return &StagingRepository{}
}

func (r *StagingRepository) Save(_ context.Context, imp staging.Import) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.imports = append(r.imports, imp)
	return nil
}

func (r *StagingRepository) Latest(context.Context) (staging.Import, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.imports) == 0 {
		return staging.Import{}, false, nil
	}

	latest := r.imports[0]
	for _, imp := range r.imports[1:] {
		if imp.CreatedAt.After(latest.CreatedAt) {
			latest = imp
		}
	}
	return latest, true, nil
}

func (r *StagingRepository) ListSummaries(_ context.Context, limit int) ([]staging.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]staging.Summary, 0, len(r.imports))
	for _, imp := range r.imports {
		out = append(out, imp.Summary())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
