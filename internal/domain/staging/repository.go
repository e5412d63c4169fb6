package staging

import "context"

// Repository stores uploaded import snapshots.
type Repository interface {
	Save(ctx context.Context, imp Import) error
	// Latest returns the newest snapshot; ok is false when none exists.
	Latest(ctx context.Context) (Import, bool, error)
	ListSummaries(ctx context.Context, limit int) ([]Summary, error)
}
