// Package club holds the published club model.
package club

import "context"

// Club is a published club. ID is a stable content hash of the club number
// (or name, for clubs that only appear by name in the Holdliste sheet).
type Club struct {
	ID     string
	ClubNo string
	Name   string
}

// Repository reads published clubs.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
}
