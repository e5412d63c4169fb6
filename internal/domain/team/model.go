// Package team holds the published team model, the merger that folds
// staged candidates into one record per stable identity, and the resolver
// that links match sides to hold-ids.
package team

import (
	"context"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

// Team is a published team. ID is a stable content hash; HoldID is the
// federation's team number when the source rows carried one.
type Team struct {
	ID              string
	ClubID          string
	League          string
	Name            string
	HoldID          string
	Gender          gender.Gender
	SeasonStartYear int
}

// Repository reads published teams.
type Repository interface {
	ListByClubAndLeague(ctx context.Context, clubID, league string) ([]Team, error)
	// GetByHoldID looks a team up by hold-id within a league; ok is false
	// on a miss.
	GetByHoldID(ctx context.Context, league, holdID string) (Team, bool, error)
}
