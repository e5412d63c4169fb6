// Package match holds the published match model.
package match

import (
	"context"
	"time"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

// Match is a published fixture. HomeHoldID/AwayHoldID are empty when the
// resolver could not link the side to a team unambiguously; the side name
// is always kept. Referee name/id pairs are either both set or both empty.
type Match struct {
	ID         string
	ExternalID string
	Date       *time.Time
	Time       string // "hh:mm", empty when the source had no kickoff time
	Venue      string
	Result     string
	Referee1   string
	Referee1ID string
	Referee2   string
	Referee2ID string
	Gender     gender.Gender
	League     string
	Stage      string
	Pool       string
	HomeTeam   string
	HomeHoldID string
	AwayTeam   string
	AwayHoldID string
}

// Filter narrows published match queries. Zero-value fields are ignored.
// GenderSet distinguishes "no gender filter" from "gender is unknown".
type Filter struct {
	League    string
	Pool      string
	Gender    gender.Gender
	GenderSet bool
	HoldID    string
}

// Repository reads published matches.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Match, error)
	// ListByHoldIDs returns the matches in a league where any of the given
	// hold-ids plays, newest first.
	ListByHoldIDs(ctx context.Context, league string, holdIDs []string) ([]Match, error)
}
