// Package staging models the raw spreadsheet snapshots uploaded by league
// administrators and normalizes their rows into candidate club, team and
// match records. Nothing here is published; the publish pipeline consumes
// these candidates.
package staging

import (
	"time"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

// Import is one uploaded snapshot of the three tournament sheets, kept
// verbatim so a publish can always be re-run from the source rows.
type Import struct {
	ID        string
	CreatedAt time.Time
	Filename  string
	Kampe     []Row
	Holdliste []Row
	Klubliste []Row
}

// Summary describes an import without carrying its rows.
type Summary struct {
	ID        string
	CreatedAt time.Time
	Filename  string
	Kampe     int
	Holdliste int
	Klubliste int
}

func (i Import) Summary() Summary {
	return Summary{
		ID:        i.ID,
		CreatedAt: i.CreatedAt,
		Filename:  i.Filename,
		Kampe:     len(i.Kampe),
		Holdliste: len(i.Holdliste),
		Klubliste: len(i.Klubliste),
	}
}

// Club is a candidate club row from the Klubliste sheet.
type Club struct {
	ClubNo string
	Name   string
}

// Team is a candidate team row from the Holdliste sheet.
type Team struct {
	Season   string
	ClubNo   string
	ClubName string
	League   string
	TeamName string
	HoldID   string
	Gender   gender.Gender
}

// Match is a candidate match row from the Kampprogram sheet. Date and Time
// stay nil when the cell could not be parsed; DateText/TimeText keep the
// operator-facing rendering.
type Match struct {
	ExternalID string
	Date       *time.Time
	Time       *time.Time
	DateText   string
	TimeText   string
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
	AwayTeam   string
}
