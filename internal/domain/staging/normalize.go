package staging

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/floorballportalen/turnering/internal/domain/gender"
)

var (
	clubNoAliases   = []string{"KlubID", "Klub Id", "KlubNr", "Klubnr", "Id"}
	clubNameAliases = []string{"Forening", "Klubnavn", "Klub", "Navn", "Klub navn"}
)

func rowClubNo(row Row) string {
	if v := row.First(clubNoAliases...); v != "" {
		return v
	}
	if v := row.FirstContains("klubid"); v != "" {
		return v
	}
	return row.FirstContains("klubnr")
}

func rowGender(row Row) gender.Gender {
	raw := row.First("Køn", "Koen", "Gender")
	if raw == "" {
		raw = row.FirstContains("køn")
	}
	if raw == "" {
		raw = row.FirstContains("koen")
	}
	if raw == "" {
		raw = row.FirstContains("gender")
	}
	return gender.Normalize(raw)
}

// NormalizeClubs extracts unique club candidates from Klubliste rows. Rows
// with neither a club number nor a name are dropped; duplicates collapse on
// the club number when present, else the name. Output is sorted for stable
// publishes.
func NormalizeClubs(klubliste []Row) []Club {
	out := make([]Club, 0, len(klubliste))
	seen := make(map[string]struct{}, len(klubliste))

	for _, row := range klubliste {
		clubNo := rowClubNo(row)

		name := row.First(clubNameAliases...)
		if name == "" {
			name = row.FirstContains("forening")
		}
		if name == "" {
			name = row.FirstContains("klubnavn")
		}
		if name == "" {
			name = row.FirstContains("navn")
		}

		if clubNo == "" && name == "" {
			continue
		}

		key := "name:" + strings.ToLower(name)
		if clubNo != "" {
			key = "no:" + strings.ToLower(clubNo)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if name == "" {
			name = clubNo
		}
		out = append(out, Club{ClubNo: clubNo, Name: name})
	}

	// Danish collation puts æ, ø and å after z. A collator buffers
	// internally, so each call builds its own.
	coll := collate.New(language.Danish)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(clubSortKey(out[i]), clubSortKey(out[j])) < 0
	})
	return out
}

func clubSortKey(c Club) string {
	if c.ClubNo != "" {
		return c.ClubNo
	}
	return c.Name
}

// NormalizeTeams extracts team candidates from Holdliste rows. A candidate
// needs a club reference, a league and a team name. The dedupe key keeps
// the season so name variants across seasons survive for the merger to
// fold by recency.
func NormalizeTeams(holdliste []Row) []Team {
	out := make([]Team, 0, len(holdliste))
	seen := make(map[string]struct{}, len(holdliste))

	for _, row := range holdliste {
		season := row.First("Season", "Sæson", "Saeson")
		if season == "" {
			season = row.FirstContains("sæson")
		}
		if season == "" {
			season = row.FirstContains("saeson")
		}
		if season == "" {
			season = row.FirstContains("season")
		}

		holdID := row.First("HoldID", "Hold Id", "HoldId", "HoldNr", "Holdnr", "TeamID", "Team Id", "TeamId")
		if holdID == "" {
			holdID = row.FirstContains("holdid")
		}
		if holdID == "" {
			holdID = row.FirstContains("teamid")
		}

		clubNo := rowClubNo(row)
		clubName := row.First("Forening", "Klub", "Klubnavn", "Klub navn")
		if clubName == "" {
			clubName = row.FirstContains("forening")
		}
		if clubName == "" {
			clubName = row.FirstContains("klubnavn")
		}
		if clubName == "" {
			clubName = row.FirstContains("klub")
		}

		league := row.First("Liga", "Række", "Raekke", "Turnering")
		if league == "" {
			league = row.FirstContains("liga")
		}

		teamName := row.First("Hold", "Holdnavn", "Hold navn", "Team")
		if teamName == "" {
			teamName = row.FirstContains("hold")
		}

		g := rowGender(row)

		if clubNo == "" && clubName == "" && league == "" && teamName == "" {
			continue
		}
		if (clubNo == "" && clubName == "") || league == "" || teamName == "" {
			continue
		}

		clubRef := clubNo
		if clubRef == "" {
			clubRef = clubName
		}
		key := strings.ToLower(clubRef) + "|" + strings.ToLower(league) + "|" +
			strings.ToLower(teamName) + "|" + string(g) + "|" + strings.ToLower(season)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if clubName == "" {
			clubName = clubNo
		}
		out = append(out, Team{
			Season:   season,
			ClubNo:   clubNo,
			ClubName: clubName,
			League:   league,
			TeamName: teamName,
			HoldID:   holdID,
			Gender:   g,
		})
	}

	return out
}

// NormalizeMatches extracts match candidates from Kampprogram rows. Date
// and time cells are read raw because Excel exports serial numbers for
// them. Rows carrying nothing identifiable are dropped.
func NormalizeMatches(kampe []Row) []Match {
	out := make([]Match, 0, len(kampe))

	for _, row := range kampe {
		dateCell := row.Cell([]string{"Dato"}, "dato", "date")
		timeCell := row.Cell([]string{"Tid"}, "tid", "time")

		date := ParseDateCell(dateCell)
		kickoff, timeText := ParseTimeCell(timeCell)
		if timeText == "" {
			timeText = CellString(timeCell)
		}

		externalID := row.First("KampID", "Kamp Id", "KampNr", "Kampnr", "Nr", "MatchID")
		if externalID == "" {
			externalID = row.FirstContains("kampid")
		}
		if externalID == "" {
			externalID = row.FirstContains("kamp")
		}

		league := row.First("Liga", "Række", "Raekke")
		if league == "" {
			league = row.FirstContains("liga")
		}
		stage := row.First("Stadie", "Stage")
		if stage == "" {
			stage = row.FirstContains("stadie")
		}
		pool := row.First("Pulje")
		if pool == "" {
			pool = row.FirstContains("pulje")
		}
		venue := row.First("Sted", "Hal", "Spillested", "Bane")
		if venue == "" {
			venue = row.FirstContains("sted")
		}
		result := row.First("Resultat", "Result", "Score")
		if result == "" {
			result = row.FirstContains("result")
		}
		homeTeam := row.First("Hjemmehold", "Hjemme", "Home")
		if homeTeam == "" {
			homeTeam = row.FirstContains("hjem")
		}
		awayTeam := row.First("Udehold", "Ude", "Away")
		if awayTeam == "" {
			awayTeam = row.FirstContains("ude")
		}

		referee1 := row.First("Dommer1", "Dommer 1", "Dommer 1 Navn", "Dommer 1 navn")
		if referee1 == "" {
			referee1 = row.FirstMatch(func(k string) bool {
				return strings.Contains(k, "dommer1") && !strings.Contains(k, "id")
			})
		}
		referee1ID := row.First("Dommer1_ID", "Dommer1ID", "Dommer1 Id", "Dommer 1 ID", "Dommer 1_ID")
		if referee1ID == "" {
			referee1ID = row.FirstMatch(func(k string) bool {
				return strings.Contains(k, "dommer1") && strings.Contains(k, "id")
			})
		}
		referee2 := row.First("Dommer2", "Dommer 2", "Dommer 2 Navn", "Dommer 2 navn")
		if referee2 == "" {
			referee2 = row.FirstMatch(func(k string) bool {
				return strings.Contains(k, "dommer2") && !strings.Contains(k, "id")
			})
		}
		referee2ID := row.First("Dommer2_ID", "Dommer2ID", "Dommer2 Id", "Dommer 2 ID", "Dommer 2_ID")
		if referee2ID == "" {
			referee2ID = row.FirstMatch(func(k string) bool {
				return strings.Contains(k, "dommer2") && strings.Contains(k, "id")
			})
		}

		hasAny := externalID != "" || league != "" || pool != "" || venue != "" ||
			homeTeam != "" || awayTeam != "" || date != nil || kickoff != nil
		if !hasAny {
			continue
		}

		out = append(out, Match{
			ExternalID: externalID,
			Date:       date,
			Time:       kickoff,
			DateText:   FormatDateDa(date),
			TimeText:   timeText,
			Venue:      venue,
			Result:     result,
			Referee1:   referee1,
			Referee1ID: referee1ID,
			Referee2:   referee2,
			Referee2ID: referee2ID,
			Gender:     rowGender(row),
			League:     league,
			Stage:      stage,
			Pool:       pool,
			HomeTeam:   homeTeam,
			AwayTeam:   awayTeam,
		})
	}

	return out
}

// ValidationError lists row problems that block a publish. At most ten
// problems are reported; an import with hundreds of broken rows does not
// need hundreds of lines to say so.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

const maxReportedProblems = 10

// ValidateMatches rejects match candidates whose time text is present but
// not "hh:mm". A nil return means the matches are publishable.
func ValidateMatches(matches []Match) *ValidationError {
	var problems []string
	for _, m := range matches {
		if m.TimeText == "" || validTimeText(m.TimeText) {
			continue
		}
		home := m.HomeTeam
		if home == "" {
			home = "?"
		}
		away := m.AwayTeam
		if away == "" {
			away = "?"
		}
		problems = append(problems, fmt.Sprintf("Tid skal være hh:mm for kamp: %s - %s (fandt '%s')", home, away, m.TimeText))
		if len(problems) == maxReportedProblems {
			break
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func validTimeText(text string) bool {
	if len(text) != 5 || text[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
