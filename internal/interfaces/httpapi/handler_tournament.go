package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/floorballportalen/turnering/internal/domain/club"
	"github.com/floorballportalen/turnering/internal/domain/gender"
	"github.com/floorballportalen/turnering/internal/domain/match"
	"github.com/floorballportalen/turnering/internal/domain/team"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.tournamentService.ListClubs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(c))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

// ListTeams returns a club's teams in a league. An empty gender parameter
// means no filter; gender=unknown filters on unclassified teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := r.URL.Query()
	clubID := query.Get("clubId")
	leagueName := query.Get("league")
	rawGender := strings.TrimSpace(query.Get("gender"))
	genderSet := rawGender != ""

	teams, err := h.tournamentService.ListTeamsForClub(ctx, clubID, leagueName, gender.Normalize(rawGender), genderSet)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed",
			"club_id", clubID, "league", leagueName, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	rawGender := strings.TrimSpace(query.Get("gender"))
	filter := match.Filter{
		League:    query.Get("league"),
		Pool:      query.Get("pool"),
		Gender:    gender.Normalize(rawGender),
		GenderSet: rawGender != "",
		HoldID:    query.Get("holdId"),
	}

	matches, err := h.tournamentService.ListMatches(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "league", filter.League, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(ctx, matches))
}

func (h *Handler) GetTeamByHoldID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamByHoldID")
	defer span.End()

	holdID := r.PathValue("holdID")
	leagueName := r.URL.Query().Get("league")

	found, matches, err := h.tournamentService.TeamByHoldID(ctx, leagueName, holdID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team by hold id failed",
			"hold_id", holdID, "league", leagueName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamWithMatchesDTO{
		Team:    teamToDTO(found),
		Matches: matchesToDTO(ctx, matches),
	})
}

type clubDTO struct {
	ID     string `json:"id"`
	ClubNo string `json:"clubNo,omitempty"`
	Name   string `json:"name"`
}

type teamDTO struct {
	ID              string `json:"id,omitempty"`
	ClubID          string `json:"clubId,omitempty"`
	League          string `json:"league"`
	Name            string `json:"name"`
	HoldID          string `json:"holdId,omitempty"`
	Gender          string `json:"gender,omitempty"`
	SeasonStartYear int    `json:"seasonStartYear,omitempty"`
}

type matchDTO struct {
	ID         string `json:"id"`
	ExternalID string `json:"externalId,omitempty"`
	Date       string `json:"date,omitempty"`
	Time       string `json:"time,omitempty"`
	Venue      string `json:"venue,omitempty"`
	Result     string `json:"result,omitempty"`
	Referee1   string `json:"referee1,omitempty"`
	Referee1ID string `json:"referee1Id,omitempty"`
	Referee2   string `json:"referee2,omitempty"`
	Referee2ID string `json:"referee2Id,omitempty"`
	Gender     string `json:"gender,omitempty"`
	League     string `json:"league,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Pool       string `json:"pool,omitempty"`
	HomeTeam   string `json:"homeTeam"`
	HomeHoldID string `json:"homeHoldId,omitempty"`
	AwayTeam   string `json:"awayTeam"`
	AwayHoldID string `json:"awayHoldId,omitempty"`
}

type teamWithMatchesDTO struct {
	Team    teamDTO    `json:"team"`
	Matches []matchDTO `json:"matches"`
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:     c.ID,
		ClubNo: c.ClubNo,
		Name:   c.Name,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:              t.ID,
		ClubID:          t.ClubID,
		League:          t.League,
		Name:            t.Name,
		HoldID:          t.HoldID,
		Gender:          string(t.Gender),
		SeasonStartYear: t.SeasonStartYear,
	}
}

func matchesToDTO(ctx context.Context, matches []match.Match) []matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchesToDTO")
	defer span.End()

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		date := ""
		if m.Date != nil {
			date = m.Date.Format(time.DateOnly)
		}
		items = append(items, matchDTO{
			ID:         m.ID,
			ExternalID: m.ExternalID,
			Date:       date,
			Time:       m.Time,
			Venue:      m.Venue,
			Result:     m.Result,
			Referee1:   m.Referee1,
			Referee1ID: m.Referee1ID,
			Referee2:   m.Referee2,
			Referee2ID: m.Referee2ID,
			Gender:     string(m.Gender),
			League:     m.League,
			Stage:      m.Stage,
			Pool:       m.Pool,
			HomeTeam:   m.HomeTeam,
			HomeHoldID: m.HomeHoldID,
			AwayTeam:   m.AwayTeam,
			AwayHoldID: m.AwayHoldID,
		})
	}
	return items
}
