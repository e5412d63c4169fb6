// Package identity derives the stable ids that published records keep
// across re-imports. Ids are content hashes of natural keys, never
// database sequences, so re-publishing the same source rows yields the
// same ids and downstream references (rosters, event entries, standings)
// survive a full snapshot replace.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// StableID hashes a natural key into "<prefix>_<32 hex chars>".
func StableID(prefix, naturalKey string) string {
	sum := sha256.Sum256([]byte(naturalKey))
	return prefix + "_" + hex.EncodeToString(sum[:])[:32]
}

// ClubKey prefers the club number over the name; spreadsheet club numbers
// are stable while names get re-typed.
func ClubKey(clubNo, name string) string {
	if strings.TrimSpace(clubNo) != "" {
		return "no:" + strings.ToLower(strings.TrimSpace(clubNo))
	}
	return "name:" + strings.ToLower(strings.TrimSpace(name))
}

// TeamKey keys a team by its hold-id within a league when one is present;
// otherwise by club, league and team name. Rows with and without hold-ids
// deliberately hash apart so a later hold-id assignment cannot silently
// retarget an existing id.
func TeamKey(holdID, clubKey, league, teamName string) string {
	l := strings.ToLower(strings.TrimSpace(league))
	if strings.TrimSpace(holdID) != "" {
		return "hold:" + strings.ToLower(strings.TrimSpace(holdID)) + "|league:" + l
	}
	return "club:" + strings.ToLower(strings.TrimSpace(clubKey)) +
		"|league:" + l +
		"|name:" + strings.ToLower(strings.TrimSpace(teamName))
}

// MatchKey keys a match by its external number plus the fields that make a
// fixture unique when numbers are missing or reused.
func MatchKey(externalID, isoDate, timeText, homeTeam, awayTeam, league string) string {
	return strings.ToLower(
		"id:" + strings.TrimSpace(externalID) +
			"|d:" + strings.TrimSpace(isoDate) +
			"|t:" + strings.TrimSpace(timeText) +
			"|h:" + strings.TrimSpace(homeTeam) +
			"|a:" + strings.TrimSpace(awayTeam) +
			"|l:" + strings.TrimSpace(league),
	)
}
