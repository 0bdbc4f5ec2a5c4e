package matches

import (
	"github.com/preston-bernstein/matchboard/internal/domain"
	"github.com/preston-bernstein/matchboard/internal/domain/teams"
)

// Match fields the service reads or writes.
const (
	FieldHomeID = "homeId"
	FieldAwayID = "awayId"
	FieldScore  = "score"
	FieldHome   = "home"
	FieldAway   = "away"
)

// Match is a stored match record: {id, homeId, awayId, score, ...}.
type Match = domain.Record

// Enrich returns a copy of match with home and away set to the referenced
// teams (logo rewritten), or nil when the reference dangles.
func Enrich(match Match, teamList []teams.Team, logoPrefix string) Match {
	out := match.Clone()
	if out == nil {
		out = Match{}
	}
	out[FieldHome] = resolve(teamList, match[FieldHomeID], logoPrefix)
	out[FieldAway] = resolve(teamList, match[FieldAwayID], logoPrefix)
	return out
}

func resolve(teamList []teams.Team, ref any, logoPrefix string) any {
	team := teams.FindByID(teamList, ref)
	if team == nil {
		return nil
	}
	return teams.WithLogoURL(team, logoPrefix)
}
