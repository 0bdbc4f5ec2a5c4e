package testutil

import (
	"encoding/json"
	"strconv"

	"github.com/preston-bernstein/matchboard/internal/domain"
)

// SampleTeam returns a team record with a logo filename.
func SampleTeam(id int, name, logo string) domain.Record {
	return domain.Record{
		domain.FieldID: json.Number(strconv.Itoa(id)),
		"name":         name,
		"logo":         logo,
	}
}

// SampleMatch returns a match record referencing two team ids.
func SampleMatch(id, homeID, awayID int, score any) domain.Record {
	return domain.Record{
		domain.FieldID: json.Number(strconv.Itoa(id)),
		"homeId":       json.Number(strconv.Itoa(homeID)),
		"awayId":       json.Number(strconv.Itoa(awayID)),
		"score":        score,
	}
}
