package teams

import (
	"strings"

	"github.com/preston-bernstein/matchboard/internal/domain"
)

// FieldLogo holds the logo filename on stored teams and the resolved URL on responses.
const FieldLogo = "logo"

// Team is a stored team record: {id, logo, ...}.
type Team = domain.Record

// LogoURL joins the public logo prefix and a stored filename.
func LogoURL(prefix, filename string) string {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + filename
}

// WithLogoURL returns a copy of team whose logo filename is replaced by its
// public URL. Teams without a string logo are copied unchanged.
func WithLogoURL(team Team, prefix string) Team {
	if team == nil {
		return nil
	}
	out := team.Clone()
	if filename, ok := team[FieldLogo].(string); ok {
		out[FieldLogo] = LogoURL(prefix, filename)
	}
	return out
}

// FindByID returns the first team whose id equals ref, scanning in order.
func FindByID(items []Team, ref any) Team {
	id, ok := domain.IntValue(ref)
	if !ok {
		return nil
	}
	for _, t := range items {
		if t.HasID(id) {
			return t
		}
	}
	return nil
}
