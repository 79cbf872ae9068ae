package session

import (
	"slices"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

// Snapshot is the persisted session of one workspace: the signed-in user,
// their league and the league roster.
type Snapshot struct {
	User    *user.User
	League  *league.League
	Members []user.User
}

func (s Snapshot) LoggedIn() bool {
	return s.User != nil
}

// Clone returns a deep copy safe to hand out of the owning store.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Members: slices.Clone(s.Members)}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.League != nil {
		l := *s.League
		l.Members = slices.Clone(s.League.Members)
		out.League = &l
	}
	return out
}
