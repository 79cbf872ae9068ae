package session

import (
	"testing"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

func TestSnapshot_CloneIsDeep(t *testing.T) {
	orig := Snapshot{
		User:    &user.User{ID: "user-1", Name: "Guardiola", TotalPoints: 10},
		League:  &league.League{ID: "league-1", Members: []string{"user-1"}},
		Members: []user.User{{ID: "user-1", TotalPoints: 10}},
	}

	cp := orig.Clone()
	cp.User.TotalPoints = 99
	cp.League.Members[0] = "changed"
	cp.Members[0].TotalPoints = 99

	if orig.User.TotalPoints != 10 {
		t.Fatalf("user aliased: %v", orig.User.TotalPoints)
	}
	if orig.League.Members[0] != "user-1" {
		t.Fatalf("league members aliased: %v", orig.League.Members)
	}
	if orig.Members[0].TotalPoints != 10 {
		t.Fatalf("roster aliased: %v", orig.Members[0].TotalPoints)
	}
}

func TestSnapshot_LoggedIn(t *testing.T) {
	if (Snapshot{}).LoggedIn() {
		t.Fatalf("empty snapshot must not be logged in")
	}
	if !(Snapshot{User: &user.User{ID: "u"}}).LoggedIn() {
		t.Fatalf("snapshot with user must be logged in")
	}
}
