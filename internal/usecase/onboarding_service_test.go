package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

func TestOnboardingService_CreateLeague(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.onboarding.CreateLeague(t.Context(), "ws", CreateLeagueInput{Name: "  Guardiola ", LeagueName: " "})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	if view.User.Name != "Guardiola" || view.User.Role != user.RoleManager || view.User.TotalPoints != 0 {
		t.Fatalf("unexpected manager: %+v", view.User)
	}
	if view.League.Name != league.DefaultName {
		t.Fatalf("expected default league name, got %q", view.League.Name)
	}
	if view.League.InviteCode != "ABC123" {
		t.Fatalf("unexpected invite code: %s", view.League.InviteCode)
	}
	if len(view.Members) != 1 || view.Members[0].ID != view.User.ID {
		t.Fatalf("expected manager on roster, got %+v", view.Members)
	}
	if view.RulesAccepted() {
		t.Fatalf("new manager must still face the rules gate")
	}
}

func TestOnboardingService_CreateLeagueKeepsGivenName(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.onboarding.CreateLeague(t.Context(), "ws", CreateLeagueInput{Name: "Arteta", LeagueName: "Study FC"})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}
	if view.League.Name != "Study FC" {
		t.Fatalf("unexpected league name: %s", view.League.Name)
	}
}

func TestOnboardingService_JoinLeague(t *testing.T) {
	env := newTestEnv(t)

	view, err := env.onboarding.JoinLeague(t.Context(), "ws", JoinLeagueInput{Name: "Klopp", InviteCode: "abcdefgh"})
	if err != nil {
		t.Fatalf("join league: %v", err)
	}

	if view.League.ID != league.JoinedLeagueID || view.League.Name != league.JoinedLeagueName {
		t.Fatalf("unexpected placeholder league: %+v", view.League)
	}
	if view.League.InviteCode != "ABCDEF" {
		t.Fatalf("expected normalized code ABCDEF, got %s", view.League.InviteCode)
	}
	if view.User.Role != user.RolePlayer {
		t.Fatalf("expected PLAYER role, got %s", view.User.Role)
	}
}

func TestOnboardingService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "create without name",
			run: func() error {
				_, err := env.onboarding.CreateLeague(ctx, "ws", CreateLeagueInput{Name: "   "})
				return err
			},
		},
		{
			name: "join without name",
			run: func() error {
				_, err := env.onboarding.JoinLeague(ctx, "ws", JoinLeagueInput{InviteCode: "ABC123"})
				return err
			},
		},
		{
			name: "join without code",
			run: func() error {
				_, err := env.onboarding.JoinLeague(ctx, "ws", JoinLeagueInput{Name: "Klopp", InviteCode: " "})
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	view, _ := env.sessions.Get(ctx, "ws")
	if view.LoggedIn() {
		t.Fatalf("failed onboarding must not sign anyone in")
	}
}
