package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/onboarding"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
	"github.com/riskibarqy/the-gaffer/internal/platform/id"
)

type CreateLeagueInput struct {
	Name       string
	LeagueName string
}

type JoinLeagueInput struct {
	Name       string
	InviteCode string
}

// OnboardingService walks a new manager through the onboarding flow and signs
// them in with the league they created or joined.
type OnboardingService struct {
	sessions *SessionService
	ids      id.Generator
}

func NewOnboardingService(sessions *SessionService, ids id.Generator) *OnboardingService {
	return &OnboardingService{sessions: sessions, ids: ids}
}

// CreateLeague: AUTH -> TECHNICAL_AREA -> CREATE_LEAGUE. The caller becomes
// MANAGER of a fresh league with a random invite code.
func (s *OnboardingService) CreateLeague(ctx context.Context, workspace string, input CreateLeagueInput) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.CreateLeague")
	defer span.End()

	flow := onboarding.NewFlow()
	if err := flow.SubmitName(input.Name); err != nil {
		return SessionView{}, onboardingError(err)
	}
	if err := flow.ChooseCreate(); err != nil {
		return SessionView{}, onboardingError(err)
	}
	if err := flow.SetLeagueName(input.LeagueName); err != nil {
		return SessionView{}, onboardingError(err)
	}
	form := flow.Form()

	leagueID, err := s.ids.NewID("league")
	if err != nil {
		return SessionView{}, fmt.Errorf("generate league id: %w", err)
	}
	code, err := s.ids.NewCode(league.InviteCodeLength)
	if err != nil {
		return SessionView{}, fmt.Errorf("generate invite code: %w", err)
	}
	userID, err := s.ids.NewID("user")
	if err != nil {
		return SessionView{}, fmt.Errorf("generate user id: %w", err)
	}

	created := league.League{
		ID:         leagueID,
		Name:       league.NameOrDefault(form.LeagueName),
		InviteCode: code,
		Members:    []string{},
	}
	manager := user.User{
		ID:          userID,
		Name:        form.Name,
		Role:        user.RoleManager,
		TotalPoints: 0,
	}

	return s.sessions.Login(ctx, workspace, manager, &created)
}

// JoinLeague: AUTH -> TECHNICAL_AREA -> JOIN_LEAGUE. Codes are not looked up;
// any code yields the shared placeholder league.
func (s *OnboardingService) JoinLeague(ctx context.Context, workspace string, input JoinLeagueInput) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OnboardingService.JoinLeague")
	defer span.End()

	flow := onboarding.NewFlow()
	if err := flow.SubmitName(input.Name); err != nil {
		return SessionView{}, onboardingError(err)
	}
	if err := flow.ChooseJoin(); err != nil {
		return SessionView{}, onboardingError(err)
	}
	if err := flow.SetInviteCode(input.InviteCode); err != nil {
		return SessionView{}, onboardingError(err)
	}
	form := flow.Form()
	if form.InviteCode == "" {
		return SessionView{}, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	userID, err := s.ids.NewID("user")
	if err != nil {
		return SessionView{}, fmt.Errorf("generate user id: %w", err)
	}

	joined := league.League{
		ID:         league.JoinedLeagueID,
		Name:       league.JoinedLeagueName,
		InviteCode: form.InviteCode,
		Members:    []string{},
	}
	player := user.User{
		ID:          userID,
		Name:        form.Name,
		Role:        user.RolePlayer,
		TotalPoints: 0,
	}

	return s.sessions.Login(ctx, workspace, player, &joined)
}

func onboardingError(err error) error {
	if errors.Is(err, onboarding.ErrNameRequired) || errors.Is(err, onboarding.ErrInvalidTransition) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}
