package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/the-gaffer/internal/domain/regulations"
)

// Regulations is the static content of the rules gate.
type Regulations struct {
	Rules       []regulations.Rule
	Pledges     [regulations.PledgeCount]string
	Punishments []string
}

type RegulationsService struct {
	sessions *SessionService
}

func NewRegulationsService(sessions *SessionService) *RegulationsService {
	return &RegulationsService{sessions: sessions}
}

func (s *RegulationsService) Get(ctx context.Context) Regulations {
	_, span := startUsecaseSpan(ctx, "usecase.RegulationsService.Get")
	defer span.End()

	return Regulations{
		Rules:       regulations.Rules(),
		Pledges:     regulations.Pledges(),
		Punishments: regulations.Punishments(),
	}
}

// Accept passes the gate only when every pledge is ticked.
func (s *RegulationsService) Accept(ctx context.Context, workspace string, checklist regulations.Checklist) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegulationsService.Accept")
	defer span.End()

	if !checklist.Complete() {
		return SessionView{}, fmt.Errorf("%w: %w", ErrInvalidInput, regulations.ErrIncompleteChecklist)
	}

	view, err := s.sessions.Get(ctx, workspace)
	if err != nil {
		return SessionView{}, err
	}
	if !view.LoggedIn() {
		return SessionView{}, fmt.Errorf("%w: onboarding required", ErrUnauthorized)
	}

	return s.sessions.AcceptRules(ctx, workspace)
}
