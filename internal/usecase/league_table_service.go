package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/the-gaffer/internal/domain/user"
)

type Standing struct {
	Position int
	User     user.User
}

type LeagueTableService struct {
	sessions *SessionService
}

func NewLeagueTableService(sessions *SessionService) *LeagueTableService {
	return &LeagueTableService{sessions: sessions}
}

// Get ranks the roster by total points, highest first. Ties keep roster order.
func (s *LeagueTableService) Get(ctx context.Context, workspace string) ([]Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueTableService.Get")
	defer span.End()

	view, err := s.sessions.Get(ctx, workspace)
	if err != nil {
		return nil, err
	}
	if !view.LoggedIn() {
		return nil, fmt.Errorf("%w: onboarding required", ErrUnauthorized)
	}

	return Rank(view.Members), nil
}

// Rank sorts members by TotalPoints descending with 1-based positions.
func Rank(members []user.User) []Standing {
	sorted := append([]user.User(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	out := make([]Standing, 0, len(sorted))
	for i, m := range sorted {
		out = append(out, Standing{Position: i + 1, User: m})
	}
	return out
}
