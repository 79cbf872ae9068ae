package usecase

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	"github.com/riskibarqy/the-gaffer/internal/domain/scoring"
	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/platform/dataurl"
	"github.com/riskibarqy/the-gaffer/internal/platform/id"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const (
	unassignedLeagueName = "Unassigned"
	noInviteCode         = "-"

	// submissionRank and submissionIsLate are what every submission is
	// scored with today.
	submissionRank   = 1
	submissionIsLate = false
)

type FixtureCard struct {
	Fixture   fixture.Fixture
	Status    fixture.TaskStatus
	Completed bool
}

type DashboardStats struct {
	ManagerPoints float64
	LeagueName    string
	InviteCode    string
}

type Dashboard struct {
	Fixtures    []FixtureCard
	Stats       DashboardStats
	Celebrating bool
}

// Upload is a file picked for a fixture.
type Upload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

type SubmissionResult struct {
	Solution   solution.Solution
	Submission solution.Submission
	Session    SessionView
}

type DashboardService struct {
	sessions    *SessionService
	fixtures    fixture.Repository
	solutions   solution.Repository
	completions solution.CompletionRepository
	ids         id.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewDashboardService(
	sessions *SessionService,
	fixtures fixture.Repository,
	solutions solution.Repository,
	completions solution.CompletionRepository,
	ids id.Generator,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{
		sessions:    sessions,
		fixtures:    fixtures,
		solutions:   solutions,
		completions: completions,
		ids:         ids,
		logger:      logger,
		now:         time.Now,
	}
}

// Get lists the fixtures the current user can see and the header stats.
func (s *DashboardService) Get(ctx context.Context, workspace string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	view, err := s.sessions.Get(ctx, workspace)
	if err != nil {
		return Dashboard{}, err
	}
	if !view.LoggedIn() {
		return Dashboard{}, fmt.Errorf("%w: onboarding required", ErrUnauthorized)
	}

	var (
		items     []fixture.Fixture
		completed []string
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		out, err := s.fixtures.List(ctx)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		items = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.completions.ListFixtureIDs(ctx, workspace, view.User.ID)
		if err != nil {
			return fmt.Errorf("list completed fixtures: %w", err)
		}
		completed = out
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	now := s.now()
	cards := make([]FixtureCard, 0, len(items))
	for _, f := range items {
		done := slices.Contains(completed, f.ID)
		if !fixture.IsVisible(f, now, done) {
			continue
		}
		cards = append(cards, FixtureCard{
			Fixture:   f,
			Status:    fixture.StatusFor(f, now, done),
			Completed: done,
		})
	}

	return Dashboard{
		Fixtures:    cards,
		Stats:       dashboardStats(view),
		Celebrating: view.Celebrating,
	}, nil
}

// Submit archives an upload for a fixture, marks it complete and awards the
// points. A failed read persists nothing.
func (s *DashboardService) Submit(ctx context.Context, workspace, fixtureID string, upload Upload) (SubmissionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Submit")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return SubmissionResult{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}
	if upload.Content == nil {
		return SubmissionResult{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	var result SubmissionResult
	err := s.sessions.Transact(ctx, workspace, func(ctx context.Context, tx *SessionTx) error {
		snapshot := tx.Snapshot()
		if !snapshot.LoggedIn() {
			return fmt.Errorf("%w: onboarding required", ErrUnauthorized)
		}
		if !snapshot.User.AcceptedRules {
			return ErrRulesNotAccepted
		}
		manager := *snapshot.User

		f, exists, err := s.fixtures.GetByID(ctx, fixtureID)
		if err != nil {
			return fmt.Errorf("get fixture: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
		}

		completed, err := s.completions.ListFixtureIDs(ctx, workspace, manager.ID)
		if err != nil {
			return fmt.Errorf("list completed fixtures: %w", err)
		}
		if slices.Contains(completed, f.ID) {
			return fmt.Errorf("%w: fixture=%s already submitted", ErrConflict, f.ID)
		}

		now := s.now()
		if f.Passed(now) {
			return fmt.Errorf("%w: fixture=%s deadline has passed", ErrInvalidInput, f.ID)
		}

		fileName := strings.TrimSpace(upload.FileName)
		content, err := dataurl.Encode(dataurl.MimeTypeFor(fileName, upload.ContentType), upload.Content)
		if err != nil {
			return fmt.Errorf("%w: read upload: %v", ErrInvalidInput, err)
		}

		solutionID, err := s.ids.NewID("sol")
		if err != nil {
			return fmt.Errorf("generate solution id: %w", err)
		}

		points := scoring.Score(f, submissionRank, submissionIsLate)
		item := solution.Solution{
			ID:          solutionID,
			FixtureID:   f.ID,
			UserID:      manager.ID,
			UserName:    manager.Name,
			SubmittedAt: now,
			FileName:    fileName,
			FileContent: content,
			Points:      points,
		}

		if err := s.solutions.Append(ctx, workspace, item); err != nil {
			return fmt.Errorf("append solution: %w", err)
		}
		if err := s.completions.Add(ctx, workspace, manager.ID, f.ID); err != nil {
			return fmt.Errorf("mark fixture completed: %w", err)
		}
		if err := tx.AwardPoints(ctx, points); err != nil {
			return fmt.Errorf("award points: %w", err)
		}
		tx.Celebrate(ctx)

		result = SubmissionResult{
			Solution: item,
			Submission: solution.Submission{
				ID:           item.ID,
				FixtureID:    item.FixtureID,
				UserID:       item.UserID,
				SubmittedAt:  item.SubmittedAt,
				ContentURL:   item.FileContent,
				Rank:         submissionRank,
				PointsEarned: points,
				Status:       fixture.StatusCompleted,
			},
		}
		return nil
	})
	if err != nil {
		return SubmissionResult{}, err
	}

	s.logger.InfoContext(ctx, "goal scored",
		"workspace", workspace,
		"fixture_id", result.Solution.FixtureID,
		"user_id", result.Solution.UserID,
		"points", result.Submission.PointsEarned,
	)

	view, err := s.sessions.Get(ctx, workspace)
	if err != nil {
		return SubmissionResult{}, err
	}
	result.Session = view

	return result, nil
}

func dashboardStats(view SessionView) DashboardStats {
	stats := DashboardStats{
		LeagueName: unassignedLeagueName,
		InviteCode: noInviteCode,
	}
	if view.User != nil {
		stats.ManagerPoints = view.User.TotalPoints
	}
	if view.League != nil {
		stats.LeagueName = view.League.Name
		stats.InviteCode = view.League.InviteCode
	}
	return stats
}
