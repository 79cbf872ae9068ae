package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/platform/dataurl"
	"github.com/sourcegraph/conc/pool"
)

type VaultEntry struct {
	Solution solution.Solution
	Fixture  fixture.Fixture
}

type Vault struct {
	Entries  []VaultEntry
	Expiring []fixture.Fixture
}

// VaultFile is an archived upload decoded from its data URL.
type VaultFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// VaultService is the read side of the solution archive.
type VaultService struct {
	sessions  *SessionService
	fixtures  fixture.Repository
	solutions solution.Repository
	now       func() time.Time
}

func NewVaultService(sessions *SessionService, fixtures fixture.Repository, solutions solution.Repository) *VaultService {
	return &VaultService{
		sessions:  sessions,
		fixtures:  fixtures,
		solutions: solutions,
		now:       time.Now,
	}
}

// Search lists archived solutions whose fixture is inside the vault window,
// filtered by a case-insensitive match on fixture title or submitter name.
func (s *VaultService) Search(ctx context.Context, workspace, query string) (Vault, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VaultService.Search")
	defer span.End()

	all, items, err := s.load(ctx, workspace)
	if err != nil {
		return Vault{}, err
	}
	fixtures := indexFixtures(all)

	now := s.now()
	needle := strings.ToLower(strings.TrimSpace(query))

	entries := make([]VaultEntry, 0, len(items))
	for _, item := range items {
		f, ok := fixtures[item.FixtureID]
		if !ok || !fixture.IsInVaultWindow(f.Deadline, now) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(f.Title), needle) &&
			!strings.Contains(strings.ToLower(item.UserName), needle) {
			continue
		}
		entries = append(entries, VaultEntry{Solution: item, Fixture: f})
	}

	expiring := make([]fixture.Fixture, 0)
	for _, f := range all {
		if fixture.IsInVaultWindow(f.Deadline, now) {
			expiring = append(expiring, f)
		}
	}

	return Vault{Entries: entries, Expiring: expiring}, nil
}

// File returns the archived upload while its fixture is still in the window.
func (s *VaultService) File(ctx context.Context, workspace, solutionID string) (VaultFile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VaultService.File")
	defer span.End()

	solutionID = strings.TrimSpace(solutionID)
	if solutionID == "" {
		return VaultFile{}, fmt.Errorf("%w: solution id is required", ErrInvalidInput)
	}

	all, items, err := s.load(ctx, workspace)
	if err != nil {
		return VaultFile{}, err
	}
	fixtures := indexFixtures(all)

	now := s.now()
	for _, item := range items {
		if item.ID != solutionID {
			continue
		}
		f, ok := fixtures[item.FixtureID]
		if !ok || !fixture.IsInVaultWindow(f.Deadline, now) {
			break
		}

		mimeType, data, err := dataurl.Decode(item.FileContent)
		if err != nil {
			return VaultFile{}, fmt.Errorf("decode solution=%s: %w", item.ID, err)
		}
		return VaultFile{Name: item.FileName, MimeType: mimeType, Data: data}, nil
	}

	return VaultFile{}, fmt.Errorf("%w: solution=%s", ErrNotFound, solutionID)
}

func (s *VaultService) load(ctx context.Context, workspace string) ([]fixture.Fixture, []solution.Solution, error) {
	view, err := s.sessions.Get(ctx, workspace)
	if err != nil {
		return nil, nil, err
	}
	if !view.LoggedIn() {
		return nil, nil, fmt.Errorf("%w: onboarding required", ErrUnauthorized)
	}

	var (
		all   []fixture.Fixture
		items []solution.Solution
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		out, err := s.fixtures.List(ctx)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		all = out
		return nil
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.solutions.List(ctx, workspace)
		if err != nil {
			return fmt.Errorf("list solutions: %w", err)
		}
		items = out
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	return all, items, nil
}

func indexFixtures(items []fixture.Fixture) map[string]fixture.Fixture {
	out := make(map[string]fixture.Fixture, len(items))
	for _, f := range items {
		out[f.ID] = f
	}
	return out
}
