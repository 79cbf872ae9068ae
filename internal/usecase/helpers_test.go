package usecase

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/kv"
	"github.com/riskibarqy/the-gaffer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

var testLoadedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type sequentialIDs struct {
	mu   sync.Mutex
	n    int
	code string
}

func (g *sequentialIDs) NewID(prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n), nil
}

func (g *sequentialIDs) NewCode(length int) (string, error) {
	if length > len(g.code) {
		return "", fmt.Errorf("code too short")
	}
	return g.code[:length], nil
}

type testEnv struct {
	now time.Time

	store       *memory.KVStore
	ids         *sequentialIDs
	sessions    *SessionService
	onboarding  *OnboardingService
	regulations *RegulationsService
	dashboard   *DashboardService
	table       *LeagueTableService
	vault       *VaultService
	solutions   *kv.SolutionRepository
	completions *kv.CompletionRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{now: testLoadedAt}
	clock := func() time.Time { return env.now }
	logger := logging.NewNop()

	env.store = memory.NewKVStore()
	env.ids = &sequentialIDs{code: "ABC123"}
	env.solutions = kv.NewSolutionRepository(env.store, logger)
	env.completions = kv.NewCompletionRepository(env.store, logger)
	fixtures := memory.NewFixtureRepository(fixture.Catalog(testLoadedAt))

	env.sessions = NewSessionService(kv.NewSessionRepository(env.store, logger), logger)
	env.sessions.now = clock
	env.onboarding = NewOnboardingService(env.sessions, env.ids)
	env.regulations = NewRegulationsService(env.sessions)
	env.dashboard = NewDashboardService(env.sessions, fixtures, env.solutions, env.completions, env.ids, logger)
	env.dashboard.now = clock
	env.table = NewLeagueTableService(env.sessions)
	env.vault = NewVaultService(env.sessions, fixtures, env.solutions)
	env.vault.now = clock

	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

// signIn onboards a manager in workspace and passes the rules gate.
func (e *testEnv) signIn(t *testing.T, workspace, name string) SessionView {
	t.Helper()

	if _, err := e.onboarding.CreateLeague(t.Context(), workspace, CreateLeagueInput{Name: name}); err != nil {
		t.Fatalf("create league: %v", err)
	}
	view, err := e.regulations.Accept(t.Context(), workspace, [3]bool{true, true, true})
	if err != nil {
		t.Fatalf("accept rules: %v", err)
	}
	return view
}
