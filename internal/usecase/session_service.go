package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/session"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
	"github.com/riskibarqy/the-gaffer/internal/platform/cache"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

// CelebrationWindow is how long a submission keeps the "GOAL" state up.
const CelebrationWindow = 3 * time.Second

// SessionView is the session as clients see it.
type SessionView struct {
	session.Snapshot
	Celebrating bool
}

// RulesAccepted is true once the signed-in user passed the rules gate.
func (v SessionView) RulesAccepted() bool {
	return v.User != nil && v.User.AcceptedRules
}

// SessionService owns the current user, league and roster of every workspace.
// Every operation reads the stored snapshot afresh, so instances sharing a
// store see each other's writes; operations on one workspace are serialized
// within the process.
type SessionService struct {
	repo         session.Repository
	logger       *logging.Logger
	now          func() time.Time
	celebrations *cache.Store[time.Time]

	mu    sync.Mutex
	locks map[string]*workspaceLock
}

// workspaceLock lives only while some request holds or waits for it.
type workspaceLock struct {
	mu   sync.Mutex
	refs int
}

type workspaceState struct {
	workspace string
	lock      *workspaceLock
	snapshot  session.Snapshot
}

func NewSessionService(repo session.Repository, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		repo:         repo,
		logger:       logger,
		now:          time.Now,
		celebrations: cache.NewStore[time.Time](CelebrationWindow),
		locks:        make(map[string]*workspaceLock),
	}
}

// SessionTx is a handle on one locked workspace, valid only inside Transact.
type SessionTx struct {
	svc   *SessionService
	state *workspaceState
}

func (tx *SessionTx) Snapshot() session.Snapshot {
	return tx.state.snapshot.Clone()
}

func (tx *SessionTx) AwardPoints(ctx context.Context, delta float64) error {
	return tx.svc.awardPointsLocked(ctx, tx.state, delta)
}

// Celebrate raises the "GOAL" state for CelebrationWindow.
func (tx *SessionTx) Celebrate(ctx context.Context) {
	tx.svc.celebrations.PurgeExpired(ctx)
	tx.svc.celebrations.Set(ctx, tx.state.workspace, tx.svc.now().Add(CelebrationWindow))
}

// Transact runs fn with the workspace locked so multi-step writes do not
// interleave with other requests on the same workspace.
func (s *SessionService) Transact(ctx context.Context, workspace string, fn func(ctx context.Context, tx *SessionTx) error) error {
	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return err
	}
	defer s.unlockWorkspace(state)

	return fn(ctx, &SessionTx{svc: s, state: state})
}

func (s *SessionService) Get(ctx context.Context, workspace string) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Get")
	defer span.End()

	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return SessionView{}, err
	}
	defer s.unlockWorkspace(state)

	return s.viewLocked(ctx, state), nil
}

// Login sets the current user. With a league it also sets the current league
// and adds the user to the roster unless an entry with the same id exists.
func (s *SessionService) Login(ctx context.Context, workspace string, u user.User, l *league.League) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Login")
	defer span.End()

	if err := u.Validate(); err != nil {
		return SessionView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if l != nil {
		if err := l.Validate(); err != nil {
			return SessionView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return SessionView{}, err
	}
	defer s.unlockWorkspace(state)

	next := state.snapshot.Clone()
	next.User = &u
	if l != nil {
		lc := *l
		next.League = &lc
		if next.Members == nil {
			next.Members = []user.User{}
		}
		if user.IndexOf(next.Members, u.ID) < 0 {
			next.Members = append(next.Members, u)
		}
	}

	if err := s.commitLocked(ctx, state, next); err != nil {
		return SessionView{}, err
	}
	s.logger.InfoContext(ctx, "manager signed in", "workspace", workspace, "user_id", u.ID, "role", u.Role)

	return s.viewLocked(ctx, state), nil
}

// AcceptRules marks the current user as having accepted the regulations.
// Without a current user it does nothing.
func (s *SessionService) AcceptRules(ctx context.Context, workspace string) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.AcceptRules")
	defer span.End()

	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return SessionView{}, err
	}
	defer s.unlockWorkspace(state)

	if state.snapshot.User == nil {
		return s.viewLocked(ctx, state), nil
	}

	next := state.snapshot.Clone()
	next.User.AcceptedRules = true
	mirrorIntoRoster(&next)

	if err := s.commitLocked(ctx, state, next); err != nil {
		return SessionView{}, err
	}
	return s.viewLocked(ctx, state), nil
}

// AwardPoints adds delta to the current user and the matching roster entry.
// Without a current user it does nothing.
func (s *SessionService) AwardPoints(ctx context.Context, workspace string, delta float64) (SessionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.AwardPoints")
	defer span.End()

	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return SessionView{}, err
	}
	defer s.unlockWorkspace(state)

	if err := s.awardPointsLocked(ctx, state, delta); err != nil {
		return SessionView{}, err
	}
	return s.viewLocked(ctx, state), nil
}

// Logout clears the user, league and roster and erases their stored keys.
func (s *SessionService) Logout(ctx context.Context, workspace string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Logout")
	defer span.End()

	state, err := s.lockWorkspace(ctx, workspace)
	if err != nil {
		return err
	}
	defer s.unlockWorkspace(state)

	if err := s.repo.Clear(ctx, workspace); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.celebrations.Delete(ctx, workspace)

	return nil
}

func (s *SessionService) awardPointsLocked(ctx context.Context, state *workspaceState, delta float64) error {
	if state.snapshot.User == nil {
		return nil
	}

	next := state.snapshot.Clone()
	next.User.TotalPoints += delta
	mirrorIntoRoster(&next)

	return s.commitLocked(ctx, state, next)
}

// commitLocked persists next in one batch and only then swaps it in.
func (s *SessionService) commitLocked(ctx context.Context, state *workspaceState, next session.Snapshot) error {
	if err := s.repo.Save(ctx, state.workspace, next); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	state.snapshot = next
	return nil
}

func (s *SessionService) viewLocked(ctx context.Context, state *workspaceState) SessionView {
	until, _ := s.celebrations.Get(ctx, state.workspace)
	return SessionView{
		Snapshot:    state.snapshot.Clone(),
		Celebrating: s.now().Before(until),
	}
}

// lockWorkspace locks the workspace and loads its stored snapshot.
// Callers release it with unlockWorkspace.
func (s *SessionService) lockWorkspace(ctx context.Context, workspace string) (*workspaceState, error) {
	if strings.TrimSpace(workspace) == "" {
		return nil, fmt.Errorf("%w: workspace is required", ErrInvalidInput)
	}

	s.mu.Lock()
	lock, ok := s.locks[workspace]
	if !ok {
		lock = &workspaceLock{}
		s.locks[workspace] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	state := &workspaceState{workspace: workspace, lock: lock}

	snapshot, err := s.repo.Load(ctx, workspace)
	if err != nil {
		s.unlockWorkspace(state)
		return nil, fmt.Errorf("load session: %w", err)
	}
	state.snapshot = snapshot

	return state, nil
}

func (s *SessionService) unlockWorkspace(state *workspaceState) {
	state.lock.mu.Unlock()

	s.mu.Lock()
	state.lock.refs--
	if state.lock.refs == 0 {
		delete(s.locks, state.workspace)
	}
	s.mu.Unlock()
}

// mirrorIntoRoster copies the current user over the roster entry with its id.
func mirrorIntoRoster(s *session.Snapshot) {
	if s.User == nil {
		return
	}
	if i := user.IndexOf(s.Members, s.User.ID); i >= 0 {
		s.Members[i] = *s.User
	}
}
