package fixture

import (
	"fmt"
	"time"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// VaultWindow is how long a fixture's solutions stay in the archive after its deadline.
	VaultWindow = 21 * 24 * time.Hour
)

type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusLate      TaskStatus = "LATE"
	StatusMissed    TaskStatus = "MISSED"
)

// Fixture is one assignment with a deadline. Fixtures are immutable.
type Fixture struct {
	ID          string
	Title       string
	Description string
	Deadline    time.Time
	Difficulty  int
	Matchweek   int
	LeagueID    string
	IsCommon    bool
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.Title == "" {
		return fmt.Errorf("fixture title is required")
	}
	if f.Deadline.IsZero() {
		return fmt.Errorf("fixture deadline is required")
	}
	if f.Difficulty < MinDifficulty || f.Difficulty > MaxDifficulty {
		return fmt.Errorf("fixture difficulty must be between %d and %d, got %d", MinDifficulty, MaxDifficulty, f.Difficulty)
	}

	return nil
}

// Passed reports whether now is strictly after the deadline.
func (f Fixture) Passed(now time.Time) bool {
	return now.After(f.Deadline)
}

// IsVisible hides a fixture once its deadline passed, unless it was completed.
func IsVisible(f Fixture, now time.Time, completed bool) bool {
	return completed || !f.Passed(now)
}

// StatusFor derives the task status a user sees for a fixture.
func StatusFor(f Fixture, now time.Time, completed bool) TaskStatus {
	switch {
	case completed:
		return StatusCompleted
	case f.Passed(now):
		return StatusMissed
	default:
		return StatusPending
	}
}

// IsInVaultWindow is the single archive predicate: strictly after the
// deadline and strictly before deadline+VaultWindow.
func IsInVaultWindow(deadline, now time.Time) bool {
	return now.After(deadline) && now.Before(deadline.Add(VaultWindow))
}
