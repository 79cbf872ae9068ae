package solution

import (
	"fmt"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
)

// Solution is one archived submission. FileContent is a data URL.
type Solution struct {
	ID          string
	FixtureID   string
	UserID      string
	UserName    string
	SubmittedAt time.Time
	FileName    string
	FileContent string
	Points      float64
}

func (s Solution) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("solution id is required")
	}
	if s.FixtureID == "" {
		return fmt.Errorf("solution fixture id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("solution user id is required")
	}
	if s.FileContent == "" {
		return fmt.Errorf("solution file content is required")
	}

	return nil
}

// Submission is the scoring record of one solution.
type Submission struct {
	ID           string
	FixtureID    string
	UserID       string
	SubmittedAt  time.Time
	ContentURL   string
	Rank         int
	PointsEarned float64
	Status       fixture.TaskStatus
}
