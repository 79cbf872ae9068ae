package kv

import (
	"context"
	"fmt"
	"slices"

	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

// SolutionRepository keeps the workspace archive as one JSON array. Appends are
// read-modify-write, so callers serialize writes per workspace.
type SolutionRepository struct {
	store  kvstore.Store
	logger *logging.Logger
}

func NewSolutionRepository(store kvstore.Store, logger *logging.Logger) *SolutionRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &SolutionRepository{store: store, logger: logger}
}

func (r *SolutionRepository) List(ctx context.Context, workspace string) ([]solution.Solution, error) {
	records, err := r.records(ctx, workspace)
	if err != nil {
		return nil, err
	}

	out := make([]solution.Solution, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *SolutionRepository) Append(ctx context.Context, workspace string, item solution.Solution) error {
	if err := item.Validate(); err != nil {
		return err
	}

	records, err := r.records(ctx, workspace)
	if err != nil {
		return err
	}
	records = append(records, solutionToRecord(item))

	entry, err := encodeEntry(keySolutions, records)
	if err != nil {
		return err
	}
	if err := r.store.SetMany(ctx, workspace, entry); err != nil {
		return fmt.Errorf("append solution id=%s: %w", item.ID, err)
	}
	return nil
}

func (r *SolutionRepository) records(ctx context.Context, workspace string) ([]solutionRecord, error) {
	var records []solutionRecord
	if _, err := readJSON(ctx, r.store, r.logger, workspace, keySolutions, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CompletionRepository stores each user's completed fixture ids under
// completed_<userId>.
type CompletionRepository struct {
	store  kvstore.Store
	logger *logging.Logger
}

func NewCompletionRepository(store kvstore.Store, logger *logging.Logger) *CompletionRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompletionRepository{store: store, logger: logger}
}

func (r *CompletionRepository) ListFixtureIDs(ctx context.Context, workspace, userID string) ([]string, error) {
	var ids []string
	if _, err := readJSON(ctx, r.store, r.logger, workspace, completedKey(userID), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *CompletionRepository) Add(ctx context.Context, workspace, userID, fixtureID string) error {
	if userID == "" || fixtureID == "" {
		return fmt.Errorf("user id and fixture id are required")
	}

	ids, err := r.ListFixtureIDs(ctx, workspace, userID)
	if err != nil {
		return err
	}
	if slices.Contains(ids, fixtureID) {
		return nil
	}

	entry, err := encodeEntry(completedKey(userID), append(ids, fixtureID))
	if err != nil {
		return err
	}
	if err := r.store.SetMany(ctx, workspace, entry); err != nil {
		return fmt.Errorf("add completion fixture=%s: %w", fixtureID, err)
	}
	return nil
}
