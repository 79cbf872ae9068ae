package solution

import "context"

// Repository stores the workspace-wide solution archive in insertion order.
type Repository interface {
	List(ctx context.Context, workspace string) ([]Solution, error)
	Append(ctx context.Context, workspace string, item Solution) error
}

// CompletionRepository tracks which fixtures each user completed.
type CompletionRepository interface {
	ListFixtureIDs(ctx context.Context, workspace, userID string) ([]string, error)
	Add(ctx context.Context, workspace, userID, fixtureID string) error
}
