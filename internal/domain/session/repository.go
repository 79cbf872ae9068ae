package session

import "context"

// Repository persists a workspace snapshot. Save writes every part in one
// batch; Clear erases all of them.
type Repository interface {
	Load(ctx context.Context, workspace string) (Snapshot, error)
	Save(ctx context.Context, workspace string, snapshot Snapshot) error
	Clear(ctx context.Context, workspace string) error
}
