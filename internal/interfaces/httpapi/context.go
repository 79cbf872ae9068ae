package httpapi

import (
	"context"
)

type contextKey string

const workspaceContextKey contextKey = "gaffer_workspace"

func withWorkspace(ctx context.Context, workspace string) context.Context {
	return context.WithValue(ctx, workspaceContextKey, workspace)
}

func workspaceFromContext(ctx context.Context) (string, bool) {
	ws, ok := ctx.Value(workspaceContextKey).(string)
	return ws, ok && ws != ""
}
