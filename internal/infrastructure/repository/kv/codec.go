package kv

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

// readJSON decodes key into out. Corrupt values are logged and reported absent.
func readJSON[T any](ctx context.Context, store kvstore.Store, logger *logging.Logger, workspace, key string, out *T) (bool, error) {
	raw, ok, err := store.Get(ctx, workspace, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}

	var decoded T
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		logger.WarnContext(ctx, "discard corrupt stored value", "workspace", workspace, "key", key, "error", err)
		return false, nil
	}

	*out = decoded
	return true, nil
}

func encodeEntry(key string, value any) (kvstore.Entry, error) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return kvstore.Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return kvstore.Entry{Key: key, Value: raw}, nil
}
