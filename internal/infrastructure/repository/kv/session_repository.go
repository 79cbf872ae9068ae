package kv

import (
	"context"
	"fmt"

	"github.com/riskibarqy/the-gaffer/internal/domain/session"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
	"github.com/riskibarqy/the-gaffer/internal/platform/kvstore"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
)

type SessionRepository struct {
	store  kvstore.Store
	logger *logging.Logger
}

func NewSessionRepository(store kvstore.Store, logger *logging.Logger) *SessionRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionRepository{store: store, logger: logger}
}

func (r *SessionRepository) Load(ctx context.Context, workspace string) (session.Snapshot, error) {
	var out session.Snapshot

	var u userRecord
	ok, err := readJSON(ctx, r.store, r.logger, workspace, keyUser, &u)
	if err != nil {
		return session.Snapshot{}, err
	}
	if ok {
		item := u.toDomain()
		out.User = &item
	}

	var l leagueRecord
	ok, err = readJSON(ctx, r.store, r.logger, workspace, keyLeague, &l)
	if err != nil {
		return session.Snapshot{}, err
	}
	if ok {
		item := l.toDomain()
		out.League = &item
	}

	var members []userRecord
	ok, err = readJSON(ctx, r.store, r.logger, workspace, keyMembers, &members)
	if err != nil {
		return session.Snapshot{}, err
	}
	if ok {
		out.Members = make([]user.User, 0, len(members))
		for _, m := range members {
			out.Members = append(out.Members, m.toDomain())
		}
	}

	return out, nil
}

// Save writes every set part of the snapshot in one batch.
func (r *SessionRepository) Save(ctx context.Context, workspace string, snapshot session.Snapshot) error {
	entries := make([]kvstore.Entry, 0, 3)

	if snapshot.User != nil {
		entry, err := encodeEntry(keyUser, userToRecord(*snapshot.User))
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	if snapshot.League != nil {
		entry, err := encodeEntry(keyLeague, leagueToRecord(*snapshot.League))
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	if snapshot.Members != nil || snapshot.League != nil {
		members := make([]userRecord, 0, len(snapshot.Members))
		for _, m := range snapshot.Members {
			members = append(members, userToRecord(m))
		}
		entry, err := encodeEntry(keyMembers, members)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil
	}

	if err := r.store.SetMany(ctx, workspace, entries...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, workspace string) error {
	if err := r.store.Delete(ctx, workspace, keyUser, keyLeague, keyMembers); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
