// Package kvstore defines the namespaced key/value contract the persisted
// session state is written through.
package kvstore

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidNamespace = errors.New("invalid namespace")

// Entry is one key and its raw JSON value.
type Entry struct {
	Key   string
	Value []byte
}

// Store persists raw values per namespace. SetMany applies all entries or
// none of them.
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	SetMany(ctx context.Context, namespace string, entries ...Entry) error
	Delete(ctx context.Context, namespace string, keys ...string) error
}

const maxNamespaceLength = 128

// ValidateNamespace rejects empty, oversized or separator-bearing namespaces.
func ValidateNamespace(namespace string) error {
	if strings.TrimSpace(namespace) == "" {
		return errors.Join(ErrInvalidNamespace, errors.New("namespace is empty"))
	}
	if len(namespace) > maxNamespaceLength {
		return errors.Join(ErrInvalidNamespace, errors.New("namespace is too long"))
	}
	if strings.ContainsAny(namespace, ": \t\r\n") {
		return errors.Join(ErrInvalidNamespace, errors.New("namespace contains a reserved character"))
	}
	return nil
}

// Keys lists entry keys in order.
func Keys(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

// Dedupe keeps the last entry per key, preserving first-seen key order.
func Dedupe(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Key]; ok {
			out[i] = e
			continue
		}
		index[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}
