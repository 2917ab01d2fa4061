// Package kv is the per-device key-value storage shared by progress records,
// preferences and other small persisted documents.
package kv

import (
	"context"
	"strings"
)

// Store is a flat string key-value store. Keys returns keys that start with
// prefix, sorted ascending.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Namespaced prefixes every key with a fixed namespace so that several
// applications can share one backing store.
type Namespaced struct {
	store  Store
	prefix string
}

func NewNamespaced(store Store, prefix string) *Namespaced {
	return &Namespaced{store: store, prefix: prefix}
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

func (n *Namespaced) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := n.store.Keys(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, strings.TrimPrefix(key, n.prefix))
	}
	return out, nil
}
