// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/smartkisan/internal/logging"
)

// BadgerStore is a persistent Store on BadgerDB with JSON encoded values.
type BadgerStore[V any] struct {
	db     *badger.DB
	prefix []byte
	ttl    time.Duration
	owned  bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir and returns a store
// that owns it. An empty dir opens an in-memory database.
func OpenBadgerStore[V any](dir, prefix string, ttl time.Duration) (*BadgerStore[V], error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %q: %w", dir, err)
	}

	store := NewBadgerStore[V](db, prefix, ttl)
	store.owned = true
	return store, nil
}

// NewBadgerStore wraps an existing BadgerDB. The caller keeps ownership of db.
func NewBadgerStore[V any](db *badger.DB, prefix string, ttl time.Duration) *BadgerStore[V] {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &BadgerStore[V]{
		db:     db,
		prefix: []byte(prefix),
		ttl:    ttl,
	}
}

func (s *BadgerStore[V]) makeKey(key string) []byte {
	k := make([]byte, 0, len(s.prefix)+len(key))
	k = append(k, s.prefix...)
	return append(k, key...)
}

// Get returns the decoded value for key.
func (s *BadgerStore[V]) Get(key string) (V, bool) {
	var value V
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.makeKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("Badger cache read failed")
		}
		var zero V
		return zero, false
	}
	return value, true
}

// Set stores value with the store TTL.
func (s *BadgerStore[V]) Set(key string, value V) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache encode failed")
		return
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(s.makeKey(key), data).WithTTL(s.ttl))
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache write failed")
	}
}

// Delete removes key.
func (s *BadgerStore[V]) Delete(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.makeKey(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		logging.Warn().Err(err).Str("key", key).Msg("Badger cache delete failed")
	}
}

// Len counts live keys under the store prefix.
func (s *BadgerStore[V]) Len() int {
	count := 0
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}

// Close closes the database if the store opened it.
func (s *BadgerStore[V]) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
