// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// collectionKeyPrefix namespaces engine collections inside the shared database.
const collectionKeyPrefix = "collection:"

// Badger implements Store using BadgerDB for durable storage.
// Suitable for production use with persistence across restarts.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a badger-backed store at path.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &Badger{db: db}, nil
}

// NewBadger wraps an already-open badger database.
func NewBadger(db *badger.DB) *Badger {
	return &Badger{db: db}
}

// Read returns the raw collection bytes, or (nil, nil) when absent.
func (s *Badger) Read(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collectionKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get collection: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the collection bytes at key.
func (s *Badger) Write(key string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(collectionKeyPrefix+key), data); err != nil {
			return fmt.Errorf("set collection: %w", err)
		}
		return nil
	})
}

// Update runs a read-modify-write cycle for key inside one transaction.
func (s *Badger) Update(key string, fn func(current []byte) ([]byte, error)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		fullKey := []byte(collectionKeyPrefix + key)

		var current []byte
		item, err := txn.Get(fullKey)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// Absent collection mutates from empty.
		case err != nil:
			return fmt.Errorf("get collection: %w", err)
		default:
			current, err = item.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("copy collection value: %w", err)
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := txn.Set(fullKey, next); err != nil {
			return fmt.Errorf("set collection: %w", err)
		}
		return nil
	})
}

// Close closes the underlying database.
func (s *Badger) Close() error {
	return s.db.Close()
}
