// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package store provides the durable record store backing the
// personalization engine: named JSON collections with get/set semantics
// and transactional read-modify-write.
//
// The engine never propagates deserialization failures. Corrupt or
// missing collections are treated as empty, logged, and overwritten by
// the next write. See Load and Mutate.
package store

import (
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store is a synchronous key-value store holding JSON-serialized
// collections keyed by name.
//
// Read returns (nil, nil) when the key is absent. Update runs fn inside
// a single transaction: concurrent writers to the same key serialize
// instead of clobbering each other's read-modify-write cycles.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Update(key string, fn func(current []byte) ([]byte, error)) error
	Close() error
}

// Load reads and decodes the collection at key into T.
//
// Absent keys, read errors, and corrupt JSON all yield the zero value of
// T; failures are logged and never returned. The rest of the engine
// relies on this to stay crash-free against a damaged store.
func Load[T any](s Store, key string, logger zerolog.Logger) T {
	var out T

	data, err := s.Read(key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("store read failed, treating collection as empty")
		return out
	}
	if len(data) == 0 {
		return out
	}

	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("corrupt collection, treating as empty")
		var zero T
		return zero
	}
	return out
}

// Save encodes v and writes it as the collection at key.
func Save[T any](s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Write(key, data)
}

// Mutate applies fn to the decoded collection at key and writes the
// result back, all within one store transaction. Corrupt or absent
// state is passed to fn as the zero value of T.
func Mutate[T any](s Store, key string, logger zerolog.Logger, fn func(T) T) error {
	return s.Update(key, func(current []byte) ([]byte, error) {
		var val T
		if len(current) > 0 {
			if err := json.Unmarshal(current, &val); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("corrupt collection, resetting before mutation")
				var zero T
				val = zero
			}
		}
		return json.Marshal(fn(val))
	})
}
