// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yueya1214/shop/internal/store"
)

// Store keys for session state.
const (
	sessionIDKey        = "session_id"
	sessionTimestampKey = "session_timestamp"
)

// DefaultSessionTimeout is the inactivity window after which a new
// session id is minted.
const DefaultSessionTimeout = 30 * time.Minute

// sessionState is the persisted session bookkeeping.
type sessionState struct {
	ID string `json:"id"`
}

type sessionClock struct {
	// LastActive is the wall time of the most recent event in the session.
	LastActive time.Time `json:"lastActive"`
}

// sessionID returns the current session id, minting a fresh one when
// none exists or the existing session has been idle past the timeout.
// Either way the idle clock is refreshed.
//
// The clock is read before the id mutation: store transactions are not
// reentrant, so nothing inside a Mutate callback may touch the store.
func (l *Log) sessionID() string {
	now := l.now()
	clock := store.Load[sessionClock](l.store, sessionTimestampKey, l.logger)

	var id string
	err := store.Mutate(l.store, sessionIDKey, l.logger, func(state sessionState) sessionState {
		if state.ID == "" || clock.LastActive.IsZero() || now.Sub(clock.LastActive) >= l.sessionTimeout {
			state.ID = newSessionID(now)
			l.logger.Debug().Str("session_id", state.ID).Msg("started new session")
		}
		id = state.ID
		return state
	})
	if err != nil {
		l.logger.Warn().Err(err).Msg("session id persistence failed, using transient id")
		return newSessionID(now)
	}

	if err := store.Save(l.store, sessionTimestampKey, sessionClock{LastActive: now}); err != nil {
		l.logger.Warn().Err(err).Msg("session clock persistence failed")
	}
	return id
}

// currentSessionID reads the persisted session id without refreshing or
// minting. Empty when no session has been started.
func (l *Log) currentSessionID() string {
	return store.Load[sessionState](l.store, sessionIDKey, l.logger).ID
}

// newSessionID mints a session identifier carrying its creation time.
func newSessionID(now time.Time) string {
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
}
