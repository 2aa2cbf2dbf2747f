// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package loyalty

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/yueya1214/shop/internal/store"
)

// Store keys for loyalty collections.
const (
	activitiesKey      = "user_activities"
	pointsKey          = "user_points"
	lastLoginKey       = "user_last_login"
	consecutiveDaysKey = "user_consecutive_days"
)

// Default streak bonus parameters.
const (
	DefaultStreakBonusPerDay = 5
	DefaultStreakBonusCap    = 100
	DefaultPointsPerUnit     = 10
)

// Config tunes the loyalty engine.
type Config struct {
	// StreakBonusPerDay is multiplied by the streak length for the
	// consecutive-login bonus. Default 5.
	StreakBonusPerDay int `koanf:"streak_bonus_per_day"`

	// StreakBonusCap caps the consecutive-login bonus. Default 100.
	StreakBonusCap int `koanf:"streak_bonus_cap"`

	// PurchasePointsPerUnit converts order amount to points for
	// purchase activities. Default 10 points per currency unit.
	PurchasePointsPerUnit int `koanf:"purchase_points_per_unit"`
}

// DefaultConfig returns the default loyalty configuration.
func DefaultConfig() Config {
	return Config{
		StreakBonusPerDay:     DefaultStreakBonusPerDay,
		StreakBonusCap:        DefaultStreakBonusCap,
		PurchasePointsPerUnit: DefaultPointsPerUnit,
	}
}

// Engine records activities, accumulates points, and derives levels,
// streaks, and daily check-in state. All state lives in the store.
type Engine struct {
	store  store.Store
	logger zerolog.Logger
	cfg    Config
	now    func() time.Time
}

// NewEngine creates a loyalty engine over the given store.
func NewEngine(s store.Store, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.StreakBonusPerDay <= 0 {
		cfg.StreakBonusPerDay = DefaultStreakBonusPerDay
	}
	if cfg.StreakBonusCap <= 0 {
		cfg.StreakBonusCap = DefaultStreakBonusCap
	}
	if cfg.PurchasePointsPerUnit <= 0 {
		cfg.PurchasePointsPerUnit = DefaultPointsPerUnit
	}
	return &Engine{
		store:  s,
		logger: logger.With().Str("component", "loyalty").Logger(),
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetClock overrides the wall clock. Test hook.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// RecordActivity appends an activity record for the user and credits
// its points to their cumulative total. Returns the points awarded for
// this activity.
//
// Purchase activities with a positive meta.Amount override the base
// award with floor(amount * PurchasePointsPerUnit).
//
// Login activities update the consecutive-day streak first; a streak
// longer than one day additionally records a separate ConsecutiveLogin
// bonus of min(streak * StreakBonusPerDay, StreakBonusCap). The bonus
// is credited through its own record and is not included in the return
// value.
//
// An empty userID is a no-op returning 0.
func (e *Engine) RecordActivity(userID string, activityType ActivityType, meta *Meta) int {
	if userID == "" {
		return 0
	}

	points, ok := activityPoints[activityType]
	if !ok {
		e.logger.Warn().Str("type", string(activityType)).Msg("unknown activity type ignored")
		return 0
	}

	if activityType == ActivityPurchase && meta != nil && meta.Amount > 0 {
		points = int(math.Floor(meta.Amount * float64(e.cfg.PurchasePointsPerUnit)))
	}

	if activityType == ActivityLogin {
		streak := e.updateStreak(userID)
		if streak > 1 {
			bonus := streak * e.cfg.StreakBonusPerDay
			if bonus > e.cfg.StreakBonusCap {
				bonus = e.cfg.StreakBonusCap
			}
			e.appendRecord(userID, ActivityConsecutiveLogin, bonus, &Meta{Days: streak})
			e.addPoints(userID, bonus)
		}
	}

	e.appendRecord(userID, activityType, points, meta)
	e.addPoints(userID, points)

	e.logger.Debug().
		Str("user", userID).
		Str("type", string(activityType)).
		Int("points", points).
		Msg("activity recorded")
	return points
}

// Activities returns the user's activity records, oldest first.
func (e *Engine) Activities(userID string) []Record {
	all := store.Load[[]Record](e.store, activitiesKey, e.logger)
	var out []Record
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// UserPoints returns the user's cumulative point total.
func (e *Engine) UserPoints(userID string) int {
	points := store.Load[map[string]int](e.store, pointsKey, e.logger)
	return points[userID]
}

// UserLevel maps the user's cumulative points to their membership tier.
// The tier table is contiguous, so the lowest-tier fallback should be
// unreachable; it guards against a malformed table.
func (e *Engine) UserLevel(userID string) Level {
	points := e.UserPoints(userID)
	for _, level := range Levels {
		if points >= level.MinPoints && points <= level.MaxPoints {
			return level
		}
	}
	return Levels[0]
}

// Progress describes the climb to the next membership tier. Next is nil
// when the user already holds the top tier, and PointsNeeded is then 0.
type Progress struct {
	Next         *Level `json:"nextLevel"`
	PointsNeeded int    `json:"pointsNeeded"`
}

// PointsToNextLevel reports how far the user is from the next tier.
func (e *Engine) PointsToNextLevel(userID string) Progress {
	points := e.UserPoints(userID)
	current := e.UserLevel(userID)

	for i, level := range Levels {
		if level.Level != current.Level {
			continue
		}
		if i == len(Levels)-1 {
			return Progress{Next: nil, PointsNeeded: 0}
		}
		next := Levels[i+1]
		return Progress{Next: &next, PointsNeeded: next.MinPoints - points}
	}
	return Progress{Next: nil, PointsNeeded: 0}
}

// HasCheckedInToday reports whether a daily check-in record exists with
// a timestamp at or after the start of today.
func (e *Engine) HasCheckedInToday(userID string) bool {
	today := startOfDay(e.now())
	for _, r := range e.Activities(userID) {
		if r.Type == ActivityDailyCheck && !r.Timestamp.Before(today) {
			return true
		}
	}
	return false
}

// PerformDailyCheckIn awards the daily check-in bonus at most once per
// calendar day. Returns (points, true) when the check-in was recorded,
// or (0, false) when the user already checked in today.
func (e *Engine) PerformDailyCheckIn(userID string) (int, bool) {
	if e.HasCheckedInToday(userID) {
		return 0, false
	}
	return e.RecordActivity(userID, ActivityDailyCheck, nil), true
}

// ConsecutiveLoginDays returns the user's current login streak.
func (e *Engine) ConsecutiveLoginDays(userID string) int {
	days := store.Load[map[string]int](e.store, consecutiveDaysKey, e.logger)
	return days[userID]
}

// updateStreak advances the consecutive-login counter for a login
// happening now and returns the resulting streak length:
//
//	last login exactly one calendar day ago  -> streak + 1
//	last login more than one day ago         -> 1
//	last login today                         -> unchanged
//	no previous login                        -> 1
func (e *Engine) updateStreak(userID string) int {
	today := startOfDay(e.now())
	streak := 0

	lastLogins := store.Load[map[string]time.Time](e.store, lastLoginKey, e.logger)

	err := store.Mutate(e.store, consecutiveDaysKey, e.logger, func(days map[string]int) map[string]int {
		if days == nil {
			days = make(map[string]int)
		}
		streak = days[userID]

		if last, ok := lastLogins[userID]; ok {
			gap := int(today.Sub(startOfDay(last)).Hours() / 24)
			switch {
			case gap == 1:
				streak++
			case gap > 1:
				streak = 1
			}
			// Same-day logins leave the streak unchanged.
		} else {
			streak = 1
		}

		days[userID] = streak
		return days
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("user", userID).Msg("streak update failed")
		return 1
	}

	err = store.Mutate(e.store, lastLoginKey, e.logger, func(logins map[string]time.Time) map[string]time.Time {
		if logins == nil {
			logins = make(map[string]time.Time)
		}
		logins[userID] = today
		return logins
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("user", userID).Msg("last-login update failed")
	}

	return streak
}

// appendRecord appends one activity record to the store.
func (e *Engine) appendRecord(userID string, activityType ActivityType, points int, meta *Meta) {
	err := store.Mutate(e.store, activitiesKey, e.logger, func(records []Record) []Record {
		return append(records, Record{
			UserID:    userID,
			Type:      activityType,
			Points:    points,
			Timestamp: e.now(),
			Meta:      meta,
		})
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("user", userID).Msg("activity append failed")
	}
}

// addPoints credits points to the user's cumulative total. Totals are
// only ever incremented.
func (e *Engine) addPoints(userID string, points int) {
	err := store.Mutate(e.store, pointsKey, e.logger, func(totals map[string]int) map[string]int {
		if totals == nil {
			totals = make(map[string]int)
		}
		totals[userID] += points
		return totals
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("user", userID).Msg("points update failed")
	}
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
