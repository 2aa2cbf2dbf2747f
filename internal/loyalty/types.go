// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package loyalty implements the gamified engagement system: activity
// points, membership levels, and consecutive-day login streaks.
//
// Points only ever go up. Activities are append-only records; the
// cumulative per-user total is maintained alongside them and is
// monotonically non-decreasing.
package loyalty

import (
	"math"
	"time"
)

// ActivityType classifies a point-earning activity.
type ActivityType string

// The closed set of point-earning activities.
const (
	ActivityLogin            ActivityType = "login"
	ActivityPurchase         ActivityType = "purchase"
	ActivityReview           ActivityType = "review"
	ActivityShare            ActivityType = "share"
	ActivityCompleteProfile  ActivityType = "profile"
	ActivityDailyCheck       ActivityType = "daily_check"
	ActivityConsecutiveLogin ActivityType = "consecutive_login"
)

// ActivityTypes lists every activity type. The points table is checked
// against this set for completeness.
var ActivityTypes = []ActivityType{
	ActivityLogin, ActivityPurchase, ActivityReview, ActivityShare,
	ActivityCompleteProfile, ActivityDailyCheck, ActivityConsecutiveLogin,
}

// activityPoints is the base award per activity type. Purchase is a
// base value only; the actual award scales with the order amount.
// ConsecutiveLogin is the per-day streak bonus increment.
var activityPoints = map[ActivityType]int{
	ActivityLogin:            10,
	ActivityPurchase:         100,
	ActivityReview:           50,
	ActivityShare:            30,
	ActivityCompleteProfile:  200,
	ActivityDailyCheck:       20,
	ActivityConsecutiveLogin: 5,
}

// Record is one append-only activity entry.
type Record struct {
	UserID    string       `json:"userId"`
	Type      ActivityType `json:"type"`
	Points    int          `json:"points"`
	Timestamp time.Time    `json:"timestamp"`
	Meta      *Meta        `json:"metadata,omitempty"`
}

// Meta carries the typed extras an activity may need. Only the fields
// relevant to the activity type are set.
type Meta struct {
	// Amount is the order total for purchase activities.
	Amount float64 `json:"amount,omitempty"`

	// Days is the streak length for consecutive-login bonuses.
	Days int `json:"days,omitempty"`

	// ProductID ties review/share activities to a product.
	ProductID string `json:"productId,omitempty"`

	// OrderID ties purchase activities to an order.
	OrderID string `json:"orderId,omitempty"`
}

// Level is one membership tier. Tiers are contiguous and exhaustive
// over [0, ∞): every non-negative point total maps to exactly one tier.
type Level struct {
	Level     int      `json:"level"`
	Name      string   `json:"name"`
	MinPoints int      `json:"minPoints"`
	MaxPoints int      `json:"maxPoints"`
	Benefits  []string `json:"benefits"`
}

// Levels is the static membership tier table.
var Levels = []Level{
	{
		Level:     1,
		Name:      "铜牌会员",
		MinPoints: 0,
		MaxPoints: 999,
		Benefits:  []string{"基础购物功能"},
	},
	{
		Level:     2,
		Name:      "银牌会员",
		MinPoints: 1000,
		MaxPoints: 4999,
		Benefits:  []string{"商品9.8折", "生日礼包"},
	},
	{
		Level:     3,
		Name:      "金牌会员",
		MinPoints: 5000,
		MaxPoints: 19999,
		Benefits:  []string{"商品9.5折", "生日礼包", "专属客服"},
	},
	{
		Level:     4,
		Name:      "钻石会员",
		MinPoints: 20000,
		MaxPoints: math.MaxInt,
		Benefits:  []string{"商品9折", "生日礼包", "专属客服", "免运费"},
	},
}
