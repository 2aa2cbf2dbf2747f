// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package recommend computes personalized and popularity-based product
// recommendations from the interaction log.
//
// Personalized scores blend content similarity with interaction volume
// and recency:
//
//	score(candidate) = sum over viewed v:    sim(candidate, v) * views(v)     * decay(days(v)) * viewWeight
//	                 + sum over purchased p: sim(candidate, p) * purchases(p) * decay(days(p)) * purchaseWeight
//
// where decay(d) = 1/ln(max(d,1)+1): recent interactions dominate,
// older ones shrink logarithmically but never to zero.
package recommend

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yueya1214/shop/internal/activity"
	"github.com/yueya1214/shop/internal/catalog"
)

// Default scoring weights. Purchases weigh three times views.
const (
	DefaultViewWeight     = 0.5
	DefaultPurchaseWeight = 1.5

	// Popularity aggregation weights per view and per purchase.
	DefaultPopularViewWeight     = 1
	DefaultPopularPurchaseWeight = 5

	// DefaultLimit is the result count when the caller passes <=0.
	DefaultLimit = 5
)

// Config tunes the recommendation engine.
type Config struct {
	ViewWeight            float64 `koanf:"view_weight"`
	PurchaseWeight        float64 `koanf:"purchase_weight"`
	PopularViewWeight     int     `koanf:"popular_view_weight"`
	PopularPurchaseWeight int     `koanf:"popular_purchase_weight"`
}

// DefaultConfig returns the default recommendation configuration.
func DefaultConfig() Config {
	return Config{
		ViewWeight:            DefaultViewWeight,
		PurchaseWeight:        DefaultPurchaseWeight,
		PopularViewWeight:     DefaultPopularViewWeight,
		PopularPurchaseWeight: DefaultPopularPurchaseWeight,
	}
}

// HistorySource supplies interaction history. *activity.Log satisfies it.
type HistorySource interface {
	ViewHistory(userID string) []activity.ViewHistoryEntry
	PurchaseHistory(userID string) []activity.PurchaseHistoryEntry
	AllViewHistory() []activity.ViewHistoryEntry
	AllPurchaseHistory() []activity.PurchaseHistoryEntry
}

// Engine produces ranked product recommendations.
type Engine struct {
	history HistorySource
	logger  zerolog.Logger
	cfg     Config
	now     func() time.Time
	rng     *rand.Rand
}

// NewEngine creates a recommendation engine over the given history.
// Zero weights are honored as configured (a weight of 0 disables that
// signal); only negative weights fall back to the defaults.
func NewEngine(history HistorySource, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.ViewWeight < 0 {
		cfg.ViewWeight = DefaultViewWeight
	}
	if cfg.PurchaseWeight < 0 {
		cfg.PurchaseWeight = DefaultPurchaseWeight
	}
	if cfg.PopularViewWeight < 0 {
		cfg.PopularViewWeight = DefaultPopularViewWeight
	}
	if cfg.PopularPurchaseWeight < 0 {
		cfg.PopularPurchaseWeight = DefaultPopularPurchaseWeight
	}
	return &Engine{
		history: history,
		logger:  logger.With().Str("component", "recommend").Logger(),
		cfg:     cfg,
		now:     time.Now,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetClock overrides the wall clock. Test hook.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// SetRand overrides the random source used for fallback selection.
func (e *Engine) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// Similarity scores two products in [0, 1):
//
//	0.5 when categories match
//	0.3 scaled by price closeness, 1 - |Δprice| / max(price)
//	0.2 scaled by shared name tokens over the token union
//
// Identical ids score 0; a product is never similar to itself.
func Similarity(a, b catalog.Product) float64 {
	if a.ID == b.ID {
		return 0
	}

	var sim float64

	if a.Category == b.Category {
		sim += 0.5
	}

	if maxPrice := math.Max(a.Price, b.Price); maxPrice > 0 {
		sim += 0.3 * (1 - math.Abs(a.Price-b.Price)/maxPrice)
	}

	wordsA := strings.Fields(strings.ToLower(a.Name))
	wordsB := strings.Fields(strings.ToLower(b.Name))
	union := make(map[string]struct{}, len(wordsA)+len(wordsB))
	inB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		inB[w] = struct{}{}
		union[w] = struct{}{}
	}
	common := 0
	for _, w := range wordsA {
		if _, ok := inB[w]; ok {
			common++
		}
		union[w] = struct{}{}
	}
	if len(union) > 0 {
		sim += 0.2 * float64(common) / float64(len(union))
	}

	return sim
}

// timeDecay shrinks interaction weight logarithmically with age in days.
func timeDecay(days float64) float64 {
	return 1 / math.Log(math.Max(days, 1)+1)
}

// Recommended returns up to limit products the user has not interacted
// with, ranked by similarity to their view and purchase history. A user
// with no history gets a uniform random selection instead.
func (e *Engine) Recommended(userID string, all []catalog.Product, limit int) []catalog.Product {
	if userID == "" || len(all) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	views := e.history.ViewHistory(userID)
	purchases := e.history.PurchaseHistory(userID)
	if len(views) == 0 && len(purchases) == 0 {
		e.logger.Debug().Str("user", userID).Msg("no interaction history, falling back to random selection")
		return e.Random(all, limit)
	}

	byID := make(map[string]catalog.Product, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	interacted := make(map[string]struct{}, len(views)+len(purchases))
	for _, v := range views {
		interacted[v.ProductID] = struct{}{}
	}
	for _, p := range purchases {
		interacted[p.ProductID] = struct{}{}
	}

	now := e.now()
	scores := make(map[string]float64)
	var candidates []catalog.Product
	for _, candidate := range all {
		if _, ok := interacted[candidate.ID]; ok {
			continue
		}
		candidates = append(candidates, candidate)

		var score float64
		for _, v := range views {
			viewed, ok := byID[v.ProductID]
			if !ok {
				continue
			}
			days := math.Max(1, now.Sub(v.LastViewed).Hours()/24)
			score += Similarity(candidate, viewed) * float64(v.ViewCount) * timeDecay(days) * e.cfg.ViewWeight
		}
		for _, p := range purchases {
			purchased, ok := byID[p.ProductID]
			if !ok {
				continue
			}
			days := math.Max(1, now.Sub(p.LastPurchased).Hours()/24)
			score += Similarity(candidate, purchased) * float64(p.PurchaseCount) * timeDecay(days) * e.cfg.PurchaseWeight
		}
		scores[candidate.ID] = score
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].ID] > scores[candidates[j].ID]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Popular ranks catalog entries by aggregate interaction volume across
// all users: each view counts once, each purchase five times (by
// default). Only products with recorded interactions appear. If history
// cannot be read the selection degrades to uniform random.
func (e *Engine) Popular(all []catalog.Product, limit int) []catalog.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	views := e.history.AllViewHistory()
	purchases := e.history.AllPurchaseHistory()
	if len(views) == 0 && len(purchases) == 0 {
		e.logger.Debug().Msg("no recorded interactions, falling back to random selection")
		return e.Random(all, limit)
	}

	scores := make(map[string]int)
	for _, v := range views {
		scores[v.ProductID] += v.ViewCount * e.cfg.PopularViewWeight
	}
	for _, p := range purchases {
		scores[p.ProductID] += p.PurchaseCount * e.cfg.PopularPurchaseWeight
	}

	var ranked []catalog.Product
	for _, p := range all {
		if _, ok := scores[p.ID]; ok {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Random returns up to limit distinct products chosen uniformly.
func (e *Engine) Random(all []catalog.Product, limit int) []catalog.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	shuffled := make([]catalog.Product, len(all))
	copy(shuffled, all)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled
}
