// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yueya1214/shop/internal/activity"
	"github.com/yueya1214/shop/internal/catalog"
	"github.com/yueya1214/shop/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *activity.Log) {
	t.Helper()
	s := store.NewMemory()
	log := activity.NewLog(s, activity.DefaultConfig(), zerolog.Nop())
	return NewEngine(log, DefaultConfig(), zerolog.Nop()), log
}

func testCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "phone pro", Price: 999, Category: "electronics"},
		{ID: "p2", Name: "phone case", Price: 19, Category: "accessories"},
		{ID: "p3", Name: "phone mini", Price: 799, Category: "electronics"},
		{ID: "p4", Name: "water bottle", Price: 9, Category: "outdoors"},
		{ID: "p5", Name: "headphones", Price: 199, Category: "electronics"},
	}
}

func TestSimilarity_SameProductIsZero(t *testing.T) {
	t.Parallel()

	p := catalog.Product{ID: "p1", Name: "phone", Price: 100, Category: "electronics"}
	if got := Similarity(p, p); got != 0 {
		t.Errorf("Similarity(p, p) = %g, want 0", got)
	}
}

func TestSimilarity_Components(t *testing.T) {
	t.Parallel()

	a := catalog.Product{ID: "a", Name: "phone pro", Price: 100, Category: "electronics"}
	b := catalog.Product{ID: "b", Name: "phone mini", Price: 100, Category: "electronics"}

	// Same category: 0.5. Equal price: 0.3. Name tokens share 1 of 3: 0.2/3.
	want := 0.5 + 0.3 + 0.2/3
	if got := Similarity(a, b); math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity = %g, want %g", got, want)
	}

	c := catalog.Product{ID: "c", Name: "tent", Price: 50, Category: "outdoors"}
	// Different category, half price, no shared tokens: 0.3 * 0.5.
	if got := Similarity(a, c); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("Similarity across categories = %g, want 0.15", got)
	}
}

func TestSimilarity_BelowOne(t *testing.T) {
	t.Parallel()

	a := catalog.Product{ID: "a", Name: "phone", Price: 100, Category: "electronics"}
	b := catalog.Product{ID: "b", Name: "phone", Price: 100, Category: "electronics"}
	if got := Similarity(a, b); got >= 1 {
		t.Errorf("Similarity = %g, want < 1 even for near-identical products", got)
	}
}

func TestTimeDecay(t *testing.T) {
	t.Parallel()

	// decay(1) = 1/ln(2); decays monotonically and never reaches zero.
	if got := timeDecay(1); math.Abs(got-1/math.Log(2)) > 1e-9 {
		t.Errorf("timeDecay(1) = %g, want %g", got, 1/math.Log(2))
	}
	if got := timeDecay(0.5); got != timeDecay(1) {
		t.Errorf("timeDecay clamps days below 1: got %g, want %g", got, timeDecay(1))
	}
	if !(timeDecay(1) > timeDecay(10) && timeDecay(10) > timeDecay(1000)) {
		t.Error("timeDecay must decrease with age")
	}
	if timeDecay(1e6) <= 0 {
		t.Error("timeDecay must stay positive")
	}
}

func TestRecommended_ExcludesInteracted(t *testing.T) {
	t.Parallel()

	engine, log := newTestEngine(t)
	all := testCatalog()

	log.RecordView("u1", "p1")
	log.RecordPurchase("u1", "p2", 1)

	recs := engine.Recommended("u1", all, len(all))
	for _, p := range recs {
		if p.ID == "p1" || p.ID == "p2" {
			t.Errorf("recommendation includes interacted product %s", p.ID)
		}
	}
	if len(recs) != 3 {
		t.Errorf("Recommended returned %d products, want the 3 non-interacted ones", len(recs))
	}
}

func TestRecommended_SimilarProductsRankFirst(t *testing.T) {
	t.Parallel()

	engine, log := newTestEngine(t)
	all := testCatalog()

	// Heavy interest in electronics phones.
	log.RecordView("u1", "p1")
	log.RecordView("u1", "p1")
	log.RecordPurchase("u1", "p1", 1)

	recs := engine.Recommended("u1", all, 2)
	if len(recs) != 2 {
		t.Fatalf("Recommended returned %d, want 2", len(recs))
	}
	// p3 (same category, similar price, shared name token) must beat
	// p4 (different category, no shared tokens).
	if recs[0].ID != "p3" {
		t.Errorf("top recommendation = %s, want p3", recs[0].ID)
	}
}

func TestRecommended_NoHistoryFallsBackToRandom(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	all := testCatalog()

	recs := engine.Recommended("fresh-user", all, 3)
	if len(recs) != 3 {
		t.Fatalf("fallback returned %d products, want 3", len(recs))
	}

	seen := make(map[string]struct{})
	for _, p := range recs {
		if _, dup := seen[p.ID]; dup {
			t.Errorf("fallback returned duplicate product %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
}

func TestRecommended_EmptyInputs(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	if got := engine.Recommended("", testCatalog(), 3); got != nil {
		t.Errorf("Recommended with empty user = %v, want nil", got)
	}
	if got := engine.Recommended("u1", nil, 3); got != nil {
		t.Errorf("Recommended with empty catalog = %v, want nil", got)
	}
}

func TestPopular_Ordering(t *testing.T) {
	t.Parallel()

	engine, log := newTestEngine(t)
	all := testCatalog()

	// A (p1): 5 views + 1 purchase = 5*1 + 1*5 = 10. B (p2): 1 view = 1.
	for i := 0; i < 5; i++ {
		log.RecordView("u1", "p1")
	}
	log.RecordPurchase("u2", "p1", 1)
	log.RecordView("u3", "p2")

	popular := engine.Popular(all, 5)
	if len(popular) != 2 {
		t.Fatalf("Popular returned %d products, want the 2 with interactions", len(popular))
	}
	if popular[0].ID != "p1" || popular[1].ID != "p2" {
		t.Errorf("Popular order = [%s %s], want [p1 p2]", popular[0].ID, popular[1].ID)
	}
}

func TestPopular_OnlyInteractedProducts(t *testing.T) {
	t.Parallel()

	engine, log := newTestEngine(t)
	log.RecordView("u1", "p3")

	popular := engine.Popular(testCatalog(), 5)
	if len(popular) != 1 || popular[0].ID != "p3" {
		t.Errorf("Popular = %+v, want only the interacted p3", popular)
	}
}

func TestRecommended_TimeDecayFavorsRecent(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	log := activity.NewLog(s, activity.DefaultConfig(), zerolog.Nop())
	engine := NewEngine(log, DefaultConfig(), zerolog.Nop())

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	now := base.Add(-100 * 24 * time.Hour)
	log.SetClock(func() time.Time { return now })
	engine.SetClock(func() time.Time { return base })

	all := []catalog.Product{
		{ID: "old", Name: "old thing", Price: 10, Category: "old-cat"},
		{ID: "new", Name: "new thing", Price: 10, Category: "new-cat"},
		{ID: "cand-old", Name: "cand", Price: 10, Category: "old-cat"},
		{ID: "cand-new", Name: "cand", Price: 10, Category: "new-cat"},
	}

	// Same view counts; only the recency differs.
	log.RecordView("u1", "old")
	now = base.Add(-24 * time.Hour)
	log.RecordView("u1", "new")

	recs := engine.Recommended("u1", all, 2)
	if len(recs) != 2 {
		t.Fatalf("Recommended returned %d, want 2", len(recs))
	}
	if recs[0].ID != "cand-new" {
		t.Errorf("top recommendation = %s, want cand-new (recent interaction dominates)", recs[0].ID)
	}
}

func TestNewEngine_HonorsZeroWeights(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	log := activity.NewLog(s, activity.DefaultConfig(), zerolog.Nop())

	cfg := DefaultConfig()
	cfg.ViewWeight = 0 // views carry no weight
	engine := NewEngine(log, cfg, zerolog.Nop())
	if engine.cfg.ViewWeight != 0 {
		t.Errorf("ViewWeight = %g, want configured 0", engine.cfg.ViewWeight)
	}

	// Heavy electronics views and a single outdoors purchase: with views
	// weightless, the purchase alone drives the ranking and the product
	// closest to it wins over the electronics candidates.
	for i := 0; i < 5; i++ {
		log.RecordView("u1", "p1")
	}
	log.RecordPurchase("u1", "p4", 1)

	recs := engine.Recommended("u1", testCatalog(), 1)
	if len(recs) != 1 {
		t.Fatalf("Recommended returned %d, want 1", len(recs))
	}
	if recs[0].ID != "p2" {
		t.Errorf("top recommendation = %s, want p2 (closest to the purchase)", recs[0].ID)
	}

	// Negative weights are invalid and fall back to the defaults.
	negative := DefaultConfig()
	negative.PurchaseWeight = -1
	engine = NewEngine(log, negative, zerolog.Nop())
	if engine.cfg.PurchaseWeight != DefaultPurchaseWeight {
		t.Errorf("PurchaseWeight = %g, want default %g", engine.cfg.PurchaseWeight, DefaultPurchaseWeight)
	}
}

func TestRandom_DistinctAndLimited(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	all := testCatalog()

	recs := engine.Random(all, 3)
	if len(recs) != 3 {
		t.Fatalf("Random returned %d, want 3", len(recs))
	}
	seen := make(map[string]struct{})
	for _, p := range recs {
		if _, dup := seen[p.ID]; dup {
			t.Errorf("Random returned duplicate %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if got := engine.Random(all, 100); len(got) != len(all) {
		t.Errorf("Random with oversized limit returned %d, want %d", len(got), len(all))
	}
}
