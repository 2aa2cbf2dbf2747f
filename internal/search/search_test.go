// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package search

import (
	"reflect"
	"testing"

	"github.com/yueya1214/shop/internal/catalog"
)

func boolPtr(b bool) *bool { return &b }

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Apple Watch", Price: 2999, Category: "电子产品", Description: "smart watch"},
		{ID: "p2", Name: "电脑", Price: 5999, Category: "电子产品", Description: "笔记本电脑"},
		{ID: "p3", Name: "运动水杯", Price: 79, Category: "运动户外", Description: "大容量水杯"},
	}
}

func TestSearch_SubstringMatch(t *testing.T) {
	t.Parallel()

	items := []catalog.Product{{ID: "p1", Name: "Apple Watch"}}
	results := Products(items, "watch", Options[catalog.Product]{})

	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
	if results[0].Score < 0.8 {
		t.Errorf("Score = %g, want >= 0.8 for substring match", results[0].Score)
	}
	found := false
	for _, m := range results[0].Matches {
		if m == "name" {
			found = true
		}
	}
	if !found {
		t.Errorf("Matches = %v, want to contain \"name\"", results[0].Matches)
	}
}

func TestSearch_ExactMatchScoresOne(t *testing.T) {
	t.Parallel()

	items := []catalog.Product{{ID: "p1", Name: "Apple Watch"}}
	results := Products(items, "APPLE WATCH", Options[catalog.Product]{})

	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
	if results[0].Score != 1 {
		t.Errorf("Score = %g, want 1 for exact case-insensitive match", results[0].Score)
	}
}

func TestSearch_NoMatchFuzzyDisabled(t *testing.T) {
	t.Parallel()

	results := Products(testProducts(), "zzz-no-match", Options[catalog.Product]{
		Fuzzy: boolPtr(false),
	})
	if len(results) != 0 {
		t.Errorf("Search returned %d results, want 0 with fuzzy disabled", len(results))
	}
}

func TestSearch_PinyinInitialMatch(t *testing.T) {
	t.Parallel()

	items := []catalog.Product{{ID: "p2", Name: "电脑"}}
	results := Products(items, "dn", Options[catalog.Product]{Fuzzy: boolPtr(false)})

	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1 via pinyin initials", len(results))
	}
	if results[0].Score != 0.6 {
		t.Errorf("Score = %g, want 0.6 for pinyin-initial match", results[0].Score)
	}
}

func TestSearch_BlankQueryReturnsEverything(t *testing.T) {
	t.Parallel()

	items := testProducts()
	results := Products(items, "   ", Options[catalog.Product]{})

	if len(results) != len(items) {
		t.Fatalf("Search returned %d results, want all %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Score != 1 {
			t.Errorf("results[%d].Score = %g, want 1", i, r.Score)
		}
		if len(r.Matches) != 0 {
			t.Errorf("results[%d].Matches = %v, want empty", i, r.Matches)
		}
		if r.Item.ID != items[i].ID {
			t.Errorf("results[%d] = %s, want original order preserved", i, r.Item.ID)
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	t.Parallel()

	items := testProducts()
	first := Products(items, "水杯", Options[catalog.Product]{})
	second := Products(items, "水杯", Options[catalog.Product]{})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated identical searches differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSearch_SortedDescendingAndLimited(t *testing.T) {
	t.Parallel()

	items := []catalog.Product{
		{ID: "p1", Name: "watch strap", Description: "strap"},
		{ID: "p2", Name: "watch", Description: "watch"},
		{ID: "p3", Name: "watch case", Description: "case"},
	}
	results := Products(items, "watch", Options[catalog.Product]{Limit: 2})

	if len(results) != 2 {
		t.Fatalf("Search returned %d results, want limit 2", len(results))
	}
	if results[0].Item.ID != "p2" {
		t.Errorf("top result = %s, want exact match p2 first", results[0].Item.ID)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted descending: %g < %g", results[0].Score, results[1].Score)
	}
}

func TestSearch_StableTieOrder(t *testing.T) {
	t.Parallel()

	// Both items score 0.8 via substring; stable sort must keep input order.
	items := []catalog.Product{
		{ID: "a", Name: "red watch x"},
		{ID: "b", Name: "blue watch y"},
	}
	results := Products(items, "watch", Options[catalog.Product]{})

	if len(results) != 2 {
		t.Fatalf("Search returned %d results, want 2", len(results))
	}
	if results[0].Item.ID != "a" || results[1].Item.ID != "b" {
		t.Errorf("tie order = [%s %s], want original order [a b]", results[0].Item.ID, results[1].Item.ID)
	}
}

func TestSearch_ZeroThresholdExpressible(t *testing.T) {
	t.Parallel()

	// "abb" against "aaaaaaaaaa" only matches fuzzily, with a similarity
	// of 0.1: below the default threshold, above an explicit zero.
	items := []catalog.Product{{ID: "p1", Name: "aaaaaaaaaa"}}

	if got := Products(items, "abb", Options[catalog.Product]{}); len(got) != 0 {
		t.Fatalf("default threshold admitted a weak match: %+v", got)
	}

	zero := 0.0
	results := Products(items, "abb", Options[catalog.Product]{Threshold: &zero})
	if len(results) != 1 {
		t.Fatalf("threshold 0 returned %d results, want 1", len(results))
	}
	if results[0].Score <= 0 || results[0].Score >= DefaultThreshold {
		t.Errorf("Score = %g, want in (0, %g)", results[0].Score, DefaultThreshold)
	}
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	items := testProducts()
	suggestions := Suggestions(items, "水杯", 5)

	if len(suggestions) == 0 {
		t.Fatal("Suggestions returned nothing for a matching query")
	}
	if suggestions[0] != "运动水杯" {
		t.Errorf("suggestions[0] = %q, want matched product name first", suggestions[0])
	}

	seen := make(map[string]struct{})
	for _, s := range suggestions {
		if _, dup := seen[s]; dup {
			t.Errorf("duplicate suggestion %q", s)
		}
		seen[s] = struct{}{}
	}
}

func TestSuggestions_BlankQuery(t *testing.T) {
	t.Parallel()

	if got := Suggestions(testProducts(), "  ", 5); got != nil {
		t.Errorf("Suggestions on blank query = %v, want nil", got)
	}
}

func TestTransliterate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"电脑", "dn"},
		{"运动水杯", "yds杯"},
		{"abc", "abc"},
		{"电x脑", "dxn"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := transliterate(tt.in); got != tt.want {
			t.Errorf("transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want float64
	}{
		{"watch", "watch", 1},
		{"", "watch", 0},
		{"watch", "", 0},
		{"abc", "abd", 1 - 1.0/3},
		{"kitten", "sitting", 1 - 3.0/7},
	}
	for _, tt := range tests {
		if got := similarity(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("similarity(%q, %q) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshtein_Runes(t *testing.T) {
	t.Parallel()

	// Multi-byte characters must count as single edits.
	if got := levenshtein([]rune("电脑"), []rune("电视")); got != 1 {
		t.Errorf("levenshtein(电脑, 电视) = %d, want 1", got)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
