// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package search implements the relevance engine for free-text queries
// over the product catalog (or any record collection).
//
// Matching is layered per field, strongest first:
//
//	exact (case-insensitive)       score 1.0
//	substring containment          score 0.8
//	pinyin-initial containment     score 0.6
//	fuzzy (normalized Levenshtein) score in [0,1], optional
//
// A field contributes only when its score exceeds the threshold; an item
// with no contributing field is dropped entirely. The item's score is
// the maximum over its contributing fields. Everything here is pure:
// identical inputs produce identical ordered results.
package search

import (
	"sort"
	"strings"

	"github.com/yueya1214/shop/internal/catalog"
)

// Default option values applied by Search when unset.
const (
	DefaultThreshold        = 0.3
	DefaultLimit            = 50
	SuggestThreshold        = 0.2
	defaultSuggestionsLimit = 5
)

// Result pairs a matched item with its relevance score and the names of
// the fields that matched. Scores fall in (0, 1].
type Result[T any] struct {
	Item    T        `json:"item"`
	Score   float64  `json:"score"`
	Matches []string `json:"matches"`
}

// Field names one searchable attribute of T and extracts its text.
// Fields are evaluated in slice order, which fixes the order of the
// Matches list on results.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Options controls a search. Zero values select the defaults noted on
// each field.
type Options[T any] struct {
	// Fields to match against, in order. Required.
	Fields []Field[T]

	// Fuzzy enables the edit-distance fallback. Default true.
	Fuzzy *bool

	// Threshold is the minimum (exclusive) per-field score for the
	// field to contribute. Default 0.3; an explicit 0 admits any
	// positive score.
	Threshold *float64

	// Limit truncates the result list. Default 50; <=0 means default.
	Limit int

	// Sort orders results by descending score when true. Default true.
	// Ties keep their original relative order.
	Sort *bool
}

func (o Options[T]) fuzzy() bool {
	return o.Fuzzy == nil || *o.Fuzzy
}

func (o Options[T]) sorted() bool {
	return o.Sort == nil || *o.Sort
}

func (o Options[T]) threshold() float64 {
	if o.Threshold == nil {
		return DefaultThreshold
	}
	return *o.Threshold
}

func (o Options[T]) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Search scores items against query and returns the matching subset.
//
// A blank (empty or whitespace-only) query short-circuits: every item is
// returned with score 1.0 and no match fields, unsorted and untruncated
// by relevance filtering.
func Search[T any](items []T, query string, opts Options[T]) []Result[T] {
	if strings.TrimSpace(query) == "" {
		results := make([]Result[T], len(items))
		for i, item := range items {
			results[i] = Result[T]{Item: item, Score: 1}
		}
		return results
	}

	queryLower := strings.ToLower(query)
	queryPinyin := transliterate(queryLower)
	threshold := opts.threshold()
	fuzzy := opts.fuzzy()

	var results []Result[T]
	for _, item := range items {
		if r, ok := searchItem(item, queryLower, queryPinyin, opts.Fields, threshold, fuzzy); ok {
			results = append(results, r)
		}
	}

	if opts.sorted() {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	if limit := opts.limit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}

// searchItem scores one item. The bool result is false when no field
// clears the threshold, which excludes the item outright.
func searchItem[T any](item T, queryLower, queryPinyin string, fields []Field[T], threshold float64, fuzzy bool) (Result[T], bool) {
	var (
		maxScore float64
		matches  []string
	)

	for _, field := range fields {
		value := strings.ToLower(field.Value(item))

		var score float64
		switch {
		case value == queryLower:
			score = 1
		case strings.Contains(value, queryLower):
			score = 0.8
		case strings.Contains(transliterate(value), queryPinyin):
			score = 0.6
		case fuzzy:
			score = similarity(queryLower, value)
		}

		if score > threshold && score > 0 {
			matches = append(matches, field.Name)
			if score > maxScore {
				maxScore = score
			}
		}
	}

	if len(matches) == 0 {
		return Result[T]{}, false
	}
	return Result[T]{Item: item, Score: maxScore, Matches: matches}, true
}

// ProductFields returns the standard searchable fields for catalog
// products: name, description, category.
func ProductFields() []Field[catalog.Product] {
	return []Field[catalog.Product]{
		{Name: "name", Value: func(p catalog.Product) string { return p.Name }},
		{Name: "description", Value: func(p catalog.Product) string { return p.Description }},
		{Name: "category", Value: func(p catalog.Product) string { return p.Category }},
	}
}

// Products searches the catalog over the standard product fields.
func Products(products []catalog.Product, query string, opts Options[catalog.Product]) []Result[catalog.Product] {
	if len(opts.Fields) == 0 {
		opts.Fields = ProductFields()
	}
	return Search(products, query, opts)
}

// Suggestions returns up to limit distinct suggestion strings for a
// partial query: matched product names first, then their categories,
// preserving result order. A blank query yields nothing.
func Suggestions(products []catalog.Product, query string, limit int) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultSuggestionsLimit
	}

	threshold := float64(SuggestThreshold)
	results := Products(products, query, Options[catalog.Product]{
		Threshold: &threshold,
		Limit:     limit,
	})

	seen := make(map[string]struct{}, limit)
	suggestions := make([]string, 0, limit)
	add := func(s string) {
		if _, ok := seen[s]; ok || len(suggestions) >= limit {
			return
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}

	for _, r := range results {
		add(r.Item.Name)
		if len(suggestions) < limit {
			add(r.Item.Category)
		}
		if len(suggestions) >= limit {
			break
		}
	}
	return suggestions
}
