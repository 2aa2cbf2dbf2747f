// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

package activity

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/yueya1214/shop/internal/store"
)

// Store keys for interaction collections.
const (
	eventsKey          = "user_events"
	viewHistoryKey     = "user_view_history"
	purchaseHistoryKey = "user_purchase_history"
)

// DefaultMaxEvents caps the persisted event log. Oldest events are
// trimmed on append so the most-recent tail is always kept.
const DefaultMaxEvents = 1000

// Config tunes the interaction log.
type Config struct {
	// SessionTimeout is the inactivity window before a new session id
	// is minted. Default 30m.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// MaxEvents caps the persisted event log. Default 1000.
	MaxEvents int `koanf:"max_events"`
}

// DefaultConfig returns the default interaction log configuration.
func DefaultConfig() Config {
	return Config{
		SessionTimeout: DefaultSessionTimeout,
		MaxEvents:      DefaultMaxEvents,
	}
}

// Log records interactions and answers history queries. It owns no
// cached state: every read goes back to the store, every write runs as
// a store transaction.
type Log struct {
	store          store.Store
	logger         zerolog.Logger
	sessionTimeout time.Duration
	maxEvents      int
	now            func() time.Time
}

// NewLog creates an interaction log over the given store.
func NewLog(s store.Store, cfg Config, logger zerolog.Logger) *Log {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = DefaultMaxEvents
	}
	return &Log{
		store:          s,
		logger:         logger.With().Str("component", "activity").Logger(),
		sessionTimeout: cfg.SessionTimeout,
		maxEvents:      cfg.MaxEvents,
		now:            time.Now,
	}
}

// SetClock overrides the wall clock. Test hook.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// RecordView upserts the view-history entry for (userID, productID):
// the view count goes up by one and the last-viewed stamp moves to now.
// Empty ids are silently ignored.
func (l *Log) RecordView(userID, productID string) {
	if userID == "" || productID == "" {
		return
	}

	err := store.Mutate(l.store, viewHistoryKey, l.logger, func(entries []ViewHistoryEntry) []ViewHistoryEntry {
		now := l.now()
		for i := range entries {
			if entries[i].UserID == userID && entries[i].ProductID == productID {
				entries[i].ViewCount++
				entries[i].LastViewed = now
				return entries
			}
		}
		return append(entries, ViewHistoryEntry{
			UserID:     userID,
			ProductID:  productID,
			ViewCount:  1,
			LastViewed: now,
		})
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("user", userID).Str("product", productID).Msg("record view failed")
	}
}

// RecordPurchase upserts the purchase-history entry for
// (userID, productID), incrementing by quantity. A non-positive
// quantity counts as one. Empty ids are silently ignored.
func (l *Log) RecordPurchase(userID, productID string, quantity int) {
	if userID == "" || productID == "" {
		return
	}
	if quantity <= 0 {
		quantity = 1
	}

	err := store.Mutate(l.store, purchaseHistoryKey, l.logger, func(entries []PurchaseHistoryEntry) []PurchaseHistoryEntry {
		now := l.now()
		for i := range entries {
			if entries[i].UserID == userID && entries[i].ProductID == productID {
				entries[i].PurchaseCount += quantity
				entries[i].LastPurchased = now
				return entries
			}
		}
		return append(entries, PurchaseHistoryEntry{
			UserID:        userID,
			ProductID:     productID,
			PurchaseCount: quantity,
			LastPurchased: now,
		})
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("user", userID).Str("product", productID).Msg("record purchase failed")
	}
}

// ViewHistory returns the user's view-history entries. The collection
// is re-read and re-parsed on every call.
func (l *Log) ViewHistory(userID string) []ViewHistoryEntry {
	all := store.Load[[]ViewHistoryEntry](l.store, viewHistoryKey, l.logger)
	var out []ViewHistoryEntry
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// PurchaseHistory returns the user's purchase-history entries.
func (l *Log) PurchaseHistory(userID string) []PurchaseHistoryEntry {
	all := store.Load[[]PurchaseHistoryEntry](l.store, purchaseHistoryKey, l.logger)
	var out []PurchaseHistoryEntry
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// AllViewHistory returns every user's view-history entries.
func (l *Log) AllViewHistory() []ViewHistoryEntry {
	return store.Load[[]ViewHistoryEntry](l.store, viewHistoryKey, l.logger)
}

// AllPurchaseHistory returns every user's purchase-history entries.
func (l *Log) AllPurchaseHistory() []PurchaseHistoryEntry {
	return store.Load[[]PurchaseHistoryEntry](l.store, purchaseHistoryKey, l.logger)
}

// TrackEvent appends an event stamped with the current session id and
// wall time. The log is trimmed from the oldest end past MaxEvents.
func (l *Log) TrackEvent(eventType EventType, props Properties, userID string) {
	event := Event{
		Type:       eventType,
		UserID:     userID,
		SessionID:  l.sessionID(),
		Timestamp:  l.now(),
		Properties: props,
	}

	err := store.Mutate(l.store, eventsKey, l.logger, func(events []Event) []Event {
		events = append(events, event)
		if len(events) > l.maxEvents {
			events = events[len(events)-l.maxEvents:]
		}
		return events
	})
	if err != nil {
		l.logger.Warn().Err(err).Str("event", string(eventType)).Msg("track event failed")
	}
}

// Events returns the user's events, or every event when userID is empty.
func (l *Log) Events(userID string) []Event {
	all := store.Load[[]Event](l.store, eventsKey, l.logger)
	if userID == "" {
		return all
	}
	var out []Event
	for _, e := range all {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// SessionEvents returns the events recorded under the current session
// id. Nothing is returned when no session has been started.
func (l *Log) SessionEvents() []Event {
	sessionID := l.currentSessionID()
	if sessionID == "" {
		return nil
	}

	all := store.Load[[]Event](l.store, eventsKey, l.logger)
	var out []Event
	for _, e := range all {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out
}

// TrackPageView records a page-view event.
func (l *Log) TrackPageView(path, title, userID string) {
	l.TrackEvent(EventPageView, Properties{Page: &PageProps{Path: path, Title: title}}, userID)
}

// TrackProductView records a product-view event.
func (l *Log) TrackProductView(productID, name, category string, price float64, userID string) {
	l.TrackEvent(EventProductView, Properties{Product: &ProductProps{
		ProductID: productID,
		Name:      name,
		Category:  category,
		Price:     price,
	}}, userID)
}

// TrackAddToCart records a cart addition.
func (l *Log) TrackAddToCart(productID, name, category string, price float64, quantity int, userID string) {
	l.TrackEvent(EventAddToCart, Properties{Cart: &CartProps{
		ProductID: productID,
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  quantity,
		Value:     price * float64(quantity),
	}}, userID)
}

// TrackPurchase records a completed order.
func (l *Log) TrackPurchase(orderID string, items []PurchaseItem, totalValue float64, userID string) {
	l.TrackEvent(EventPurchase, Properties{Purchase: &PurchaseProps{
		OrderID:    orderID,
		Items:      items,
		ItemCount:  len(items),
		TotalValue: totalValue,
	}}, userID)
}

// TrackSearch records a search submission.
func (l *Log) TrackSearch(term string, resultsCount int, userID string) {
	l.TrackEvent(EventSearch, Properties{Search: &SearchProps{
		Term:         term,
		ResultsCount: resultsCount,
	}}, userID)
}

// EngagementScore sums the per-type weights over the user's events, or
// over the current session's events when userID is empty.
func (l *Log) EngagementScore(userID string) int {
	var events []Event
	if userID != "" {
		events = l.Events(userID)
	} else {
		events = l.SessionEvents()
	}

	total := 0
	for _, e := range events {
		total += engagementWeights[e.Type]
	}
	return total
}

// Interests ranks the categories appearing in the user's (or current
// session's) product-related events, weighted by event strength:
// purchase 10, add-to-cart 5, wishlist 3, view 1. Returns up to limit
// categories, strongest first.
func (l *Log) Interests(userID string, limit int) []string {
	var events []Event
	if userID != "" {
		events = l.Events(userID)
	} else {
		events = l.SessionEvents()
	}
	if limit <= 0 {
		limit = 3
	}

	scores := make(map[string]int)
	for _, e := range events {
		var weight int
		switch e.Type {
		case EventPurchase:
			weight = 10
		case EventAddToCart:
			weight = 5
		case EventWishlistAdd:
			weight = 3
		case EventProductView:
			weight = 1
		default:
			continue
		}

		for _, category := range eventCategories(e) {
			if category != "" {
				scores[category] += weight
			}
		}
	}

	categories := make([]string, 0, len(scores))
	for c := range scores {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if scores[categories[i]] != scores[categories[j]] {
			return scores[categories[i]] > scores[categories[j]]
		}
		return categories[i] < categories[j]
	})

	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}

// eventCategories extracts the product categories an event touches.
func eventCategories(e Event) []string {
	switch {
	case e.Properties.Product != nil:
		return []string{e.Properties.Product.Category}
	case e.Properties.Cart != nil:
		return []string{e.Properties.Cart.Category}
	case e.Properties.Purchase != nil:
		out := make([]string, 0, len(e.Properties.Purchase.Items))
		for _, item := range e.Properties.Purchase.Items {
			out = append(out, item.Category)
		}
		return out
	default:
		return nil
	}
}
