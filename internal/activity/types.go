// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package activity implements the interaction log: page and product
// events keyed by session and user, plus per-user view and purchase
// history. All state lives in the durable record store and is re-read
// on every query; another writer (a second tab, another process) may
// mutate the store between calls.
package activity

import "time"

// EventType classifies a tracked interaction.
type EventType string

// The closed set of tracked event types.
const (
	EventPageView       EventType = "page_view"
	EventProductView    EventType = "product_view"
	EventAddToCart      EventType = "add_to_cart"
	EventRemoveFromCart EventType = "remove_from_cart"
	EventBeginCheckout  EventType = "begin_checkout"
	EventPurchase       EventType = "purchase"
	EventSearch         EventType = "search"
	EventFilter         EventType = "filter"
	EventShare          EventType = "share"
	EventWishlistAdd    EventType = "wishlist_add"
	EventWishlistRemove EventType = "wishlist_remove"
	EventReview         EventType = "review"
	EventLogin          EventType = "login"
	EventSignup         EventType = "signup"
	EventLogout         EventType = "logout"
)

// EventTypes lists every tracked event type. Weight tables are checked
// against this set for completeness.
var EventTypes = []EventType{
	EventPageView, EventProductView, EventAddToCart, EventRemoveFromCart,
	EventBeginCheckout, EventPurchase, EventSearch, EventFilter,
	EventShare, EventWishlistAdd, EventWishlistRemove, EventReview,
	EventLogin, EventSignup, EventLogout,
}

// engagementWeights scores each event type's contribution to a user's
// engagement. Negative weights mark disengagement signals.
var engagementWeights = map[EventType]int{
	EventPageView:       1,
	EventProductView:    2,
	EventAddToCart:      5,
	EventRemoveFromCart: -2,
	EventBeginCheckout:  7,
	EventPurchase:       20,
	EventSearch:         3,
	EventFilter:         2,
	EventShare:          10,
	EventWishlistAdd:    4,
	EventWishlistRemove: -1,
	EventReview:         15,
	EventLogin:          3,
	EventSignup:         10,
	EventLogout:         0,
}

// Event is one append-only interaction record. SessionID is stable for
// the browsing session the event was recorded in.
type Event struct {
	Type       EventType  `json:"eventType"`
	UserID     string     `json:"userId,omitempty"`
	SessionID  string     `json:"sessionId"`
	Timestamp  time.Time  `json:"timestamp"`
	Properties Properties `json:"properties"`
}

// Properties is the tagged payload carried by an event. Exactly the
// variant matching the event type is set; the rest stay nil and are
// omitted from the serialized form.
type Properties struct {
	Page     *PageProps     `json:"page,omitempty"`
	Product  *ProductProps  `json:"product,omitempty"`
	Cart     *CartProps     `json:"cart,omitempty"`
	Purchase *PurchaseProps `json:"purchase,omitempty"`
	Search   *SearchProps   `json:"search,omitempty"`
}

// PageProps describes a page view.
type PageProps struct {
	Path     string `json:"pagePath"`
	Title    string `json:"pageTitle"`
	Referrer string `json:"referrer,omitempty"`
}

// ProductProps describes a product interaction.
type ProductProps struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"productName"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

// CartProps describes a cart mutation.
type CartProps struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"productName"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Value     float64 `json:"value"`
}

// PurchaseProps describes a completed order.
type PurchaseProps struct {
	OrderID    string         `json:"orderId"`
	Items      []PurchaseItem `json:"products"`
	ItemCount  int            `json:"itemCount"`
	TotalValue float64        `json:"totalValue"`
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"productName"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// SearchProps describes a search submission.
type SearchProps struct {
	Term         string `json:"searchTerm"`
	ResultsCount int    `json:"resultsCount"`
}

// ViewHistoryEntry is the per-(user, product) view counter. Uniqueness
// of the pair is enforced by upsert.
type ViewHistoryEntry struct {
	UserID     string    `json:"userId"`
	ProductID  string    `json:"productId"`
	ViewCount  int       `json:"viewCount"`
	LastViewed time.Time `json:"lastViewed"`
}

// PurchaseHistoryEntry is the per-(user, product) purchase counter.
type PurchaseHistoryEntry struct {
	UserID        string    `json:"userId"`
	ProductID     string    `json:"productId"`
	PurchaseCount int       `json:"purchaseCount"`
	LastPurchased time.Time `json:"lastPurchased"`
}
