// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package catalog defines the product shape shared by the search and
// recommendation engines. The catalog itself is owned by the external
// product service and handed in as a slice; nothing here fetches it.
package catalog

// Product is one catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}
