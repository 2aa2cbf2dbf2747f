// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Package config loads engine configuration with layered sources:
// built-in defaults, then an optional YAML file, then SHOP_-prefixed
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/yueya1214/shop/internal/activity"
	"github.com/yueya1214/shop/internal/logging"
	"github.com/yueya1214/shop/internal/loyalty"
	"github.com/yueya1214/shop/internal/recommend"
)

// Config is the full engine configuration.
type Config struct {
	Store     StoreConfig      `koanf:"store"`
	Activity  activity.Config  `koanf:"activity"`
	Search    SearchConfig     `koanf:"search"`
	Recommend recommend.Config `koanf:"recommend"`
	Loyalty   loyalty.Config   `koanf:"loyalty"`
	Logging   logging.Config   `koanf:"logging"`
}

// StoreConfig selects and locates the durable record store.
type StoreConfig struct {
	// Path is the badger database directory.
	Path string `koanf:"path"`

	// InMemory selects the non-durable in-process store. Intended for
	// tests and throwaway environments.
	InMemory bool `koanf:"in_memory"`
}

// SearchConfig carries the search defaults handed to callers.
type SearchConfig struct {
	Threshold float64 `koanf:"threshold"`
	Limit     int     `koanf:"limit"`
	Fuzzy     bool    `koanf:"fuzzy"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path:     "data/shop-engine",
			InMemory: false,
		},
		Activity: activity.DefaultConfig(),
		Search: SearchConfig{
			Threshold: 0.3,
			Limit:     50,
			Fuzzy:     true,
		},
		Recommend: recommend.DefaultConfig(),
		Loyalty:   loyalty.DefaultConfig(),
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path is required unless store.in_memory is set")
	}
	if c.Activity.SessionTimeout < time.Minute {
		return fmt.Errorf("activity.session_timeout must be at least 1m, got %s", c.Activity.SessionTimeout)
	}
	if c.Activity.MaxEvents < 1 {
		return fmt.Errorf("activity.max_events must be positive, got %d", c.Activity.MaxEvents)
	}
	if c.Search.Threshold < 0 || c.Search.Threshold >= 1 {
		return fmt.Errorf("search.threshold must be in [0,1), got %g", c.Search.Threshold)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Recommend.ViewWeight < 0 || c.Recommend.PurchaseWeight < 0 {
		return fmt.Errorf("recommend weights must be non-negative")
	}
	if c.Loyalty.StreakBonusPerDay < 0 || c.Loyalty.StreakBonusCap < 0 {
		return fmt.Errorf("loyalty streak bonus values must be non-negative")
	}
	return nil
}
