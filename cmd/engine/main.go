// Shop - Storefront Personalization & Engagement Engine
// Copyright 2026 yueya1214
// SPDX-License-Identifier: MIT
// https://github.com/yueya1214/shop

// Command engine wires the personalization engine together end to end:
// config, logging, the durable store, and the four engines. It seeds a
// small catalog, records a browsing session, and logs what the engines
// derive from it. Useful as a smoke test and as wiring documentation.
package main

import (
	"flag"
	"os"

	"github.com/yueya1214/shop/internal/activity"
	"github.com/yueya1214/shop/internal/catalog"
	"github.com/yueya1214/shop/internal/config"
	"github.com/yueya1214/shop/internal/logging"
	"github.com/yueya1214/shop/internal/loyalty"
	"github.com/yueya1214/shop/internal/recommend"
	"github.com/yueya1214/shop/internal/search"
	"github.com/yueya1214/shop/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logging.Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()

	s, err := openStore(cfg.Store)
	if err != nil {
		logger.Err(err).Msg("failed to open store")
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Err(err).Msg("store close failed")
		}
	}()

	log := activity.NewLog(s, cfg.Activity, logger)
	recommender := recommend.NewEngine(log, cfg.Recommend, logger)
	rewards := loyalty.NewEngine(s, cfg.Loyalty, logger)

	products := demoCatalog()
	const userID = "demo-user"

	// A short browsing session: login, a few product views, a purchase.
	rewards.RecordActivity(userID, loyalty.ActivityLogin, nil)
	log.TrackPageView("/", "首页", userID)
	for _, p := range products[:3] {
		log.RecordView(userID, p.ID)
		log.TrackProductView(p.ID, p.Name, p.Category, p.Price, userID)
	}
	log.RecordPurchase(userID, products[0].ID, 1)
	rewards.RecordActivity(userID, loyalty.ActivityPurchase, &loyalty.Meta{
		Amount:  products[0].Price,
		OrderID: "demo-order-1",
	})

	results := search.Products(products, "手机", search.Options[catalog.Product]{
		Threshold: &cfg.Search.Threshold,
		Limit:     cfg.Search.Limit,
		Fuzzy:     &cfg.Search.Fuzzy,
	})
	log.TrackSearch("手机", len(results), userID)
	for _, r := range results {
		logger.Info().
			Str("product", r.Item.Name).
			Float64("score", r.Score).
			Strs("matches", r.Matches).
			Msg("search result")
	}

	for _, p := range recommender.Recommended(userID, products, 3) {
		logger.Info().Str("product", p.Name).Str("category", p.Category).Msg("recommended")
	}
	for _, p := range recommender.Popular(products, 3) {
		logger.Info().Str("product", p.Name).Msg("popular")
	}

	if points, ok := rewards.PerformDailyCheckIn(userID); ok {
		logger.Info().Int("points", points).Msg("daily check-in")
	}
	level := rewards.UserLevel(userID)
	progress := rewards.PointsToNextLevel(userID)
	logger.Info().
		Int("points", rewards.UserPoints(userID)).
		Str("level", level.Name).
		Int("points_to_next", progress.PointsNeeded).
		Int("engagement", log.EngagementScore(userID)).
		Strs("interests", log.Interests(userID, 3)).
		Msg("user profile")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func openStore(cfg config.StoreConfig) (store.Store, error) {
	if cfg.InMemory {
		return store.NewMemory(), nil
	}
	return store.OpenBadger(cfg.Path)
}

func demoCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "智能手机 Pro", Price: 4999, Category: "电子产品", Description: "旗舰智能手机"},
		{ID: "p2", Name: "无线耳机", Price: 899, Category: "电子产品", Description: "降噪无线耳机"},
		{ID: "p3", Name: "手机保护壳", Price: 49, Category: "配件", Description: "防摔手机壳"},
		{ID: "p4", Name: "蓝牙音箱", Price: 299, Category: "电子产品", Description: "便携蓝牙音箱"},
		{ID: "p5", Name: "运动水杯", Price: 79, Category: "运动户外", Description: "大容量运动水杯"},
		{ID: "p6", Name: "智能手表", Price: 1999, Category: "电子产品", Description: "健康监测智能手表"},
	}
}
