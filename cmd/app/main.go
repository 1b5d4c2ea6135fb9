package main

import (
	"flag"
	"log"
	"os"

	"BrentWatch/internal/di"
	"BrentWatch/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s prices=%s seed=%d chains=%d",
		cfg.Environment, cfg.Data.PricesPath, cfg.Analysis.Seed, cfg.Analysis.Chains)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run analysis (blocks until done or signal)
	if err := app.Run(); err != nil {
		log.Printf("analysis failed: %v", err)
		os.Exit(1)
	}
}
