package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Astrale/internal/config"
	"Astrale/internal/generator"
	"Astrale/internal/insight"
	"Astrale/internal/notifier"
	"Astrale/internal/scheduler"
	"Astrale/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Astrale starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init generator client
	gen := generator.NewClient(
		cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Model,
		cfg.Proxy, time.Duration(cfg.Generator.TimeoutSeconds)*time.Second,
	)
	log.Printf("[INFO] generator: %s (%s)", gen.Name(), cfg.Generator.Model)

	// Init store
	var st store.Store
	if sqls, err := store.NewSQLiteStore(cfg.Database.SQLitePath); err != nil {
		log.Printf("[WARN] init sqlite store failed, using in-memory: %v", err)
		st = store.NewMemoryStore()
	} else {
		st = sqls
	}
	defer st.Close()

	// Init insight service
	svc := insight.NewService(st, gen).WithWelcomeGrant(cfg.Credits.WelcomeGrant)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, st, svc, tn)
	if err := sched.RegisterAll(cfg.Schedule.MorningCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing morning task now")
		go sched.RunMorningNow()
	}

	log.Println("[INFO] Astrale is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] Astrale stopped")
}
