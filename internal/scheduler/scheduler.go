// Package scheduler drives the morning-notification use case: once a
// day, run the daily-horoscope path for every user and deliver the
// result. It sits outside the engine proper; each per-user run goes
// through the same GetOrGenerate entry point the app uses.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"Astrale/internal/generator"
	"Astrale/internal/insight"
	"Astrale/internal/lunar"
	"Astrale/internal/model"
	"Astrale/internal/notifier"
	"Astrale/internal/store"
	"Astrale/internal/transit"
)

const morningWorkers = 4

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Store    store.Store
	Insights *insight.Service
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context
}

func NewScheduler(ctx context.Context, st store.Store, svc *insight.Service, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    st,
		Insights: svc,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// RegisterAll registers the morning task.
func (s *Scheduler) RegisterAll(morningCron string) error {
	if _, err := s.Cron.AddFunc(morningCron, s.morningTask); err != nil {
		return fmt.Errorf("register morning task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunMorningNow executes the morning task immediately (for manual
// trigger / RUN_ON_START).
func (s *Scheduler) RunMorningNow() {
	s.morningTask()
}

func (s *Scheduler) morningTask() {
	log.Println("[INFO] running morning task")
	users, err := s.Store.ListUsers(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] morning list users: %v", err)
		return
	}

	// Bounded concurrency: the generation path blocks on the provider,
	// users are independent.
	sem := make(chan struct{}, morningWorkers)
	var wg sync.WaitGroup
	for _, u := range users {
		if u.ChatID == 0 {
			continue
		}
		u := u
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.morningForUser(u)
		}()
	}
	wg.Wait()
	log.Printf("[INFO] morning task done for %d users", len(users))
}

func (s *Scheduler) morningForUser(u model.User) {
	now := time.Now()

	natal, err := s.Store.NatalPlacements(s.Ctx, u.ID)
	if err != nil {
		log.Printf("[ERROR] natal placements for %s: %v", u.ID, err)
		return
	}
	signals := transit.Significant(now, natal)

	var event *model.LunarEvent
	if e, ok := lunar.EventAt(now); ok {
		event = &e
	}

	horoscope, err := s.Insights.GetOrGenerate(s.Ctx, u.ID, insight.KindDaily, "", func() (generator.Request, error) {
		return dailyRequest(u, signals, event), nil
	})
	if err != nil {
		// Credits ran out or the provider is down; skip this user, the
		// app will surface the right message when they open it.
		log.Printf("[WARN] morning horoscope for %s: %v", u.ID, err)
		return
	}

	report := notifier.FormatMorningReport(horoscope, signals, event, now)
	if err := s.Notifier.SendWithRetry(s.Ctx, u.ChatID, report, 3); err != nil {
		log.Printf("[ERROR] send morning report to %s: %v", u.ID, err)
	}
}

// dailyRequest builds the prompt context for a daily horoscope. The
// engine treats this as opaque text.
func dailyRequest(u model.User, signals []model.TransitSignal, event *model.LunarEvent) generator.Request {
	var b strings.Builder
	fmt.Fprintf(&b, "Segno solare: %s\n", u.SunSign)
	if len(signals) == 0 {
		b.WriteString("Transiti di oggi: nessuno di rilievo, cielo tranquillo\n")
	} else {
		b.WriteString("Transiti di oggi:\n")
		for _, sig := range signals {
			fmt.Fprintf(&b, "- %s (significatività %.1f)\n", sig.Description, sig.Significance)
		}
	}
	if event != nil {
		fmt.Fprintf(&b, "Evento lunare: %s in %s\n", event.Phase.Italian(), event.Sign)
	}
	return generator.Request{
		System:  "Sei un astrologo esperto. Scrivi un oroscopo del giorno breve, caldo e concreto, in italiano.",
		Context: b.String(),
	}
}
