// Package insight wraps every AI-generation call site with cache
// lookup, cache invalidation, and the credit gate. It is the only
// package that talks to the generator, the credit balance, or the
// insight rows in storage.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"Astrale/internal/generator"
	"Astrale/internal/model"
	"Astrale/internal/store"
)

// The closed outcome set callers must handle. Anything else coming out
// of GetOrGenerate is a storage error.
var (
	// ErrInsufficientCredits: the gate refused; upgrade or wait.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrTooFewSources: not enough journal entries yet.
	ErrTooFewSources = errors.New("too few journal entries")
	// ErrGenerationFailed: the provider failed or timed out; try later.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrUnknownKind: the kind is not in the policy table.
	ErrUnknownKind = errors.New("unknown insight kind")
)

// ContextBuilder produces the generation request for a cache miss.
// Only invoked after the cache and the gate have both been consulted.
type ContextBuilder func() (generator.Request, error)

// Service is the cache & gating layer.
type Service struct {
	store        store.Store
	gen          generator.Generator
	now          func() time.Time
	welcomeGrant int
}

func NewService(st store.Store, gen generator.Generator) *Service {
	return &Service{store: st, gen: gen, now: time.Now}
}

// WithClock pins "now" for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithWelcomeGrant sets the credit balance new users start with.
func (s *Service) WithWelcomeGrant(credits int) *Service {
	s.welcomeGrant = credits
	return s
}

// EnsureUser returns the user, creating them with the welcome credit
// grant on first sight. Onboarding goes through here so the gate has a
// starting balance; an existing user is never re-granted.
func (s *Service) EnsureUser(ctx context.Context, id uuid.UUID, chatID int64, sunSign model.ZodiacSign) (*model.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	u = &model.User{
		ID:        id,
		ChatID:    chatID,
		SunSign:   sunSign,
		Credits:   s.welcomeGrant,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Printf("[INFO] new user %s, granted %d credits", id, s.welcomeGrant)
	return u, nil
}

// GetOrGenerate is the single entry point for every AI-generated
// artifact. key is only consulted by per-item kinds and may be empty
// otherwise.
//
// Order of checks: cache, source precondition, credit gate, generate.
// A cache hit is always free. The charge lands atomically before the
// provider call and is refunded if the call fails, so a balance that
// covers one request never pays for two.
func (s *Service) GetOrGenerate(ctx context.Context, userID uuid.UUID, kind, key string, build ContextBuilder) (string, error) {
	spec, ok := Kinds[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	now := s.now()
	var since time.Time
	switch spec.Policy {
	case PolicyRolling:
		since = now.Add(-spec.Window)
	default:
		since = dayStart(now)
	}

	lookupKey := ""
	if spec.Policy == PolicyKeyed {
		lookupKey = key
	}

	cached, err := s.store.LatestInsight(ctx, userID, kind, lookupKey, since)
	if err != nil {
		return "", fmt.Errorf("cache lookup: %w", err)
	}
	if cached != nil {
		stale, err := s.staleBySources(ctx, userID, spec, cached)
		if err != nil {
			return "", err
		}
		if !stale {
			if spec.CheckPayload == nil || spec.CheckPayload(cached.Payload) {
				return cached.Payload, nil
			}
			// Corrupted row: treat as a miss and regenerate.
			log.Printf("[WARN] corrupted cached %s insight for user %s, regenerating", kind, userID)
		}
	}

	if spec.MinSources > 0 {
		n, err := s.store.CountJournalEntries(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("count sources: %w", err)
		}
		if n < spec.MinSources {
			return "", ErrTooFewSources
		}
	}

	req, err := build()
	if err != nil {
		return "", fmt.Errorf("%w: build context: %v", ErrGenerationFailed, err)
	}

	charged, err := s.passGate(ctx, userID, spec.Cost)
	if err != nil {
		return "", err
	}

	payload, err := s.gen.Generate(ctx, req)
	if err != nil {
		if charged {
			if rerr := s.store.RefundCredits(ctx, userID, spec.Cost); rerr != nil {
				log.Printf("[ERROR] refund %d credits to %s: %v", spec.Cost, userID, rerr)
			}
		}
		log.Printf("[WARN] generate %s for user %s: %v", kind, userID, err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	ins := &model.Insight{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Key:       lookupKey,
		Payload:   payload,
		CreatedAt: now,
	}
	if err := s.store.SaveInsight(ctx, ins); err != nil {
		// The user still gets their text; only the cache write failed.
		log.Printf("[ERROR] cache %s insight for user %s: %v", kind, userID, err)
	}
	return payload, nil
}

// staleBySources reports whether a within-window rolling artifact has
// been invalidated by newer source material.
func (s *Service) staleBySources(ctx context.Context, userID uuid.UUID, spec KindSpec, cached *model.Insight) (bool, error) {
	if spec.Policy != PolicyRolling {
		return false, nil
	}
	latest, ok, err := s.store.LatestJournalAt(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("latest source: %w", err)
	}
	return ok && latest.After(cached.CreatedAt), nil
}

// passGate applies the credit/subscription gate. Subscribers always
// pass and are never charged. For everyone else the decrement is a
// single atomic decrement-if-sufficient, evaluated fresh per request;
// credits are one shared pool across kinds.
func (s *Service) passGate(ctx context.Context, userID uuid.UUID, cost int) (charged bool, err error) {
	if cost <= 0 {
		return false, nil
	}
	sub, err := s.store.IsSubscriber(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("subscription lookup: %w", err)
	}
	if sub {
		return false, nil
	}
	ok, err := s.store.DebitCredits(ctx, userID, cost)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrInsufficientCredits
	}
	return true, nil
}

// TransitInsights fetches an interpretation for each significant
// transit independently, keyed by the transit's description. Misses
// and hits coexist within one call; a failure on one item falls back
// to the canned text for its aspect type and never aborts the rest.
//
// Once the gate refuses, remaining items are served from cache or
// canned text without further charge attempts. The returned error is
// ErrInsufficientCredits in that case so the caller can surface the
// upgrade prompt; the slice is always complete either way.
func (s *Service) TransitInsights(ctx context.Context, userID uuid.UUID, signals []model.TransitSignal, build func(model.TransitSignal) generator.Request) ([]string, error) {
	out := make([]string, 0, len(signals))
	broke := false
	for _, sig := range signals {
		sig := sig
		var payload string
		var err error
		if broke {
			payload, err = s.cachedTransit(ctx, userID, sig.Description)
		} else {
			payload, err = s.GetOrGenerate(ctx, userID, KindTransit, sig.Description, func() (generator.Request, error) {
				return build(sig), nil
			})
			if errors.Is(err, ErrInsufficientCredits) {
				broke = true
			}
		}
		if err != nil || payload == "" {
			if err != nil && !errors.Is(err, ErrInsufficientCredits) {
				log.Printf("[WARN] transit insight %q for user %s: %v, using canned text", sig.Description, userID, err)
			}
			payload = cannedInterpretation(sig)
		}
		out = append(out, payload)
	}
	if broke {
		return out, ErrInsufficientCredits
	}
	return out, nil
}

// cachedTransit is the charge-free lookup used after the gate has
// refused: today's cached row if one exists, nothing generated.
func (s *Service) cachedTransit(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	cached, err := s.store.LatestInsight(ctx, userID, KindTransit, key, dayStart(s.now()))
	if err != nil {
		return "", fmt.Errorf("cache lookup: %w", err)
	}
	if cached == nil {
		return "", nil
	}
	return cached.Payload, nil
}

// dayStart returns midnight of t's calendar day in t's location.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
