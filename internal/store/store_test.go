package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"Astrale/internal/model"
)

// Both implementations must satisfy the same contract; every test runs
// against each.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
}

func newUser(credits int, subscriber bool) *model.User {
	return &model.User{
		ID:         uuid.New(),
		ChatID:     42,
		SunSign:    model.Leone,
		Credits:    credits,
		Subscriber: subscriber,
		CreatedAt:  time.Now(),
	}
}

func TestGetUser_UnknownIsNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetUser(context.Background(), uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDebitCredits_GuardedDecrement(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u := newUser(3, false)
		require.NoError(t, s.CreateUser(ctx, u))

		ok, err := s.DebitCredits(ctx, u.ID, 2)
		require.NoError(t, err)
		require.True(t, ok)

		// Only 1 left, a 2-credit debit must refuse without going negative.
		ok, err = s.DebitCredits(ctx, u.ID, 2)
		require.NoError(t, err)
		require.False(t, ok)

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.Credits)

		require.NoError(t, s.RefundCredits(ctx, u.ID, 2))
		got, err = s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 3, got.Credits)
	})
}

func TestDebitCredits_ConcurrentSingleWinner(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u := newUser(1, false)
		require.NoError(t, s.CreateUser(ctx, u))

		const n = 16
		type result struct {
			ok  bool
			err error
		}
		var wg sync.WaitGroup
		results := make(chan result, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := s.DebitCredits(ctx, u.ID, 1)
				results <- result{ok: ok, err: err}
			}()
		}
		wg.Wait()
		close(results)

		charged := 0
		for r := range results {
			require.NoError(t, r.err)
			if r.ok {
				charged++
			}
		}
		require.Equal(t, 1, charged, "exactly one concurrent debit may win")

		got, err := s.GetUser(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.Credits)
	})
}

func TestLatestInsight_WindowAndKey(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		userID := uuid.New()
		base := time.Now().Truncate(time.Second)

		save := func(kind, key, payload string, at time.Time) {
			require.NoError(t, s.SaveInsight(ctx, &model.Insight{
				ID: uuid.New(), UserID: userID, Kind: kind, Key: key,
				Payload: payload, CreatedAt: at,
			}))
		}
		save("daily", "", "yesterday", base.Add(-30*time.Hour))
		save("daily", "", "today", base.Add(-2*time.Hour))
		save("transit", "Saturno in quadrato a Luna natale", "tense", base.Add(-1*time.Hour))

		// Window filter: only the fresh row qualifies.
		got, err := s.LatestInsight(ctx, userID, "daily", "", base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "today", got.Payload)

		// Nothing inside a narrow window.
		got, err = s.LatestInsight(ctx, userID, "daily", "", base.Add(-time.Hour))
		require.NoError(t, err)
		require.Nil(t, got)

		// Key narrows per-item rows; a different key misses.
		got, err = s.LatestInsight(ctx, userID, "transit", "Saturno in quadrato a Luna natale", base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "tense", got.Payload)

		got, err = s.LatestInsight(ctx, userID, "transit", "Giove in trigono a Sole natale", base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Nil(t, got)

		// Other users never see these rows.
		got, err = s.LatestInsight(ctx, uuid.New(), "daily", "", base.Add(-24*time.Hour))
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestJournal_CountAndLatest(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		userID := uuid.New()

		_, ok, err := s.LatestJournalAt(ctx, userID)
		require.NoError(t, err)
		require.False(t, ok)

		base := time.Now().Truncate(time.Second)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.AddJournalEntry(ctx, &model.JournalEntry{
				ID: uuid.New(), UserID: userID, Text: "caro diario",
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}))
		}

		n, err := s.CountJournalEntries(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		latest, ok, err := s.LatestJournalAt(ctx, userID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, base.Add(2*time.Hour).Unix(), latest.Unix())
	})
}

func TestNatalPlacements_ReplacedOnRedo(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		userID := uuid.New()

		first := []model.NatalPlacement{
			{Body: "Sole", Sign: model.Leone},
			{Body: "Luna", Sign: model.Cancro},
		}
		require.NoError(t, s.SaveNatalPlacements(ctx, userID, first))

		redone := []model.NatalPlacement{
			{Body: "Sole", Sign: model.Vergine},
		}
		require.NoError(t, s.SaveNatalPlacements(ctx, userID, redone))

		got, err := s.NatalPlacements(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, model.Vergine, got[0].Sign)
	})
}
