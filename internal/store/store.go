package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"Astrale/internal/model"
)

// ErrNotFound is returned by lookups whose subject does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator: cache rows, users and their
// credit balances, journal entries, natal placements. All cross-request
// state lives here; the engine itself keeps nothing between requests.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	IsSubscriber(ctx context.Context, id uuid.UUID) (bool, error)

	// DebitCredits atomically decrements the balance if it covers
	// amount, in a single guarded write. Returns false (no error) when
	// the balance is insufficient.
	DebitCredits(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// RefundCredits returns a charge after a failed generation.
	RefundCredits(ctx context.Context, id uuid.UUID, amount int) error

	SaveInsight(ctx context.Context, ins *model.Insight) error
	// LatestInsight returns the newest insight of the kind created at
	// or after since, or nil when none exists. A non-empty key narrows
	// the lookup to per-item cached rows.
	LatestInsight(ctx context.Context, userID uuid.UUID, kind, key string, since time.Time) (*model.Insight, error)

	SaveNatalPlacements(ctx context.Context, userID uuid.UUID, placements []model.NatalPlacement) error
	NatalPlacements(ctx context.Context, userID uuid.UUID) ([]model.NatalPlacement, error)

	AddJournalEntry(ctx context.Context, e *model.JournalEntry) error
	CountJournalEntries(ctx context.Context, userID uuid.UUID) (int, error)
	// LatestJournalAt reports when the user last wrote an entry; the
	// second return is false when they never have.
	LatestJournalAt(ctx context.Context, userID uuid.UUID) (time.Time, bool, error)

	Close() error
}
