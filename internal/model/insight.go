package model

import (
	"time"

	"github.com/google/uuid"
)

// Insight is one cached AI-generated artifact. Rows are superseded by
// newer rows of the same kind, never updated in place; validity is a
// time-window test at read time, not a storage constraint.
type Insight struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Key       string // per-item cache key (transit description, chat question hash); empty for day/window kinds
	Payload   string
	Metric    float64 // optional score attached by some kinds (e.g. compatibility)
	CreatedAt time.Time
}

// User carries the fields the engine needs: the credit balance the
// gate debits, the subscriber flag that bypasses it, and the chat the
// morning report is delivered to.
type User struct {
	ID         uuid.UUID
	ChatID     int64
	SunSign    ZodiacSign
	Credits    int
	Subscriber bool
	CreatedAt  time.Time
}

// JournalEntry is a user-authored diary entry. New entries invalidate
// the rolling-window pattern analysis cached before them.
type JournalEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Text      string
	CreatedAt time.Time
}
