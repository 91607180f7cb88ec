package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"Astrale/internal/model"
)

// SQLiteStore persists engine state to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection: writes are serialized at the pool instead of
	// bouncing off SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// WAL mode: the morning job writes while app requests read.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			chat_id    INTEGER NOT NULL DEFAULT 0,
			sun_sign   TEXT NOT NULL DEFAULT '',
			credits    INTEGER NOT NULL DEFAULT 0,
			subscriber INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS insights (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			kind       TEXT NOT NULL,
			key        TEXT NOT NULL DEFAULT '',
			payload    TEXT NOT NULL,
			metric     REAL NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_insights_lookup ON insights(user_id, kind, created_at)`,

		`CREATE TABLE IF NOT EXISTS natal_placements (
			user_id TEXT NOT NULL,
			body    TEXT NOT NULL,
			sign    TEXT NOT NULL,
			PRIMARY KEY (user_id, body)
		)`,

		`CREATE TABLE IF NOT EXISTS journal_entries (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			text       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, chat_id, sun_sign, credits, subscriber, created_at)
		 VALUES (?,?,?,?,?,?)`,
		u.ID.String(), u.ChatID, string(u.SunSign), u.Credits, boolToInt(u.Subscriber), u.CreatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, chat_id, sun_sign, credits, subscriber, created_at FROM users WHERE id = ?`,
		id.String(),
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, err
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chat_id, sun_sign, credits, subscriber, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) IsSubscriber(ctx context.Context, id uuid.UUID) (bool, error) {
	var sub int
	err := s.db.QueryRowContext(ctx,
		`SELECT subscriber FROM users WHERE id = ?`, id.String()).Scan(&sub)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return sub == 1, err
}

// DebitCredits is the one operation that must not race: the guard and
// the decrement are a single UPDATE, so two concurrent requests can
// never both succeed on a balance that covers only one.
func (s *SQLiteStore) DebitCredits(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET credits = credits - ? WHERE id = ? AND credits >= ?`,
		amount, id.String(), amount,
	)
	if err != nil {
		return false, fmt.Errorf("debit credits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQLiteStore) RefundCredits(ctx context.Context, id uuid.UUID, amount int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET credits = credits + ? WHERE id = ?`, amount, id.String())
	return err
}

func (s *SQLiteStore) SaveInsight(ctx context.Context, ins *model.Insight) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO insights (id, user_id, kind, key, payload, metric, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		ins.ID.String(), ins.UserID.String(), ins.Kind, ins.Key,
		ins.Payload, ins.Metric, ins.CreatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) LatestInsight(ctx context.Context, userID uuid.UUID, kind, key string, since time.Time) (*model.Insight, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, key, payload, metric, created_at FROM insights
		 WHERE user_id = ? AND kind = ? AND (? = '' OR key = ?) AND created_at >= ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		userID.String(), kind, key, key, since.Unix(),
	)

	var ins model.Insight
	var idStr, uidStr string
	var createdAt int64
	err := row.Scan(&idStr, &uidStr, &ins.Kind, &ins.Key, &ins.Payload, &ins.Metric, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ins.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("parse insight id: %w", err)
	}
	if ins.UserID, err = uuid.Parse(uidStr); err != nil {
		return nil, fmt.Errorf("parse insight user id: %w", err)
	}
	ins.CreatedAt = time.Unix(createdAt, 0)
	return &ins, nil
}

func (s *SQLiteStore) SaveNatalPlacements(ctx context.Context, userID uuid.UUID, placements []model.NatalPlacement) error {
	// Redone onboarding replaces the whole chart.
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM natal_placements WHERE user_id = ?`, userID.String()); err != nil {
		return err
	}
	for _, p := range placements {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO natal_placements (user_id, body, sign) VALUES (?,?,?)`,
			userID.String(), p.Body, string(p.Sign)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) NatalPlacements(ctx context.Context, userID uuid.UUID) ([]model.NatalPlacement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body, sign FROM natal_placements WHERE user_id = ?`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.NatalPlacement
	for rows.Next() {
		var p model.NatalPlacement
		var sign string
		if err := rows.Scan(&p.Body, &sign); err != nil {
			return nil, err
		}
		p.Sign = model.ZodiacSign(sign)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddJournalEntry(ctx context.Context, e *model.JournalEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journal_entries (id, user_id, text, created_at) VALUES (?,?,?,?)`,
		e.ID.String(), e.UserID.String(), e.Text, e.CreatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) CountJournalEntries(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE user_id = ?`, userID.String()).Scan(&n)
	return n, err
}

func (s *SQLiteStore) LatestJournalAt(ctx context.Context, userID uuid.UUID) (time.Time, bool, error) {
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM journal_entries WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID.String()).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(createdAt, 0), true, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	var idStr, sign string
	var sub int
	var createdAt int64
	if err := row.Scan(&idStr, &u.ChatID, &sign, &u.Credits, &sub, &createdAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	u.ID = id
	u.SunSign = model.ZodiacSign(sign)
	u.Subscriber = sub == 1
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
