package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/maxout/internal/model"
)

var (
	// ErrNotInitialized is returned when a service is used without the
	// session database it was meant to be constructed with.
	ErrNotInitialized = errors.New("service not initialized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
)

// Outcome describes what a ledger write changed beyond the write itself.
// Streak is only meaningful when StreakComputed is set: writes that do not
// touch today leave the streak as it was.
type Outcome struct {
	Recorded       bool                  `json:"recorded"`
	StreakComputed bool                  `json:"streak_computed"`
	Streak         int                   `json:"streak"`
	Unlocked       []model.AchievementID `json:"unlocked,omitempty"`
}

func (o *Outcome) addUnlock(id model.AchievementID, unlocked bool) {
	if unlocked {
		o.Unlocked = append(o.Unlocked, id)
	}
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock in the local time zone.
var SystemClock Clock = ClockFunc(time.Now)

func today(c Clock) model.Day {
	if c == nil {
		c = SystemClock
	}
	return model.DayOf(c.Now())
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func withTx(ctx context.Context, db *sql.DB, run func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := run(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func scanDay(raw string) (model.Day, error) {
	d, err := model.ParseDay(raw)
	if err != nil {
		return model.Day{}, fmt.Errorf("parse stored day: %w", err)
	}
	return d, nil
}
