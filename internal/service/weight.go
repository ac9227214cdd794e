package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/maxout/internal/model"
)

// milestoneLossRatio is the share of the starting weight that has to be lost
// to unlock the first weight milestone.
const milestoneLossRatio = 0.05

// WeightLedger keeps the weight history ordered by day. Entries on the same
// day keep their insertion order; the last one is the current weight.
type WeightLedger struct {
	db    *sql.DB
	clock Clock
}

func NewWeightLedger(db *sql.DB, clock Clock) *WeightLedger {
	if clock == nil {
		clock = SystemClock
	}
	return &WeightLedger{db: db, clock: clock}
}

func (l *WeightLedger) ready() error {
	if l == nil || l.db == nil {
		return fmt.Errorf("weight ledger: %w", ErrNotInitialized)
	}
	return nil
}

// Append records the entry and re-evaluates the weight milestone against the
// whole history. A zero Day means today.
func (l *WeightLedger) Append(ctx context.Context, entry model.WeightEntry) (Outcome, error) {
	if err := l.ready(); err != nil {
		return Outcome{}, err
	}
	if entry.Day.IsZero() {
		entry.Day = today(l.clock)
	}
	var out Outcome
	err := withTx(ctx, l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO weight_entries(day, weight_kg) VALUES(?, ?)`, entry.Day.String(), entry.WeightKg); err != nil {
			return fmt.Errorf("insert weight entry: %w", err)
		}
		out.Recorded = true

		initial, current, ok, err := weightBounds(ctx, tx)
		if err != nil {
			return err
		}
		if !ok || !WeightMilestoneReached(initial, current) {
			return nil
		}
		unlocked, err := unlockAchievement(ctx, tx, model.WeightMilestone1)
		if err != nil {
			return err
		}
		out.addUnlock(model.WeightMilestone1, unlocked)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (l *WeightLedger) History(ctx context.Context) ([]model.WeightEntry, error) {
	if err := l.ready(); err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, `SELECT day, weight_kg FROM weight_entries ORDER BY day ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightEntry, 0)
	for rows.Next() {
		var (
			dayRaw string
			e      model.WeightEntry
		)
		if err := rows.Scan(&dayRaw, &e.WeightKg); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		if e.Day, err = scanDay(dayRaw); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight entries: %w", err)
	}
	return items, nil
}

// Current returns the latest weight; ok is false when the ledger is empty.
func (l *WeightLedger) Current(ctx context.Context) (weightKg float64, ok bool, err error) {
	if err := l.ready(); err != nil {
		return 0, false, err
	}
	_, current, ok, err := weightBounds(ctx, l.db)
	return current, ok, err
}

// Change returns latest minus earliest weight; ok is false when empty.
func (l *WeightLedger) Change(ctx context.Context) (deltaKg float64, ok bool, err error) {
	if err := l.ready(); err != nil {
		return 0, false, err
	}
	initial, current, ok, err := weightBounds(ctx, l.db)
	if err != nil || !ok {
		return 0, ok, err
	}
	return current - initial, true, nil
}

func weightBounds(ctx context.Context, q querier) (initial, current float64, ok bool, err error) {
	err = q.QueryRowContext(ctx, `SELECT weight_kg FROM weight_entries ORDER BY day ASC, id ASC LIMIT 1`).Scan(&initial)
	if err == sql.ErrNoRows {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, fmt.Errorf("load initial weight: %w", err)
	}
	if err := q.QueryRowContext(ctx, `SELECT weight_kg FROM weight_entries ORDER BY day DESC, id DESC LIMIT 1`).Scan(&current); err != nil {
		return 0, 0, false, fmt.Errorf("load current weight: %w", err)
	}
	return initial, current, true, nil
}

// WeightMilestoneReached reports a loss of at least 5% from initial.
func WeightMilestoneReached(initial, current float64) bool {
	if initial <= 0 || current >= initial {
		return false
	}
	return (initial-current)/initial >= milestoneLossRatio
}

// kgPerLb is the exact international avoirdupois pound.
const kgPerLb = 0.45359237

func normalizeWeightUnit(unit string) (string, error) {
	switch u := strings.ToLower(strings.TrimSpace(unit)); u {
	case "", "kg":
		return "kg", nil
	case "lb", "lbs":
		return "lb", nil
	default:
		return "", invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, invalidf("weight must be > 0")
	}
	u, err := normalizeWeightUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == "lb" {
		return value * kgPerLb, nil
	}
	return value, nil
}

// WeightFromKg converts a stored kg value for display in unit.
func WeightFromKg(weightKg float64, unit string) (float64, error) {
	u, err := normalizeWeightUnit(unit)
	if err != nil {
		return 0, err
	}
	if u == "lb" {
		return weightKg / kgPerLb, nil
	}
	return weightKg, nil
}
