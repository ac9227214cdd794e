package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/maxout/internal/model"
)

// powerUpGainRatio is the improvement over the first recorded lift of an
// exercise that earns power-up.
const powerUpGainRatio = 0.20

// StrengthLog records lifts per exercise and feeds the power-up achievement
// through the achievement store.
type StrengthLog struct {
	db    *sql.DB
	clock Clock
}

func NewStrengthLog(db *sql.DB, clock Clock) *StrengthLog {
	if clock == nil {
		clock = SystemClock
	}
	return &StrengthLog{db: db, clock: clock}
}

type LiftInput struct {
	Exercise string
	Weight   float64
	Unit     string
	Day      model.Day
}

func (l *StrengthLog) ready() error {
	if l == nil || l.db == nil {
		return fmt.Errorf("strength log: %w", ErrNotInitialized)
	}
	return nil
}

func (l *StrengthLog) Record(ctx context.Context, in LiftInput) (model.Lift, Outcome, error) {
	if err := l.ready(); err != nil {
		return model.Lift{}, Outcome{}, err
	}
	exercise := normalizeName(in.Exercise)
	if exercise == "" {
		return model.Lift{}, Outcome{}, invalidf("exercise name is required")
	}
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return model.Lift{}, Outcome{}, err
	}
	now := l.clock.Now()
	lift := model.Lift{Exercise: exercise, WeightKg: weightKg, Day: in.Day, RecordedAt: now}
	if lift.Day.IsZero() {
		lift.Day = model.DayOf(now)
	}

	var out Outcome
	err = withTx(ctx, l.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO lifts(exercise, weight_kg, day, recorded_at)
VALUES(?, ?, ?, ?)
`, lift.Exercise, lift.WeightKg, lift.Day.String(), now.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert lift: %w", err)
		}
		if lift.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("resolve lift id: %w", err)
		}
		out.Recorded = true

		var first, best float64
		if err := tx.QueryRowContext(ctx, `SELECT weight_kg FROM lifts WHERE exercise = ? ORDER BY day ASC, id ASC LIMIT 1`, exercise).Scan(&first); err != nil {
			return fmt.Errorf("load first %s lift: %w", exercise, err)
		}
		if err := tx.QueryRowContext(ctx, `SELECT MAX(weight_kg) FROM lifts WHERE exercise = ?`, exercise).Scan(&best); err != nil {
			return fmt.Errorf("load best %s lift: %w", exercise, err)
		}
		if !StrengthGainReached(first, best) {
			return nil
		}
		unlocked, err := updateAchievementProgress(ctx, tx, model.PowerUp, 1)
		if err != nil {
			return err
		}
		out.addUnlock(model.PowerUp, unlocked)
		return nil
	})
	if err != nil {
		return model.Lift{}, Outcome{}, err
	}
	return lift, out, nil
}

func (l *StrengthLog) Lifts(ctx context.Context, exercise string) ([]model.Lift, error) {
	if err := l.ready(); err != nil {
		return nil, err
	}
	query := `SELECT id, exercise, weight_kg, day, recorded_at FROM lifts`
	args := make([]any, 0)
	if name := normalizeName(exercise); name != "" {
		query += ` WHERE exercise = ?`
		args = append(args, name)
	}
	query += ` ORDER BY day ASC, id ASC`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lifts: %w", err)
	}
	defer rows.Close()

	items := make([]model.Lift, 0)
	for rows.Next() {
		var (
			lift        model.Lift
			dayRaw      string
			recordedRaw string
		)
		if err := rows.Scan(&lift.ID, &lift.Exercise, &lift.WeightKg, &dayRaw, &recordedRaw); err != nil {
			return nil, fmt.Errorf("scan lift: %w", err)
		}
		if lift.Day, err = scanDay(dayRaw); err != nil {
			return nil, err
		}
		if lift.RecordedAt, err = time.Parse(time.RFC3339, recordedRaw); err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		items = append(items, lift)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lifts: %w", err)
	}
	return items, nil
}

// StrengthGainReached reports a best lift at least 20% above the first one.
func StrengthGainReached(first, best float64) bool {
	if first <= 0 {
		return false
	}
	return (best-first)/first >= powerUpGainRatio
}
