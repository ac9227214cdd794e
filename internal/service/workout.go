package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/maxout/internal/model"
)

// WorkoutLog records plan completions keyed by (plan, day). Any completed
// plan counts towards the workout streak.
type WorkoutLog struct {
	db    *sql.DB
	clock Clock
}

func NewWorkoutLog(db *sql.DB, clock Clock) *WorkoutLog {
	if clock == nil {
		clock = SystemClock
	}
	return &WorkoutLog{db: db, clock: clock}
}

func (l *WorkoutLog) ready() error {
	if l == nil || l.db == nil {
		return fmt.Errorf("workout log: %w", ErrNotInitialized)
	}
	return nil
}

// Complete records planID as done today. Completing the same plan twice on
// one day changes nothing and reports Recorded false.
func (l *WorkoutLog) Complete(ctx context.Context, planID string) (Outcome, error) {
	if err := l.ready(); err != nil {
		return Outcome{}, err
	}
	planID = strings.TrimSpace(planID)
	now := today(l.clock)

	var out Outcome
	err := withTx(ctx, l.db, func(tx *sql.Tx) error {
		var before int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM workout_completions`).Scan(&before); err != nil {
			return fmt.Errorf("count workout completions: %w", err)
		}
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO workout_completions(plan_id, day) VALUES(?, ?)`, planID, now.String())
		if err != nil {
			return fmt.Errorf("insert workout completion: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("read rows affected: %w", err)
		}
		if affected == 0 {
			return nil
		}
		out.Recorded = true

		if before == 0 {
			unlocked, err := unlockAchievement(ctx, tx, model.FirstWorkout)
			if err != nil {
				return err
			}
			out.addUnlock(model.FirstWorkout, unlocked)
		}

		streak, err := workoutStreak(ctx, tx, now)
		if err != nil {
			return err
		}
		out.Streak = streak
		out.StreakComputed = true
		unlocked, err := updateAchievementProgress(ctx, tx, model.WorkoutStreak, streak)
		if err != nil {
			return err
		}
		out.addUnlock(model.WorkoutStreak, unlocked)
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (l *WorkoutLog) IsCompletedToday(ctx context.Context, planID string) (bool, error) {
	if err := l.ready(); err != nil {
		return false, err
	}
	var exists int
	err := l.db.QueryRowContext(ctx, `SELECT 1 FROM workout_completions WHERE plan_id = ? AND day = ?`, strings.TrimSpace(planID), today(l.clock).String()).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check completion of %q: %w", planID, err)
	}
	return true, nil
}

func (l *WorkoutLog) CompletedCount(ctx context.Context) (int, error) {
	if err := l.ready(); err != nil {
		return 0, err
	}
	var count int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM workout_completions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count workout completions: %w", err)
	}
	return count, nil
}

func (l *WorkoutLog) Completions(ctx context.Context) ([]model.WorkoutCompletion, error) {
	if err := l.ready(); err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, `SELECT plan_id, day FROM workout_completions ORDER BY day ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workout completions: %w", err)
	}
	defer rows.Close()

	items := make([]model.WorkoutCompletion, 0)
	for rows.Next() {
		var (
			c      model.WorkoutCompletion
			dayRaw string
		)
		if err := rows.Scan(&c.PlanID, &dayRaw); err != nil {
			return nil, fmt.Errorf("scan workout completion: %w", err)
		}
		if c.Day, err = scanDay(dayRaw); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout completions: %w", err)
	}
	return items, nil
}

// Streak is the number of consecutive days up to today with any completed
// workout, looking back at most a week.
func (l *WorkoutLog) Streak(ctx context.Context) (int, error) {
	if err := l.ready(); err != nil {
		return 0, err
	}
	return workoutStreak(ctx, l.db, today(l.clock))
}

func workoutStreak(ctx context.Context, q querier, from model.Day) (int, error) {
	days, err := loadDistinctDays(ctx, q, `SELECT DISTINCT day FROM workout_completions WHERE day > ? AND day <= ?`,
		from.AddDays(-workoutStreakWindow).String(), from.String())
	if err != nil {
		return 0, err
	}
	return consecutiveDays(days, from, workoutStreakWindow), nil
}
