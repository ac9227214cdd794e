package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/maxout/internal/model"
)

// NutritionLedger holds calorie entries. Logging food for today refreshes the
// consecutive-days-tracked streak behind the calorie-master achievement.
type NutritionLedger struct {
	db    *sql.DB
	clock Clock
}

func NewNutritionLedger(db *sql.DB, clock Clock) *NutritionLedger {
	if clock == nil {
		clock = SystemClock
	}
	return &NutritionLedger{db: db, clock: clock}
}

type CalorieEntryInput struct {
	Day      model.Day
	Food     string
	Calories int
	Meal     model.MealType
}

type CalorieEntryFilter struct {
	Day  model.Day
	Meal model.MealType
}

func (l *NutritionLedger) ready() error {
	if l == nil || l.db == nil {
		return fmt.Errorf("nutrition ledger: %w", ErrNotInitialized)
	}
	return nil
}

// Append stores the entry under a fresh id. A zero Day means today.
func (l *NutritionLedger) Append(ctx context.Context, in CalorieEntryInput) (model.CalorieEntry, Outcome, error) {
	if err := l.ready(); err != nil {
		return model.CalorieEntry{}, Outcome{}, err
	}
	now := today(l.clock)
	entry := model.CalorieEntry{
		ID:       uuid.NewString(),
		Day:      in.Day,
		Food:     strings.TrimSpace(in.Food),
		Calories: in.Calories,
		Meal:     in.Meal,
	}
	if entry.Day.IsZero() {
		entry.Day = now
	}

	var out Outcome
	err := withTx(ctx, l.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO calorie_entries(id, day, food, calories, meal_type)
VALUES(?, ?, ?, ?, ?)
`, entry.ID, entry.Day.String(), entry.Food, entry.Calories, string(entry.Meal)); err != nil {
			return fmt.Errorf("insert calorie entry: %w", err)
		}
		out.Recorded = true

		if !entry.Day.Equal(now) {
			return nil
		}
		streak, err := calorieStreak(ctx, tx, now)
		if err != nil {
			return err
		}
		out.Streak = streak
		out.StreakComputed = true
		unlocked, err := updateAchievementProgress(ctx, tx, model.CalorieMaster, streak)
		if err != nil {
			return err
		}
		out.addUnlock(model.CalorieMaster, unlocked)
		return nil
	})
	if err != nil {
		return model.CalorieEntry{}, Outcome{}, err
	}
	return entry, out, nil
}

// Remove deletes an entry by id. Streaks and achievements are left as they
// are. It reports whether an entry was deleted.
func (l *NutritionLedger) Remove(ctx context.Context, id string) (bool, error) {
	if err := l.ready(); err != nil {
		return false, err
	}
	res, err := l.db.ExecContext(ctx, `DELETE FROM calorie_entries WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return false, fmt.Errorf("delete calorie entry %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected: %w", err)
	}
	return affected > 0, nil
}

func (l *NutritionLedger) Entries(ctx context.Context, f CalorieEntryFilter) ([]model.CalorieEntry, error) {
	if err := l.ready(); err != nil {
		return nil, err
	}
	query := `SELECT id, day, food, calories, meal_type FROM calorie_entries WHERE 1=1`
	args := make([]any, 0)
	if !f.Day.IsZero() {
		query += ` AND day = ?`
		args = append(args, f.Day.String())
	}
	if f.Meal != "" {
		query += ` AND meal_type = ?`
		args = append(args, string(f.Meal))
	}
	query += ` ORDER BY day ASC, rowid ASC`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calorie entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.CalorieEntry, 0)
	for rows.Next() {
		var (
			e      model.CalorieEntry
			dayRaw string
			meal   string
		)
		if err := rows.Scan(&e.ID, &dayRaw, &e.Food, &e.Calories, &meal); err != nil {
			return nil, fmt.Errorf("scan calorie entry: %w", err)
		}
		if e.Day, err = scanDay(dayRaw); err != nil {
			return nil, err
		}
		e.Meal = model.MealType(meal)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calorie entries: %w", err)
	}
	return items, nil
}

func (l *NutritionLedger) TotalForDate(ctx context.Context, day model.Day) (int, error) {
	if err := l.ready(); err != nil {
		return 0, err
	}
	var total int
	if err := l.db.QueryRowContext(ctx, `SELECT IFNULL(SUM(calories), 0) FROM calorie_entries WHERE day = ?`, day.String()).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum calories for %s: %w", day, err)
	}
	return total, nil
}

func (l *NutritionLedger) TotalForToday(ctx context.Context) (int, error) {
	if err := l.ready(); err != nil {
		return 0, err
	}
	return l.TotalForDate(ctx, today(l.clock))
}

// Streak is the number of consecutive days up to today with an entry.
func (l *NutritionLedger) Streak(ctx context.Context) (int, error) {
	if err := l.ready(); err != nil {
		return 0, err
	}
	return calorieStreak(ctx, l.db, today(l.clock))
}

func calorieStreak(ctx context.Context, q querier, from model.Day) (int, error) {
	days, err := loadDistinctDays(ctx, q, `SELECT DISTINCT day FROM calorie_entries WHERE day <= ?`, from.String())
	if err != nil {
		return 0, err
	}
	return consecutiveDays(days, from, 0), nil
}

// ParseMealType accepts the four meal slots; "snacks" is taken as snack.
func ParseMealType(value string) (model.MealType, error) {
	v := normalizeName(value)
	if v == "snacks" {
		v = string(model.Snack)
	}
	for _, m := range model.MealTypes {
		if string(m) == v {
			return m, nil
		}
	}
	return "", invalidf("invalid meal %q (use breakfast, lunch, dinner or snack)", strings.TrimSpace(value))
}
