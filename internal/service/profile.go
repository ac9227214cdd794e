package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/maxout/internal/model"
)

type Profiles struct {
	db *sql.DB
}

func NewProfiles(db *sql.DB) *Profiles {
	return &Profiles{db: db}
}

// ProfileUpdate carries the fields to change; nil fields are kept.
type ProfileUpdate struct {
	Name             *string
	GoalWeight       *float64
	GoalWeightUnit   string
	DailyCalorieGoal *int
}

func (p *Profiles) ready() error {
	if p == nil || p.db == nil {
		return fmt.Errorf("profile: %w", ErrNotInitialized)
	}
	return nil
}

func (p *Profiles) Get(ctx context.Context) (model.Profile, error) {
	if err := p.ready(); err != nil {
		return model.Profile{}, err
	}
	var (
		profile model.Profile
		goal    sql.NullFloat64
	)
	err := p.db.QueryRowContext(ctx, `SELECT name, goal_weight_kg, daily_calorie_goal FROM profile WHERE id = 1`).Scan(&profile.Name, &goal, &profile.DailyCalorieGoal)
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if goal.Valid {
		v := goal.Float64
		profile.GoalWeightKg = &v
	}
	return profile, nil
}

func (p *Profiles) Update(ctx context.Context, in ProfileUpdate) (model.Profile, error) {
	if err := p.ready(); err != nil {
		return model.Profile{}, err
	}
	current, err := p.Get(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Profile{}, invalidf("name cannot be empty")
		}
		current.Name = name
	}
	if in.GoalWeight != nil {
		kg, err := convertWeightToKg(*in.GoalWeight, in.GoalWeightUnit)
		if err != nil {
			return model.Profile{}, err
		}
		current.GoalWeightKg = &kg
	}
	if in.DailyCalorieGoal != nil {
		if *in.DailyCalorieGoal <= 0 {
			return model.Profile{}, invalidf("daily calorie goal must be > 0")
		}
		current.DailyCalorieGoal = *in.DailyCalorieGoal
	}

	if _, err := p.db.ExecContext(ctx, `
INSERT INTO profile(id, name, goal_weight_kg, daily_calorie_goal, updated_at)
VALUES(1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  goal_weight_kg = excluded.goal_weight_kg,
  daily_calorie_goal = excluded.daily_calorie_goal,
  updated_at = excluded.updated_at
`, current.Name, current.GoalWeightKg, current.DailyCalorieGoal); err != nil {
		return model.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return current, nil
}
