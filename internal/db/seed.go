package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/saadjs/maxout/internal/model"
)

const (
	DefaultProfileName      = "Athlete"
	DefaultDailyCalorieGoal = 2000
)

var defaultPlans = []model.WorkoutPlan{
	{
		ID:                 "strength-1",
		Name:               "Beginner Strength Training",
		Description:        "Perfect for beginners to build foundational strength",
		Difficulty:         model.Beginner,
		TargetMuscleGroups: []string{"chest", "back", "legs", "arms"},
		DurationMin:        30,
		Exercises: []model.Exercise{
			{ID: "pushups-1", Name: "Push-ups", Sets: 3, Reps: 10, MuscleGroup: "chest", Description: "Classic chest exercise for upper body strength"},
			{ID: "squats-1", Name: "Bodyweight Squats", Sets: 3, Reps: 15, MuscleGroup: "legs", Description: "Foundational leg exercise to build lower body strength"},
			{ID: "rows-1", Name: "Dumbbell Rows", Sets: 3, Reps: 12, MuscleGroup: "back", Description: "Back strengthening exercise using light dumbbells"},
		},
	},
	{
		ID:                 "hiit-1",
		Name:               "Quick HIIT Cardio",
		Description:        "High-intensity interval training for fat burning",
		Difficulty:         model.Intermediate,
		TargetMuscleGroups: []string{"full body", "cardio"},
		DurationMin:        20,
		Exercises: []model.Exercise{
			{ID: "burpees-1", Name: "Burpees", Sets: 4, Reps: 10, MuscleGroup: "full body", Description: "Full body exercise combining squat, push-up, and jump"},
			{ID: "jumping-jacks-1", Name: "Jumping Jacks", Sets: 4, Reps: 30, MuscleGroup: "cardio", Description: "Classic cardio exercise to elevate heart rate"},
			{ID: "mountain-climbers-1", Name: "Mountain Climbers", Sets: 4, Reps: 20, MuscleGroup: "core", Description: "Dynamic core exercise that also raises heart rate"},
		},
	},
}

// DefaultPlans returns the plans every session starts with.
func DefaultPlans() []model.WorkoutPlan {
	out := make([]model.WorkoutPlan, len(defaultPlans))
	copy(out, defaultPlans)
	return out
}

func seed(db *sql.DB) error {
	for i, def := range model.Catalog() {
		var progress any
		if def.MaxProgress != nil {
			progress = 0
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO achievements(id, position, progress) VALUES(?, ?, ?)`, string(def.ID), i, progress); err != nil {
			return fmt.Errorf("seed achievement %s: %w", def.ID, err)
		}
	}

	for _, plan := range defaultPlans {
		groups, err := json.Marshal(plan.TargetMuscleGroups)
		if err != nil {
			return fmt.Errorf("encode muscle groups for plan %s: %w", plan.ID, err)
		}
		exercises, err := json.Marshal(plan.Exercises)
		if err != nil {
			return fmt.Errorf("encode exercises for plan %s: %w", plan.ID, err)
		}
		if _, err := db.Exec(`
INSERT OR IGNORE INTO workout_plans(id, name, description, difficulty, target_muscle_groups_json, duration_min, exercises_json, is_custom)
VALUES(?, ?, ?, ?, ?, ?, ?, 0)
`, plan.ID, plan.Name, plan.Description, string(plan.Difficulty), string(groups), plan.DurationMin, string(exercises)); err != nil {
			return fmt.Errorf("seed workout plan %s: %w", plan.ID, err)
		}
	}

	if _, err := db.Exec(`INSERT OR IGNORE INTO profile(id, name, daily_calorie_goal) VALUES(1, ?, ?)`, DefaultProfileName, DefaultDailyCalorieGoal); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	return nil
}
