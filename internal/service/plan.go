package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/maxout/internal/model"
)

var ErrPlanNotFound = fmt.Errorf("workout plan %w", ErrNotFound)

// Plans is the workout plan catalog: the seeded plans plus custom ones.
type Plans struct {
	db *sql.DB
}

func NewPlans(db *sql.DB) *Plans {
	return &Plans{db: db}
}

type PlanInput struct {
	Name               string
	Description        string
	Difficulty         string
	TargetMuscleGroups []string
	DurationMin        int
	Exercises          []model.Exercise
}

func (p *Plans) ready() error {
	if p == nil || p.db == nil {
		return fmt.Errorf("workout plans: %w", ErrNotInitialized)
	}
	return nil
}

const planColumns = `id, name, description, difficulty, target_muscle_groups_json, duration_min, exercises_json, is_custom`

func (p *Plans) List(ctx context.Context) ([]model.WorkoutPlan, error) {
	if err := p.ready(); err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, `SELECT `+planColumns+` FROM workout_plans ORDER BY is_custom ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list workout plans: %w", err)
	}
	defer rows.Close()

	items := make([]model.WorkoutPlan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout plans: %w", err)
	}
	return items, nil
}

func (p *Plans) Get(ctx context.Context, id string) (model.WorkoutPlan, error) {
	if err := p.ready(); err != nil {
		return model.WorkoutPlan{}, err
	}
	id = strings.TrimSpace(id)
	plan, err := scanPlan(p.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM workout_plans WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.WorkoutPlan{}, fmt.Errorf("%w: %q", ErrPlanNotFound, id)
	}
	if err != nil {
		return model.WorkoutPlan{}, err
	}
	return plan, nil
}

// AddCustom validates and stores a user-defined plan under a generated id.
func (p *Plans) AddCustom(ctx context.Context, in PlanInput) (model.WorkoutPlan, error) {
	if err := p.ready(); err != nil {
		return model.WorkoutPlan{}, err
	}
	plan, err := normalizePlanInput(in)
	if err != nil {
		return model.WorkoutPlan{}, err
	}
	plan.ID = "custom-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	plan.Custom = true

	groups, err := json.Marshal(plan.TargetMuscleGroups)
	if err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("encode muscle groups: %w", err)
	}
	exercises, err := json.Marshal(plan.Exercises)
	if err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("encode exercises: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, `
INSERT INTO workout_plans(id, name, description, difficulty, target_muscle_groups_json, duration_min, exercises_json, is_custom)
VALUES(?, ?, ?, ?, ?, ?, ?, 1)
`, plan.ID, plan.Name, plan.Description, string(plan.Difficulty), string(groups), plan.DurationMin, string(exercises)); err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("insert workout plan: %w", err)
	}
	return plan, nil
}

func normalizePlanInput(in PlanInput) (model.WorkoutPlan, error) {
	plan := model.WorkoutPlan{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		DurationMin: in.DurationMin,
	}
	if plan.Name == "" {
		return model.WorkoutPlan{}, invalidf("plan name is required")
	}
	if plan.DurationMin <= 0 {
		return model.WorkoutPlan{}, invalidf("duration must be > 0")
	}
	difficulty, err := ParseDifficulty(in.Difficulty)
	if err != nil {
		return model.WorkoutPlan{}, err
	}
	plan.Difficulty = difficulty

	plan.TargetMuscleGroups = make([]string, 0, len(in.TargetMuscleGroups))
	for _, g := range in.TargetMuscleGroups {
		if g = normalizeName(g); g != "" {
			plan.TargetMuscleGroups = append(plan.TargetMuscleGroups, g)
		}
	}

	if len(in.Exercises) == 0 {
		return model.WorkoutPlan{}, invalidf("plan needs at least one exercise")
	}
	plan.Exercises = make([]model.Exercise, 0, len(in.Exercises))
	for i, ex := range in.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			return model.WorkoutPlan{}, invalidf("exercise %d: name is required", i+1)
		}
		if ex.Sets <= 0 || ex.Reps <= 0 {
			return model.WorkoutPlan{}, invalidf("exercise %q: sets and reps must be > 0", ex.Name)
		}
		if strings.TrimSpace(ex.ID) == "" {
			ex.ID = fmt.Sprintf("%s-%d", strings.ReplaceAll(normalizeName(ex.Name), " ", "-"), i+1)
		}
		ex.MuscleGroup = normalizeName(ex.MuscleGroup)
		ex.Description = strings.TrimSpace(ex.Description)
		plan.Exercises = append(plan.Exercises, ex)
	}
	return plan, nil
}

func ParseDifficulty(value string) (model.Difficulty, error) {
	switch d := model.Difficulty(normalizeName(value)); d {
	case "":
		return model.Beginner, nil
	case model.Beginner, model.Intermediate, model.Advanced:
		return d, nil
	default:
		return "", invalidf("invalid difficulty %q (use beginner, intermediate or advanced)", strings.TrimSpace(value))
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (model.WorkoutPlan, error) {
	var (
		plan          model.WorkoutPlan
		difficulty    string
		groupsJSON    string
		exercisesJSON string
	)
	if err := row.Scan(&plan.ID, &plan.Name, &plan.Description, &difficulty, &groupsJSON, &plan.DurationMin, &exercisesJSON, &plan.Custom); err != nil {
		if err == sql.ErrNoRows {
			return model.WorkoutPlan{}, err
		}
		return model.WorkoutPlan{}, fmt.Errorf("scan workout plan: %w", err)
	}
	plan.Difficulty = model.Difficulty(difficulty)
	if err := json.Unmarshal([]byte(groupsJSON), &plan.TargetMuscleGroups); err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("decode muscle groups of plan %s: %w", plan.ID, err)
	}
	if err := json.Unmarshal([]byte(exercisesJSON), &plan.Exercises); err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("decode exercises of plan %s: %w", plan.ID, err)
	}
	return plan, nil
}
