package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/maxout/internal/model"
)

// Session owns every store and ledger of one user session. All of them share
// the same database and clock.
type Session struct {
	Achievements *Achievements
	Weight       *WeightLedger
	Nutrition    *NutritionLedger
	Workouts     *WorkoutLog
	Strength     *StrengthLog
	Plans        *Plans
	Profile      *Profiles
	Trainer      *Trainer

	clock Clock
}

type sessionOptions struct {
	clock  Clock
	picker Picker
}

type SessionOption func(*sessionOptions)

func WithClock(c Clock) SessionOption {
	return func(o *sessionOptions) {
		o.clock = c
	}
}

func WithPicker(p Picker) SessionOption {
	return func(o *sessionOptions) {
		o.picker = p
	}
}

func NewSession(db *sql.DB, opts ...SessionOption) *Session {
	o := sessionOptions{clock: SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		Achievements: NewAchievements(db),
		Weight:       NewWeightLedger(db, o.clock),
		Nutrition:    NewNutritionLedger(db, o.clock),
		Workouts:     NewWorkoutLog(db, o.clock),
		Strength:     NewStrengthLog(db, o.clock),
		Plans:        NewPlans(db),
		Profile:      NewProfiles(db),
		Trainer:      NewTrainer(db, o.clock, o.picker),
		clock:        o.clock,
	}
}

// Date is the current calendar day of the session clock.
func (s *Session) Date() model.Day {
	return today(s.clock)
}

type WeightInput struct {
	Weight float64
	Unit   string
	Day    model.Day
}

// LogWeight validates user input, converts it to kg and appends it. A zero
// Day means today.
func (s *Session) LogWeight(ctx context.Context, in WeightInput) (model.WeightEntry, Outcome, error) {
	kg, err := ValidateWeight(in.Weight, in.Unit)
	if err != nil {
		return model.WeightEntry{}, Outcome{}, err
	}
	entry := model.WeightEntry{Day: in.Day, WeightKg: kg}
	if entry.Day.IsZero() {
		entry.Day = s.Date()
	}
	out, err := s.Weight.Append(ctx, entry)
	if err != nil {
		return model.WeightEntry{}, Outcome{}, err
	}
	return entry, out, nil
}

type FoodInput struct {
	Food     string
	Calories int
	Meal     string
	Day      model.Day
}

func (s *Session) LogFood(ctx context.Context, in FoodInput) (model.CalorieEntry, Outcome, error) {
	if err := ValidateText("food", in.Food); err != nil {
		return model.CalorieEntry{}, Outcome{}, err
	}
	if err := ValidateCalories(in.Calories); err != nil {
		return model.CalorieEntry{}, Outcome{}, err
	}
	meal, err := ParseMealType(in.Meal)
	if err != nil {
		return model.CalorieEntry{}, Outcome{}, err
	}
	return s.Nutrition.Append(ctx, CalorieEntryInput{Day: in.Day, Food: in.Food, Calories: in.Calories, Meal: meal})
}

// CompletePlan completes a plan that exists in the catalog.
func (s *Session) CompletePlan(ctx context.Context, planID string) (model.WorkoutPlan, Outcome, error) {
	plan, err := s.Plans.Get(ctx, planID)
	if err != nil {
		return model.WorkoutPlan{}, Outcome{}, err
	}
	out, err := s.Workouts.Complete(ctx, plan.ID)
	if err != nil {
		return model.WorkoutPlan{}, Outcome{}, err
	}
	return plan, out, nil
}

// ValidateWeight checks a user supplied weight and returns it in kg.
func ValidateWeight(value float64, unit string) (float64, error) {
	return convertWeightToKg(value, unit)
}

func ValidateCalories(calories int) error {
	if calories <= 0 {
		return invalidf("calories must be > 0")
	}
	return nil
}

func ValidateText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidf("%s is required", field)
	}
	return nil
}

type TodayStatus struct {
	Date              string             `json:"date"`
	IntakeCalories    int                `json:"intake_calories"`
	CalorieGoal       int                `json:"calorie_goal"`
	RemainingCalories int                `json:"remaining_calories"`
	HasWeight         bool               `json:"has_weight"`
	CurrentWeightKg   float64            `json:"current_weight_kg,omitempty"`
	WeightChangeKg    float64            `json:"weight_change_kg,omitempty"`
	GoalWeightKg      *float64           `json:"goal_weight_kg,omitempty"`
	NutritionStreak   int                `json:"nutrition_streak"`
	WorkoutStreak     int                `json:"workout_streak"`
	CompletedWorkouts int                `json:"completed_workouts"`
	Achievements      AchievementSummary `json:"achievements"`
	InProgress        []string           `json:"in_progress,omitempty"`
}

// Today assembles the dashboard view of the session.
func (s *Session) Today(ctx context.Context) (*TodayStatus, error) {
	status := &TodayStatus{Date: s.Date().String()}

	profile, err := s.Profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	status.CalorieGoal = profile.DailyCalorieGoal
	status.GoalWeightKg = profile.GoalWeightKg

	if status.IntakeCalories, err = s.Nutrition.TotalForToday(ctx); err != nil {
		return nil, err
	}
	status.RemainingCalories = status.CalorieGoal - status.IntakeCalories

	current, ok, err := s.Weight.Current(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		status.HasWeight = true
		status.CurrentWeightKg = current
		if status.WeightChangeKg, _, err = s.Weight.Change(ctx); err != nil {
			return nil, err
		}
	}

	if status.NutritionStreak, err = s.Nutrition.Streak(ctx); err != nil {
		return nil, err
	}
	if status.WorkoutStreak, err = s.Workouts.Streak(ctx); err != nil {
		return nil, err
	}
	if status.CompletedWorkouts, err = s.Workouts.CompletedCount(ctx); err != nil {
		return nil, err
	}

	achievements, err := s.Achievements.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize achievements: %w", err)
	}
	status.Achievements = SummarizeAchievements(achievements)
	for _, a := range InProgress(achievements) {
		status.InProgress = append(status.InProgress, string(a.ID))
	}
	return status, nil
}
