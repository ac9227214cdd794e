package model

import "time"

type WeightEntry struct {
	Day      Day     `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

type CalorieEntry struct {
	ID       string   `json:"id"`
	Day      Day      `json:"date"`
	Food     string   `json:"food"`
	Calories int      `json:"calories"`
	Meal     MealType `json:"meal_type"`
}

// WorkoutCompletion is keyed by the pair (PlanID, Day).
type WorkoutCompletion struct {
	PlanID string `json:"plan_id"`
	Day    Day    `json:"date"`
}

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	MuscleGroup string `json:"muscle_group"`
	Description string `json:"description"`
}

type WorkoutPlan struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Difficulty         Difficulty `json:"difficulty"`
	TargetMuscleGroups []string   `json:"target_muscle_groups"`
	DurationMin        int        `json:"duration_min"`
	Exercises          []Exercise `json:"exercises"`
	Custom             bool       `json:"custom"`
}

type Lift struct {
	ID         int64     `json:"id"`
	Exercise   string    `json:"exercise"`
	WeightKg   float64   `json:"weight_kg"`
	Day        Day       `json:"date"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatMessage struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

type Profile struct {
	Name             string   `json:"name"`
	GoalWeightKg     *float64 `json:"goal_weight_kg,omitempty"`
	DailyCalorieGoal int      `json:"daily_calorie_goal"`
}
