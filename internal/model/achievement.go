package model

// AchievementID identifies an entry of the fixed achievement catalog.
type AchievementID string

const (
	FirstWorkout     AchievementID = "first-workout"
	WorkoutStreak    AchievementID = "streak-3"
	WeightMilestone1 AchievementID = "weight-milestone-1"
	CalorieMaster    AchievementID = "calorie-master"
	PowerUp          AchievementID = "power-up"
)

// AchievementDef is the static part of an achievement. MaxProgress is nil for
// achievements that are only ever unlocked directly.
type AchievementDef struct {
	ID          AchievementID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	MaxProgress *int          `json:"max_progress,omitempty"`
}

func maxProgress(v int) *int {
	return &v
}

var catalog = []AchievementDef{
	{
		ID:          FirstWorkout,
		Title:       "First Workout",
		Description: "Complete your first workout",
		Icon:        "dumbbell",
	},
	{
		ID:          WorkoutStreak,
		Title:       "Dedicated Trainee",
		Description: "Complete workouts for 3 days in a row",
		Icon:        "flame",
		MaxProgress: maxProgress(3),
	},
	{
		ID:          WeightMilestone1,
		Title:       "Weight Milestone",
		Description: "Lose 5% of your starting weight",
		Icon:        "scale",
	},
	{
		ID:          CalorieMaster,
		Title:       "Calorie Master",
		Description: "Track your calories for 7 consecutive days",
		Icon:        "apple",
		MaxProgress: maxProgress(7),
	},
	{
		ID:          PowerUp,
		Title:       "Power Up",
		Description: "Increase strength in any exercise by 20%",
		Icon:        "zap",
		MaxProgress: maxProgress(1),
	},
}

// Catalog returns the achievement definitions in display order.
func Catalog() []AchievementDef {
	out := make([]AchievementDef, len(catalog))
	copy(out, catalog)
	return out
}

func LookupAchievement(id AchievementID) (AchievementDef, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDef{}, false
}

// Achievement is a catalog entry together with its session state.
type Achievement struct {
	AchievementDef
	Unlocked bool `json:"unlocked"`
	Progress *int `json:"progress,omitempty"`
}

// Tracked reports whether the achievement carries a progress counter.
func (a Achievement) Tracked() bool {
	return a.MaxProgress != nil
}

// Percent is progress over max, rounded and capped at 100. Untracked
// achievements report 100 when unlocked and 0 otherwise.
func (a Achievement) Percent() int {
	if !a.Tracked() || a.Progress == nil || *a.MaxProgress == 0 {
		if a.Unlocked {
			return 100
		}
		return 0
	}
	pct := (*a.Progress*100 + *a.MaxProgress/2) / *a.MaxProgress
	if pct > 100 {
		return 100
	}
	return pct
}

// InProgress reports a locked achievement with some progress made.
func (a Achievement) InProgress() bool {
	return !a.Unlocked && a.Progress != nil && *a.Progress > 0
}
