package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/saadjs/maxout/internal/model"
)

// ExportData is a snapshot of everything a session has recorded.
type ExportData struct {
	Version      int                       `json:"version"`
	ExportedAt   string                    `json:"exported_at"`
	Profile      model.Profile             `json:"profile"`
	Weight       []model.WeightEntry       `json:"weight"`
	Calories     []model.CalorieEntry      `json:"calories"`
	Workouts     []model.WorkoutCompletion `json:"workouts"`
	CustomPlans  []model.WorkoutPlan       `json:"custom_plans"`
	Lifts        []model.Lift              `json:"lifts"`
	Achievements []model.Achievement       `json:"achievements"`
}

const exportVersion = 1

// CalorieCSVHeader is the column order of WriteCaloriesCSV.
var CalorieCSVHeader = []string{"id", "date", "meal_type", "calories", "food"}

func (s *Session) Export(ctx context.Context) (*ExportData, error) {
	out := &ExportData{Version: exportVersion, ExportedAt: s.clock.Now().UTC().Format(time.RFC3339)}

	var err error
	if out.Profile, err = s.Profile.Get(ctx); err != nil {
		return nil, err
	}
	if out.Weight, err = s.Weight.History(ctx); err != nil {
		return nil, err
	}
	if out.Calories, err = s.Nutrition.Entries(ctx, CalorieEntryFilter{}); err != nil {
		return nil, err
	}
	if out.Workouts, err = s.Workouts.Completions(ctx); err != nil {
		return nil, err
	}
	plans, err := s.Plans.List(ctx)
	if err != nil {
		return nil, err
	}
	out.CustomPlans = make([]model.WorkoutPlan, 0)
	for _, p := range plans {
		if p.Custom {
			out.CustomPlans = append(out.CustomPlans, p)
		}
	}
	if out.Lifts, err = s.Strength.Lifts(ctx, ""); err != nil {
		return nil, err
	}
	if out.Achievements, err = s.Achievements.List(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func WriteCaloriesCSV(w io.Writer, entries []model.CalorieEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CalorieCSVHeader); err != nil {
		return fmt.Errorf("write export csv header: %w", err)
	}
	for _, e := range entries {
		record := []string{e.ID, e.Day.String(), string(e.Meal), strconv.Itoa(e.Calories), e.Food}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export csv: %w", err)
	}
	return nil
}
