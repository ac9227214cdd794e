package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saadjs/maxout/internal/metrics"
	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

type weightRequest struct {
	Weight float64   `json:"weight"`
	Unit   string    `json:"unit"`
	Date   model.Day `json:"date"`
}

func (s *Server) handleAddWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, out, err := s.session.LogWeight(r.Context(), service.WeightInput{Weight: req.Weight, Unit: req.Unit, Day: req.Date})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.observe(metrics.LedgerWeight, out)
	writeJSON(w, http.StatusCreated, outcomeResponse{Item: entry, Outcome: out})
}

func (s *Server) handleListWeight(w http.ResponseWriter, r *http.Request) {
	items, err := s.session.Weight.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type currentWeightResponse struct {
	Set      bool    `json:"set"`
	WeightKg float64 `json:"weight_kg,omitempty"`
	ChangeKg float64 `json:"change_kg,omitempty"`
}

func (s *Server) handleCurrentWeight(w http.ResponseWriter, r *http.Request) {
	current, ok, err := s.session.Weight.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := currentWeightResponse{Set: ok, WeightKg: current}
	if ok {
		if resp.ChangeKg, _, err = s.session.Weight.Change(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type calorieRequest struct {
	Food     string    `json:"food"`
	Calories int       `json:"calories"`
	Meal     string    `json:"meal_type"`
	Date     model.Day `json:"date"`
}

func (s *Server) handleAddCalories(w http.ResponseWriter, r *http.Request) {
	var req calorieRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	entry, out, err := s.session.LogFood(r.Context(), service.FoodInput{
		Food:     req.Food,
		Calories: req.Calories,
		Meal:     req.Meal,
		Day:      req.Date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.observe(metrics.LedgerNutrition, out)
	writeJSON(w, http.StatusCreated, outcomeResponse{Item: entry, Outcome: out})
}

func (s *Server) handleListCalories(w http.ResponseWriter, r *http.Request) {
	day, err := queryDay(r, "date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := service.CalorieEntryFilter{Day: day}
	if raw := r.URL.Query().Get("meal"); raw != "" {
		if filter.Meal, err = service.ParseMealType(raw); err != nil {
			writeError(w, r, err)
			return
		}
	}
	items, err := s.session.Nutrition.Entries(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type calorieTotalResponse struct {
	Date     model.Day `json:"date"`
	Calories int       `json:"calories"`
}

func (s *Server) handleCalorieTotal(w http.ResponseWriter, r *http.Request) {
	day, err := queryDay(r, "date")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if day.IsZero() {
		day = s.session.Date()
	}
	total, err := s.session.Nutrition.TotalForDate(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calorieTotalResponse{Date: day, Calories: total})
}

func (s *Server) handleRemoveCalories(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	removed, err := s.session.Nutrition.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !removed {
		writeError(w, r, fmt.Errorf("calorie entry %q: %w", id, service.ErrNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.session.Plans.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

type planRequest struct {
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Difficulty         string           `json:"difficulty"`
	TargetMuscleGroups []string         `json:"target_muscle_groups"`
	DurationMin        int              `json:"duration_min"`
	Exercises          []model.Exercise `json:"exercises"`
}

func (s *Server) handleAddPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	plan, err := s.session.Plans.AddCustom(r.Context(), service.PlanInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleCompletePlan(w http.ResponseWriter, r *http.Request) {
	plan, out, err := s.session.CompletePlan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.observe(metrics.LedgerWorkout, out)
	status := http.StatusCreated
	if !out.Recorded {
		status = http.StatusOK
	}
	writeJSON(w, status, outcomeResponse{Item: plan, Outcome: out})
}

type workoutStatusResponse struct {
	CompletedCount int      `json:"completed_count"`
	Streak         int      `json:"streak"`
	CompletedToday []string `json:"completed_today"`
}

func (s *Server) handleWorkoutStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		resp = workoutStatusResponse{CompletedToday: make([]string, 0)}
		err  error
	)
	if resp.CompletedCount, err = s.session.Workouts.CompletedCount(ctx); err != nil {
		writeError(w, r, err)
		return
	}
	if resp.Streak, err = s.session.Workouts.Streak(ctx); err != nil {
		writeError(w, r, err)
		return
	}
	plans, err := s.session.Plans.List(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, p := range plans {
		done, err := s.session.Workouts.IsCompletedToday(ctx, p.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if done {
			resp.CompletedToday = append(resp.CompletedToday, p.ID)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type liftRequest struct {
	Exercise string    `json:"exercise"`
	Weight   float64   `json:"weight"`
	Unit     string    `json:"unit"`
	Day      model.Day `json:"date"`
}

func (s *Server) handleRecordLift(w http.ResponseWriter, r *http.Request) {
	var req liftRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	lift, out, err := s.session.Strength.Record(r.Context(), service.LiftInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.observe(metrics.LedgerStrength, out)
	writeJSON(w, http.StatusCreated, outcomeResponse{Item: lift, Outcome: out})
}
