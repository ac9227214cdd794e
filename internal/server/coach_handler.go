package server

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Message model.ChatMessage `json:"message"`
	Reply   model.ChatMessage `json:"reply"`
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	msg, reply, err := s.session.Trainer.Send(r.Context(), req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, chatResponse{Message: msg, Reply: reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.session.Trainer.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Trainer.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": s.session.Trainer.Motivation(r.URL.Query().Get("context")),
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.session.Profile.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type profileRequest struct {
	Name             *string  `json:"name"`
	GoalWeight       *float64 `json:"goal_weight"`
	GoalWeightUnit   string   `json:"goal_weight_unit"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := s.session.Profile.Update(r.Context(), service.ProfileUpdate(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	status, err := s.session.Today(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		data, err := s.session.Export(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, data)
	case "csv":
		entries, err := s.session.Nutrition.Entries(r.Context(), service.CalorieEntryFilter{})
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="calories.csv"`)
		if err := service.WriteCaloriesCSV(w, entries); err != nil {
			log.Errorf("write csv export: %s", err)
		}
	default:
		writeError(w, r, fmt.Errorf("%w: unsupported format %q (use json or csv)", service.ErrInvalidInput, format))
	}
}
