package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

func achievementID(r *http.Request) model.AchievementID {
	return model.AchievementID(mux.Vars(r)["id"])
}

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	filter, err := service.ParseAchievementFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.session.Achievements.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements": service.FilterAchievements(items, filter),
		"summary":      service.SummarizeAchievements(items),
	})
}

func (s *Server) handleGetAchievement(w http.ResponseWriter, r *http.Request) {
	id := achievementID(r)
	a, ok, err := s.session.Achievements.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, fmt.Errorf("achievement %q: %w", id, service.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type unlockResponse struct {
	Changed     bool              `json:"changed"`
	Achievement model.Achievement `json:"achievement"`
}

// Unknown ids are a no-op in the store; the API still answers 404 for them.
func (s *Server) respondAchievementChange(w http.ResponseWriter, r *http.Request, id model.AchievementID, changed bool) {
	a, ok, err := s.session.Achievements.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, fmt.Errorf("achievement %q: %w", id, service.ErrNotFound))
		return
	}
	if changed {
		s.metricsManager.CounterUnlocks.WithLabelValues(string(id)).Inc()
		log.WithField("achievement", id).Info("achievement unlocked")
	}
	writeJSON(w, http.StatusOK, unlockResponse{Changed: changed, Achievement: a})
}

func (s *Server) handleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	id := achievementID(r)
	changed, err := s.session.Achievements.Unlock(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.respondAchievementChange(w, r, id, changed)
}

type progressRequest struct {
	Progress int `json:"progress"`
}

func (s *Server) handleAchievementProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	id := achievementID(r)
	unlocked, err := s.session.Achievements.UpdateProgress(r.Context(), id, req.Progress)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.respondAchievementChange(w, r, id, unlocked)
}
