package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// outcomeResponse pairs a written record with what the write changed.
type outcomeResponse struct {
	Item    any             `json:"item"`
	Outcome service.Outcome `json:"outcome"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

// writeError maps validation failures to 400, missing records to 404 and
// everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.WithError(err).Errorf("%s %s failed", r.Method, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode request body: %s", service.ErrInvalidInput, err)
	}
	return nil
}

func queryDay(r *http.Request, key string) (model.Day, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return model.Day{}, nil
	}
	d, err := model.ParseDay(raw)
	if err != nil {
		return model.Day{}, fmt.Errorf("%w: %s", service.ErrInvalidInput, err)
	}
	return d, nil
}

// observe logs and counts what a ledger write changed.
func (s *Server) observe(ledger string, out service.Outcome) {
	unlocked := make([]string, 0, len(out.Unlocked))
	for _, id := range out.Unlocked {
		unlocked = append(unlocked, string(id))
		log.WithFields(log.Fields{"ledger": ledger, "achievement": id}).Info("achievement unlocked")
	}
	s.metricsManager.ObserveOutcome(ledger, out.Recorded, unlocked)
	if out.StreakComputed {
		s.metricsManager.ObserveStreak(ledger, out.Streak)
		log.WithFields(log.Fields{"ledger": ledger, "streak": out.Streak}).Debug("streak refreshed")
	}
}
