package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/maxout/internal/model"
)

// Achievements is the session's achievement store. Unknown ids are ignored
// by every mutation; the catalog is closed.
type Achievements struct {
	db *sql.DB
}

func NewAchievements(db *sql.DB) *Achievements {
	return &Achievements{db: db}
}

func (s *Achievements) ready() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("achievement store: %w", ErrNotInitialized)
	}
	return nil
}

// Unlock marks the achievement unlocked and reports whether it was locked.
func (s *Achievements) Unlock(ctx context.Context, id model.AchievementID) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return unlockAchievement(ctx, s.db, id)
}

// UpdateProgress stores progress clamped to [0, max] and unlocks once the
// clamped value reaches max. It reports whether this call unlocked.
func (s *Achievements) UpdateProgress(ctx context.Context, id model.AchievementID, progress int) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	var unlocked bool
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		unlocked, err = updateAchievementProgress(ctx, tx, id, progress)
		return err
	})
	return unlocked, err
}

func (s *Achievements) List(ctx context.Context) ([]model.Achievement, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, unlocked, progress FROM achievements ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	items := make([]model.Achievement, 0)
	for rows.Next() {
		var (
			id       string
			unlocked bool
			progress sql.NullInt64
		)
		if err := rows.Scan(&id, &unlocked, &progress); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		def, ok := model.LookupAchievement(model.AchievementID(id))
		if !ok {
			continue
		}
		items = append(items, toAchievement(def, unlocked, progress))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return items, nil
}

func (s *Achievements) Get(ctx context.Context, id model.AchievementID) (model.Achievement, bool, error) {
	if err := s.ready(); err != nil {
		return model.Achievement{}, false, err
	}
	def, ok := model.LookupAchievement(id)
	if !ok {
		return model.Achievement{}, false, nil
	}
	var (
		unlocked bool
		progress sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `SELECT unlocked, progress FROM achievements WHERE id = ?`, string(id)).Scan(&unlocked, &progress)
	if err == sql.ErrNoRows {
		return model.Achievement{}, false, nil
	}
	if err != nil {
		return model.Achievement{}, false, fmt.Errorf("get achievement %q: %w", id, err)
	}
	return toAchievement(def, unlocked, progress), true, nil
}

func toAchievement(def model.AchievementDef, unlocked bool, progress sql.NullInt64) model.Achievement {
	a := model.Achievement{AchievementDef: def, Unlocked: unlocked}
	if def.MaxProgress != nil && progress.Valid {
		v := int(progress.Int64)
		a.Progress = &v
	}
	return a
}

func unlockAchievement(ctx context.Context, q querier, id model.AchievementID) (bool, error) {
	res, err := q.ExecContext(ctx, `
UPDATE achievements
SET unlocked = 1, unlocked_at = CURRENT_TIMESTAMP
WHERE id = ? AND unlocked = 0
`, string(id))
	if err != nil {
		return false, fmt.Errorf("unlock achievement %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected: %w", err)
	}
	return affected > 0, nil
}

// updateAchievementProgress leaves unlocked achievements untouched: their
// progress is frozen at the value held when they unlocked.
func updateAchievementProgress(ctx context.Context, q querier, id model.AchievementID, progress int) (bool, error) {
	def, ok := model.LookupAchievement(id)
	if !ok || def.MaxProgress == nil {
		return false, nil
	}
	limit := *def.MaxProgress

	var unlocked bool
	err := q.QueryRowContext(ctx, `SELECT unlocked FROM achievements WHERE id = ?`, string(id)).Scan(&unlocked)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load achievement %q: %w", id, err)
	}
	if unlocked {
		return false, nil
	}

	clamped := clampProgress(progress, limit)
	if clamped >= limit {
		if _, err := q.ExecContext(ctx, `
UPDATE achievements
SET progress = ?, unlocked = 1, unlocked_at = CURRENT_TIMESTAMP
WHERE id = ?
`, clamped, string(id)); err != nil {
			return false, fmt.Errorf("complete achievement %q: %w", id, err)
		}
		return true, nil
	}
	if _, err := q.ExecContext(ctx, `UPDATE achievements SET progress = ? WHERE id = ?`, clamped, string(id)); err != nil {
		return false, fmt.Errorf("update achievement %q progress: %w", id, err)
	}
	return false, nil
}

func clampProgress(progress, limit int) int {
	if progress < 0 {
		return 0
	}
	if progress > limit {
		return limit
	}
	return progress
}

type AchievementFilter string

const (
	FilterAll      AchievementFilter = "all"
	FilterUnlocked AchievementFilter = "unlocked"
	FilterLocked   AchievementFilter = "locked"
)

func ParseAchievementFilter(value string) (AchievementFilter, error) {
	switch f := AchievementFilter(normalizeName(value)); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnlocked, FilterLocked:
		return f, nil
	default:
		return "", invalidf("unknown achievement filter %q (use all, unlocked or locked)", strings.TrimSpace(value))
	}
}

func FilterAchievements(items []model.Achievement, f AchievementFilter) []model.Achievement {
	out := make([]model.Achievement, 0, len(items))
	for _, a := range items {
		switch {
		case f == FilterUnlocked && !a.Unlocked:
			continue
		case f == FilterLocked && a.Unlocked:
			continue
		}
		out = append(out, a)
	}
	return out
}

// InProgress returns locked achievements that have made some progress.
func InProgress(items []model.Achievement) []model.Achievement {
	out := make([]model.Achievement, 0)
	for _, a := range items {
		if a.InProgress() {
			out = append(out, a)
		}
	}
	return out
}

type AchievementSummary struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

func SummarizeAchievements(items []model.Achievement) AchievementSummary {
	s := AchievementSummary{Total: len(items)}
	for _, a := range items {
		if a.Unlocked {
			s.Unlocked++
		}
	}
	if s.Total > 0 {
		s.Percent = (s.Unlocked*100 + s.Total/2) / s.Total
	}
	return s
}
