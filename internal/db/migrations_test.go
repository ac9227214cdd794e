package db_test

import (
	"testing"

	"github.com/saadjs/maxout/internal/db"
	"github.com/saadjs/maxout/internal/model"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 4 {
		t.Fatalf("expected 4 migration versions, got %d", migrationCount)
	}

	var achievementCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM achievements`).Scan(&achievementCount); err != nil {
		t.Fatalf("count achievements: %v", err)
	}
	if achievementCount != len(model.Catalog()) {
		t.Fatalf("expected %d achievements, got %d", len(model.Catalog()), achievementCount)
	}

	var untrackedWithProgress int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM achievements WHERE id = ? AND progress IS NOT NULL`, string(model.FirstWorkout)).Scan(&untrackedWithProgress); err != nil {
		t.Fatalf("check first-workout progress: %v", err)
	}
	if untrackedWithProgress != 0 {
		t.Fatalf("expected first-workout to have no progress counter")
	}

	var planCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM workout_plans WHERE is_custom = 0`).Scan(&planCount); err != nil {
		t.Fatalf("count plans: %v", err)
	}
	if planCount != len(db.DefaultPlans()) {
		t.Fatalf("expected %d default plans, got %d", len(db.DefaultPlans()), planCount)
	}

	var profileCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM profile`).Scan(&profileCount); err != nil {
		t.Fatalf("count profile rows: %v", err)
	}
	if profileCount != 1 {
		t.Fatalf("expected a single profile row, got %d", profileCount)
	}
}

func TestCompletionKeyIsUniquePerPlanAndDay(t *testing.T) {
	t.Parallel()

	sqldb, err := db.OpenSession()
	if err != nil {
		t.Fatalf("open session db: %v", err)
	}
	defer sqldb.Close()

	for i := 0; i < 2; i++ {
		if _, err := sqldb.Exec(`INSERT OR IGNORE INTO workout_completions(plan_id, day) VALUES(?, ?)`, "plan-a", "2026-02-20"); err != nil {
			t.Fatalf("insert completion %d: %v", i+1, err)
		}
	}
	if _, err := sqldb.Exec(`INSERT OR IGNORE INTO workout_completions(plan_id, day) VALUES(?, ?)`, "plan-a-2026", "02-20"); err != nil {
		t.Fatalf("insert lookalike completion: %v", err)
	}

	var count int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM workout_completions`).Scan(&count); err != nil {
		t.Fatalf("count completions: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 distinct completions, got %d", count)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	first, err := db.OpenSession()
	if err != nil {
		t.Fatalf("open first session: %v", err)
	}
	defer first.Close()
	second, err := db.OpenSession()
	if err != nil {
		t.Fatalf("open second session: %v", err)
	}
	defer second.Close()

	if _, err := first.Exec(`INSERT INTO weight_entries(day, weight_kg) VALUES('2026-02-20', 80)`); err != nil {
		t.Fatalf("insert weight: %v", err)
	}
	var count int
	if err := second.QueryRow(`SELECT COUNT(1) FROM weight_entries`).Scan(&count); err != nil {
		t.Fatalf("count weights: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected second session to be empty, got %d rows", count)
	}
}
