package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS achievements (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  unlocked INTEGER NOT NULL DEFAULT 0 CHECK(unlocked IN (0, 1)),
  progress INTEGER CHECK(progress IS NULL OR progress >= 0),
  unlocked_at DATETIME
);

CREATE TABLE IF NOT EXISTS weight_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  day TEXT NOT NULL,
  weight_kg REAL NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_weight_entries_day ON weight_entries(day);

CREATE TABLE IF NOT EXISTS calorie_entries (
  id TEXT PRIMARY KEY,
  day TEXT NOT NULL,
  food TEXT NOT NULL,
  calories INTEGER NOT NULL,
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast', 'lunch', 'dinner', 'snack')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_calorie_entries_day ON calorie_entries(day);

CREATE TABLE IF NOT EXISTS workout_completions (
  plan_id TEXT NOT NULL,
  day TEXT NOT NULL,
  completed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(plan_id, day)
);

CREATE INDEX IF NOT EXISTS idx_workout_completions_day ON workout_completions(day);
`,
	},
	{
		version: 2,
		name:    "workout_plans",
		sql: `
CREATE TABLE IF NOT EXISTS workout_plans (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  difficulty TEXT NOT NULL CHECK(difficulty IN ('beginner', 'intermediate', 'advanced')),
  target_muscle_groups_json TEXT NOT NULL DEFAULT '[]',
  duration_min INTEGER NOT NULL CHECK(duration_min > 0),
  exercises_json TEXT NOT NULL DEFAULT '[]',
  is_custom INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 3,
		name:    "strength_and_chat",
		sql: `
CREATE TABLE IF NOT EXISTS lifts (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  exercise TEXT NOT NULL,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  day TEXT NOT NULL,
  recorded_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lifts_exercise ON lifts(exercise);

CREATE TABLE IF NOT EXISTS chat_messages (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  sender TEXT NOT NULL CHECK(sender IN ('user', 'bot')),
  text TEXT NOT NULL,
  sent_at TEXT NOT NULL
);
`,
	},
	{
		version: 4,
		name:    "profile",
		sql: `
CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK(id = 1),
  name TEXT NOT NULL,
  goal_weight_kg REAL CHECK(goal_weight_kg IS NULL OR goal_weight_kg > 0),
  daily_calorie_goal INTEGER NOT NULL CHECK(daily_calorie_goal >= 0),
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return seed(db)
}
