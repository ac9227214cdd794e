package maxout

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/maxout/internal/service"
)

var testNow = time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)

// newTestApp returns an app pinned to testNow with a quiet config file.
func newTestApp(t *testing.T) *app {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maxout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: error\nsession:\n  prompt: \"> \"\n"), 0o600))

	a := newApp(service.WithClock(service.ClockFunc(func() time.Time { return testNow })))
	a.configPath = path
	t.Cleanup(a.close)
	return a
}

func runCLI(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newRootCmd(a)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, newTestApp(t), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "achievements")
	assert.Contains(t, out, "shell")
}

func TestVersionSkipsSession(t *testing.T) {
	a := newTestApp(t)
	out, err := runCLI(t, a, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "maxout dev"))
	assert.Nil(t, a.session)
}

func TestMissingConfigFileFails(t *testing.T) {
	a := newApp()
	a.configPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := runCLI(t, a, "today")
	require.Error(t, err)
}

func TestWeightCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := runCLI(t, a, "weight", "add", "--weight", "80", "--date", "2026-02-18")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged 80.00 kg on 2026-02-18")

	out, err = runCLI(t, a, "weight", "add", "--weight", "74.9")
	require.NoError(t, err)
	assert.Contains(t, out, "on 2026-02-20")
	assert.Contains(t, out, "Achievement unlocked: Weight Milestone")

	out, err = runCLI(t, a, "weight", "list", "--unit", "lb")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-02-18\t176.37\tlb")

	_, err = runCLI(t, a, "weight", "add", "--weight=-1")
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = runCLI(t, a, "weight", "add", "--weight", "80", "--date", "18-02-2026")
	require.Error(t, err)
}

func TestFoodCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := runCLI(t, a, "food", "add", "--food", "oatmeal", "--calories", "350", "--meal", "breakfast")
	require.NoError(t, err)
	assert.Contains(t, out, "Added oatmeal (350 kcal, breakfast)")
	assert.Contains(t, out, "Tracking streak: 1 day(s)")

	_, err = runCLI(t, a, "food", "add", "--food", "salad", "--calories", "400", "--meal", "lunch")
	require.NoError(t, err)

	out, err = runCLI(t, a, "food", "total")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-02-20: 750 kcal")

	out, err = runCLI(t, a, "food", "list", "--meal", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "salad")
	assert.NotContains(t, out, "oatmeal")

	_, err = runCLI(t, a, "food", "rm", "no-such-entry")
	require.Error(t, err)

	_, err = runCLI(t, a, "food", "add", "--food", "water", "--calories", "0")
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestWorkoutAndAchievementCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := runCLI(t, a, "workout", "plans")
	require.NoError(t, err)
	assert.Contains(t, out, "strength-1")

	out, err = runCLI(t, a, "workout", "complete", "strength-1")
	require.NoError(t, err)
	assert.Contains(t, out, "streak: 1 day(s)")
	assert.Contains(t, out, "Achievement unlocked: First Workout")

	out, err = runCLI(t, a, "workout", "complete", "strength-1")
	require.NoError(t, err)
	assert.Contains(t, out, "already completed today")

	_, err = runCLI(t, a, "workout", "complete", "nope")
	require.ErrorIs(t, err, service.ErrNotFound)

	out, err = runCLI(t, a, "achievements", "--filter", "unlocked")
	require.NoError(t, err)
	assert.Contains(t, out, "Unlocked 1/5 (20%)")
	assert.Contains(t, out, "first-workout")
	assert.NotContains(t, out, "calorie-master")

	out, err = runCLI(t, a, "achievements", "--filter", "locked")
	require.NoError(t, err)
	assert.Contains(t, out, "streak-3\tDedicated Trainee\t1/3")

	_, err = runCLI(t, a, "achievements", "--filter", "maybe")
	require.Error(t, err)
}

func TestStrengthCommandUnlocksPowerUp(t *testing.T) {
	a := newTestApp(t)

	_, err := runCLI(t, a, "strength", "record", "--exercise", "Bench Press", "--weight", "100", "--date", "2026-02-01")
	require.NoError(t, err)
	out, err := runCLI(t, a, "strength", "record", "--exercise", "bench press", "--weight", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Achievement unlocked: Power Up")
}

func TestProfileAndTodayCommands(t *testing.T) {
	a := newTestApp(t)

	_, err := runCLI(t, a, "profile", "set")
	require.Error(t, err)

	out, err := runCLI(t, a, "profile", "set", "--name", "Sam", "--goal-weight", "75", "--calorie-goal", "2100")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated")

	out, err = runCLI(t, a, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Sam")
	assert.Contains(t, out, "Goal weight: 75.00 kg")
	assert.Contains(t, out, "Daily calorie goal: 2100 kcal")

	_, err = runCLI(t, a, "food", "add", "--food", "pasta", "--calories", "600")
	require.NoError(t, err)

	out, err = runCLI(t, a, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Date: 2026-02-20")
	assert.Contains(t, out, "Intake: 600 / 2100 kcal (remaining 1500)")
	assert.Contains(t, out, "Weight: not logged")
	assert.Contains(t, out, "In progress: calorie-master")
}

func TestChatCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := runCLI(t, a, "chat", "how", "many", "calories", "today?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Aki: "))

	out, err = runCLI(t, a, "chat", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Hi! I'm Aki")
	assert.Contains(t, out, "You: how many calories today?")

	_, err = runCLI(t, a, "chat", "clear")
	require.NoError(t, err)
	out, err = runCLI(t, a, "chat", "history")
	require.NoError(t, err)
	assert.NotContains(t, out, "how many calories today?")

	out, err = runCLI(t, a, "motivate", "--context", "missed_workout")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestExportCommand(t *testing.T) {
	a := newTestApp(t)
	_, err := runCLI(t, a, "food", "add", "--food", "banana", "--calories", "105")
	require.NoError(t, err)

	out, err := runCLI(t, a, "export", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id,date,meal_type,calories,food\n"))
	assert.Contains(t, out, ",2026-02-20,snack,105,banana")

	path := filepath.Join(t.TempDir(), "export.json")
	out, err = runCLI(t, a, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported data to "+path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"food": "banana"`)

	_, err = runCLI(t, a, "export", "--format", "xml")
	require.Error(t, err)
}
