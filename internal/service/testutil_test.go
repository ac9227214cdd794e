package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/maxout/internal/db"
	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by every service of a test session.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advanceDays(n int) {
	c.now = c.now.AddDate(0, 0, n)
}

func (c *testClock) today() model.Day {
	return model.DayOf(c.now)
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)}
}

func newTestSession(t *testing.T, clock *testClock) *service.Session {
	t.Helper()
	sqldb, err := db.OpenSession()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	return service.NewSession(sqldb,
		service.WithClock(clock),
		service.WithPicker(func(int) int { return 0 }),
	)
}

func getAchievement(t *testing.T, s *service.Session, id model.AchievementID) model.Achievement {
	t.Helper()
	a, ok, err := s.Achievements.Get(t.Context(), id)
	require.NoError(t, err)
	require.True(t, ok, "achievement %s missing", id)
	return a
}

func progressOf(t *testing.T, s *service.Session, id model.AchievementID) int {
	t.Helper()
	a := getAchievement(t, s, id)
	require.NotNil(t, a.Progress, "achievement %s has no progress", id)
	return *a.Progress
}
