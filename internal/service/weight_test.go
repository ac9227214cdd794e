package service_test

import (
	"testing"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightMilestoneThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		current  float64
		unlocked bool
	}{
		{name: "five percent", current: 95, unlocked: true},
		{name: "just short", current: 95.1, unlocked: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			clock := newTestClock()
			s := newTestSession(t, clock)
			ctx := t.Context()

			_, err := s.Weight.Append(ctx, model.WeightEntry{Day: clock.today().AddDays(-10), WeightKg: 100})
			require.NoError(t, err)
			out, err := s.Weight.Append(ctx, model.WeightEntry{Day: clock.today(), WeightKg: tc.current})
			require.NoError(t, err)

			assert.Equal(t, tc.unlocked, len(out.Unlocked) == 1)
			assert.Equal(t, tc.unlocked, getAchievement(t, s, model.WeightMilestone1).Unlocked)
		})
	}
}

func TestWeightMilestoneReached(t *testing.T) {
	t.Parallel()

	assert.True(t, service.WeightMilestoneReached(100, 95))
	assert.False(t, service.WeightMilestoneReached(100, 95.1))
	assert.False(t, service.WeightMilestoneReached(100, 105))
	assert.False(t, service.WeightMilestoneReached(0, 0))
}

func TestEmptyWeightLedger(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, newTestClock())
	ctx := t.Context()

	_, ok, err := s.Weight.Current(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Weight.Change(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	history, err := s.Weight.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.False(t, getAchievement(t, s, model.WeightMilestone1).Unlocked)
}

func TestWeightHistoryIsOrderedByDay(t *testing.T) {
	t.Parallel()
	clock := newTestClock()
	s := newTestSession(t, clock)
	ctx := t.Context()
	today := clock.today()

	entries := []model.WeightEntry{
		{Day: today, WeightKg: 82},
		{Day: today.AddDays(-3), WeightKg: 85},
		{Day: today, WeightKg: 81.5},
		{Day: today.AddDays(-1), WeightKg: 83},
	}
	for _, e := range entries {
		_, err := s.Weight.Append(ctx, e)
		require.NoError(t, err)
	}

	history, err := s.Weight.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, []float64{85, 83, 82, 81.5}, []float64{history[0].WeightKg, history[1].WeightKg, history[2].WeightKg, history[3].WeightKg})

	current, ok, err := s.Weight.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 81.5, current)

	change, ok, err := s.Weight.Change(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -3.5, change, 1e-9)
}

func TestLogWeightConvertsPoundsAndDefaultsToToday(t *testing.T) {
	t.Parallel()
	clock := newTestClock()
	s := newTestSession(t, clock)
	ctx := t.Context()

	entry, out, err := s.LogWeight(ctx, service.WeightInput{Weight: 180, Unit: "lb"})
	require.NoError(t, err)
	assert.True(t, out.Recorded)
	assert.Equal(t, clock.today(), entry.Day)
	assert.InDelta(t, 81.65, entry.WeightKg, 0.01)

	_, _, err = s.LogWeight(ctx, service.WeightInput{Weight: -1})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, _, err = s.LogWeight(ctx, service.WeightInput{Weight: 80, Unit: "stone"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	lb, err := service.WeightFromKg(entry.WeightKg, "lb")
	require.NoError(t, err)
	assert.InDelta(t, 180, lb, 1e-9)
}

func TestWeightAppendWithoutDayUsesToday(t *testing.T) {
	t.Parallel()
	clock := newTestClock()
	s := newTestSession(t, clock)
	ctx := t.Context()

	_, err := s.Weight.Append(ctx, model.WeightEntry{Day: clock.today().AddDays(-1), WeightKg: 100})
	require.NoError(t, err)
	out, err := s.Weight.Append(ctx, model.WeightEntry{WeightKg: 90})
	require.NoError(t, err)
	assert.Equal(t, []model.AchievementID{model.WeightMilestone1}, out.Unlocked)

	current, ok, err := s.Weight.Current(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 90.0, current)

	history, err := s.Weight.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, clock.today(), history[1].Day)
}

func TestWeightFromKgUnits(t *testing.T) {
	t.Parallel()

	kg, err := service.WeightFromKg(80, "")
	require.NoError(t, err)
	assert.Equal(t, 80.0, kg)

	lb, err := service.WeightFromKg(0.45359237, " LBS ")
	require.NoError(t, err)
	assert.InDelta(t, 1, lb, 1e-12)

	_, err = service.WeightFromKg(80, "stone")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
