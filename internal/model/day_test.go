package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfDropsTimeOfDay(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC-5", -5*3600)
	d := DayOf(time.Date(2026, 2, 20, 23, 45, 0, 0, loc))
	assert.Equal(t, "2026-02-20", d.String())
	assert.Equal(t, NewDay(2026, time.February, 20), d)
}

func TestDayArithmetic(t *testing.T) {
	t.Parallel()
	d := NewDay(2026, time.March, 1)
	assert.Equal(t, "2026-02-28", d.AddDays(-1).String())
	assert.Equal(t, 1, d.DaysSince(d.AddDays(-1)))
	assert.True(t, d.AddDays(-1).Before(d))
	assert.True(t, d.Equal(NewDay(2026, time.March, 1)))
}

func TestParseDay(t *testing.T) {
	t.Parallel()
	d, err := ParseDay(" 2026-02-20 ")
	require.NoError(t, err)
	assert.Equal(t, NewDay(2026, time.February, 20), d)

	_, err = ParseDay("20/02/2026")
	require.Error(t, err)
}

func TestDayJSON(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(WeightEntry{Day: NewDay(2026, time.February, 20), WeightKg: 80})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-02-20","weight_kg":80}`, string(raw))

	var entry WeightEntry
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, NewDay(2026, time.February, 20), entry.Day)

	var zero Day
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	assert.True(t, zero.IsZero())
}
