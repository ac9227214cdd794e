package service_test

import (
	"testing"

	"github.com/saadjs/maxout/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerRepliesByFirstMatchingKeyword(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, newTestClock())
	ctx := t.Context()

	cases := map[string]string{
		"Any WORKOUT tips?":      "Looking to get in a workout today? Great! Have you checked out our workout plans?",
		"my weight and calories": "Tracking calories is a great way to stay accountable. Have you logged your meals today?",
		"weight is stuck":        "Weight fluctuations are normal! Focus on the trend over weeks, not daily changes.",
		"I need motivation":      "Remember why you started! Your future self will thank you for the effort you put in today.",
		"hello there":            "That's interesting! How can I help you with your fitness goals today?",
	}
	for text, want := range cases {
		user, bot, err := s.Trainer.Send(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, model.SenderUser, user.Sender)
		assert.Equal(t, model.SenderBot, bot.Sender)
		assert.Equal(t, want, bot.Text, text)
	}
}

func TestTrainerHistoryAndClear(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, newTestClock())
	ctx := t.Context()

	history, err := s.Trainer.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "welcome-1", history[0].ID)

	_, _, err = s.Trainer.Send(ctx, "  ")
	require.Error(t, err)

	user, bot, err := s.Trainer.Send(ctx, "hi")
	require.NoError(t, err)

	history, err = s.Trainer.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, user.ID, history[2].ID)
	assert.Equal(t, bot.ID, history[3].ID)
	assert.True(t, user.SentAt.Equal(history[2].SentAt))

	require.NoError(t, s.Trainer.Clear(ctx))
	history, err = s.Trainer.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestTrainerMotivation(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, newTestClock())

	assert.Equal(t, "One day off won't stop progress. Let's get back to it!", s.Trainer.Motivation("missed_workout"))
	assert.Equal(t, "Amazing work! You crushed it today.", s.Trainer.Motivation(" Achievement "))
	assert.Equal(t, "You're doing great, keep showing up!", s.Trainer.Motivation("unknown"))
}
