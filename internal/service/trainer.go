package service

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/maxout/internal/model"
)

// Picker returns an index in [0, n).
type Picker func(n int) int

type keywordReplies struct {
	keyword string
	replies []string
}

// Keywords are tried in order; the first one contained in the message wins.
var trainerReplies = []keywordReplies{
	{
		keyword: "workout",
		replies: []string{
			"Looking to get in a workout today? Great! Have you checked out our workout plans?",
			"Remember to warm up before your workout and cool down after!",
			"Consistency is key to seeing results. Even a 15-minute workout is better than nothing!",
		},
	},
	{
		keyword: "calories",
		replies: []string{
			"Tracking calories is a great way to stay accountable. Have you logged your meals today?",
			"Remember that quality matters just as much as quantity when it comes to calories.",
			"Try to balance your macros - protein, carbs, and healthy fats are all important!",
		},
	},
	{
		keyword: "weight",
		replies: []string{
			"Weight fluctuations are normal! Focus on the trend over weeks, not daily changes.",
			"Muscle is denser than fat, so the scale isn't always the best indicator of progress.",
			"Consistent habits lead to lasting weight changes. You've got this!",
		},
	},
	{
		keyword: "motivation",
		replies: []string{
			"Remember why you started! Your future self will thank you for the effort you put in today.",
			"\"The only bad workout is the one that didn't happen.\"",
			"Progress takes time. Be patient with yourself and celebrate small victories!",
		},
	},
}

var defaultReplies = []string{
	"That's interesting! How can I help you with your fitness goals today?",
	"Great! Remember to stay hydrated and get enough rest between workouts.",
	"I'm here to support your fitness journey. What specific area would you like help with?",
	"Keep pushing yourself! Every day is a chance to get better.",
}

var welcomeMessages = []string{
	"Hi! I'm Aki, your virtual fitness trainer!",
	"I'm here to help you with your fitness journey. Ask me anything about workouts, nutrition, or tracking your progress!",
}

var motivationMessages = map[string][]string{
	"general": {
		"You're doing great, keep showing up!",
		"Every rep counts. Stay consistent.",
		"The hardest part is starting. You're already ahead.",
	},
	"missed_workout": {
		"One day off won't stop progress. Let's get back to it!",
		"Missed a day? Shake it off and go again tomorrow.",
	},
	"achievement": {
		"Amazing work! You crushed it today.",
		"You're leveling up. Keep pushing!",
	},
}

// Trainer is the scripted chat partner. Replies are canned and chosen by
// keyword; there is no language understanding behind them.
type Trainer struct {
	db        *sql.DB
	clock     Clock
	pick      Picker
	startedAt time.Time
}

func NewTrainer(db *sql.DB, clock Clock, pick Picker) *Trainer {
	if clock == nil {
		clock = SystemClock
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &Trainer{db: db, clock: clock, pick: pick, startedAt: clock.Now()}
}

func (t *Trainer) ready() error {
	if t == nil || t.db == nil {
		return fmt.Errorf("trainer: %w", ErrNotInitialized)
	}
	return nil
}

// Send stores the user's message together with the trainer's reply.
func (t *Trainer) Send(ctx context.Context, text string) (model.ChatMessage, model.ChatMessage, error) {
	if err := t.ready(); err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ChatMessage{}, model.ChatMessage{}, invalidf("message text is required")
	}
	now := t.clock.Now()
	userMsg := model.ChatMessage{ID: uuid.NewString(), Sender: model.SenderUser, Text: text, SentAt: now}
	botMsg := model.ChatMessage{ID: uuid.NewString(), Sender: model.SenderBot, Text: t.reply(text), SentAt: now}

	err := withTx(ctx, t.db, func(tx *sql.Tx) error {
		for _, m := range []model.ChatMessage{userMsg, botMsg} {
			if _, err := tx.ExecContext(ctx, `INSERT INTO chat_messages(id, sender, text, sent_at) VALUES(?, ?, ?, ?)`,
				m.ID, string(m.Sender), m.Text, m.SentAt.Format(time.RFC3339Nano)); err != nil {
				return fmt.Errorf("insert chat message: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return model.ChatMessage{}, model.ChatMessage{}, err
	}
	return userMsg, botMsg, nil
}

// History returns the welcome messages followed by the conversation.
func (t *Trainer) History(ctx context.Context) ([]model.ChatMessage, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	items := t.welcome()
	rows, err := t.db.QueryContext(ctx, `SELECT id, sender, text, sent_at FROM chat_messages ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			m         model.ChatMessage
			sender    string
			sentAtRaw string
		)
		if err := rows.Scan(&m.ID, &sender, &m.Text, &sentAtRaw); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.Sender = model.Sender(sender)
		if m.SentAt, err = time.Parse(time.RFC3339Nano, sentAtRaw); err != nil {
			return nil, fmt.Errorf("parse sent_at: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return items, nil
}

// Clear drops the conversation; the welcome messages remain.
func (t *Trainer) Clear(ctx context.Context) error {
	if err := t.ready(); err != nil {
		return err
	}
	if _, err := t.db.ExecContext(ctx, `DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}

// Motivation picks a message for topic; unknown topics fall back to
// general.
func (t *Trainer) Motivation(topic string) string {
	messages, ok := motivationMessages[normalizeName(topic)]
	if !ok {
		messages = motivationMessages["general"]
	}
	return messages[t.pick(len(messages))]
}

func (t *Trainer) reply(text string) string {
	lower := strings.ToLower(text)
	for _, kr := range trainerReplies {
		if strings.Contains(lower, kr.keyword) {
			return kr.replies[t.pick(len(kr.replies))]
		}
	}
	return defaultReplies[t.pick(len(defaultReplies))]
}

func (t *Trainer) welcome() []model.ChatMessage {
	out := make([]model.ChatMessage, 0, len(welcomeMessages))
	for i, text := range welcomeMessages {
		out = append(out, model.ChatMessage{
			ID:     fmt.Sprintf("welcome-%d", i+1),
			Sender: model.SenderBot,
			Text:   text,
			SentAt: t.startedAt,
		})
	}
	return out
}
