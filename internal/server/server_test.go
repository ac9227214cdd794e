package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/saadjs/maxout/internal/config"
	"github.com/saadjs/maxout/internal/db"
	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 2 * time.Second,
		},
		Log:       config.LogConfig{Level: "error", Format: "text"},
		RateLimit: config.RateLimitConfig{Disabled: true},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type",
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()
	sqldb, err := db.OpenSession()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })

	session := service.NewSession(sqldb,
		service.WithClock(service.ClockFunc(func() time.Time { return testNow })),
		service.WithPicker(func(int) int { return 0 }),
	)
	s, err := NewServer(NewServerParams{
		Config:      cfg,
		Session:     session,
		VersionInfo: "test",
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doJSON(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

type outcomeBody struct {
	Item    json.RawMessage `json:"item"`
	Outcome service.Outcome `json:"outcome"`
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, body := doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, string(body))
}

func TestCompletePlanFlow(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/plans/strength-1/complete", nil)
	require.Equal(t, http.StatusCreated, code, string(body))
	var out outcomeBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Outcome.Recorded)
	assert.Equal(t, 1, out.Outcome.Streak)
	assert.Equal(t, []model.AchievementID{model.FirstWorkout}, out.Outcome.Unlocked)

	code, body = doJSON(t, http.MethodPost, ts.URL+"/api/v1/plans/strength-1/complete", nil)
	require.Equal(t, http.StatusOK, code)
	out = outcomeBody{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Outcome.Recorded)

	code, _ = doJSON(t, http.MethodPost, ts.URL+"/api/v1/plans/rowing-2/complete", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/workouts/status", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"completed_count":1,"streak":1,"completed_today":["strength-1"]}`, string(body))

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/achievements?filter=unlocked", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Achievements []model.Achievement        `json:"achievements"`
		Summary      service.AchievementSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Achievements, 1)
	assert.Equal(t, model.FirstWorkout, list.Achievements[0].ID)
	assert.Equal(t, 1, list.Summary.Unlocked)
}

func TestCalorieEndpoints(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{
		"food": "chicken bowl", "calories": 640, "meal_type": "lunch",
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var out outcomeBody
	require.NoError(t, json.Unmarshal(body, &out))
	var entry model.CalorieEntry
	require.NoError(t, json.Unmarshal(out.Item, &entry))
	assert.Equal(t, "2026-02-20", entry.Day.String())
	assert.Equal(t, 1, out.Outcome.Streak)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/calories/total?date=2026-02-20", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"date":"2026-02-20","calories":640}`, string(body))

	code, _ = doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{"food": "", "calories": 10, "meal_type": "lunch"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{"food": "x", "calories": 10, "meal_type": "lunch", "extra": true})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/v1/calories?date=20-02-2026", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/calories/"+entry.ID, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/calories/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestWeightAndTodayEndpoints(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/api/v1/weight", map[string]any{"weight": 100, "date": "2026-01-01"})
	require.Equal(t, http.StatusCreated, code)
	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/weight", map[string]any{"weight": 95})
	require.Equal(t, http.StatusCreated, code)
	var out outcomeBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []model.AchievementID{model.WeightMilestone1}, out.Outcome.Unlocked)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/weight/current", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"set":true,"weight_kg":95,"change_kg":-5}`, string(body))

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/today", nil)
	require.Equal(t, http.StatusOK, code)
	var status service.TodayStatus
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "2026-02-20", status.Date)
	assert.Equal(t, 95.0, status.CurrentWeightKg)
	assert.Equal(t, 1, status.Achievements.Unlocked)
}

func TestAchievementEndpoints(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/achievements/streak-3/progress", map[string]int{"progress": 9})
	require.Equal(t, http.StatusOK, code)
	var resp unlockResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.True(t, resp.Changed)
	require.NotNil(t, resp.Achievement.Progress)
	assert.Equal(t, 3, *resp.Achievement.Progress)

	code, body = doJSON(t, http.MethodPost, ts.URL+"/api/v1/achievements/streak-3/unlock", nil)
	require.Equal(t, http.StatusOK, code)
	resp = unlockResponse{}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.False(t, resp.Changed)

	code, _ = doJSON(t, http.MethodPost, ts.URL+"/api/v1/achievements/moonwalk/unlock", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/v1/achievements/moonwalk", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/v1/achievements?filter=secret", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChatProfileAndStrengthEndpoints(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/chat", map[string]string{"text": "what about calories?"})
	require.Equal(t, http.StatusCreated, code)
	var chat chatResponse
	require.NoError(t, json.Unmarshal(body, &chat))
	assert.Equal(t, model.SenderBot, chat.Reply.Sender)
	assert.Contains(t, chat.Reply.Text, "Tracking calories")

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/chat", nil)
	require.Equal(t, http.StatusOK, code)
	var history []model.ChatMessage
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history, 4)

	code, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/chat", nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/motivation?context=achievement", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Amazing work")

	code, body = doJSON(t, http.MethodPatch, ts.URL+"/api/v1/profile", map[string]any{"name": "Robin", "daily_calorie_goal": 2200})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"name":"Robin","daily_calorie_goal":2200}`, string(body))

	code, _ = doJSON(t, http.MethodPost, ts.URL+"/api/v1/strength", map[string]any{"exercise": "row", "weight": 50})
	require.Equal(t, http.StatusCreated, code)
	code, body = doJSON(t, http.MethodPost, ts.URL+"/api/v1/strength", map[string]any{"exercise": "row", "weight": 60})
	require.Equal(t, http.StatusCreated, code)
	var out outcomeBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []model.AchievementID{model.PowerUp}, out.Outcome.Unlocked)
}

func TestMetricsEndpointReportsUnlocks(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/api/v1/plans/hiit-1/complete", nil)
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `maxout_api_achievement_unlocks{achievement="first-workout"} 1`)
	assert.Contains(t, string(body), `maxout_api_ledger_appends{ledger="workout"} 1`)
}

func TestPastDayFoodKeepsStreakGauge(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{"food": "eggs", "calories": 300, "meal_type": "breakfast"})
	require.Equal(t, http.StatusCreated, code)
	code, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{"food": "soup", "calories": 250, "meal_type": "dinner", "date": "2026-02-10"})
	require.Equal(t, http.StatusCreated, code)
	var out outcomeBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Outcome.StreakComputed)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `maxout_api_streak_days{ledger="nutrition"} 1`)
	assert.Contains(t, string(body), `maxout_api_ledger_appends{ledger="nutrition"} 2`)
}

func TestRateLimitedAPI(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	_, ts := newTestServer(t, cfg)

	code, _ := doJSON(t, http.MethodGet, ts.URL+"/api/v1/plans", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/v1/plans", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	http.DefaultClient.CloseIdleConnections()
}

func TestNewServerRequiresSession(t *testing.T) {
	_, err := NewServer(NewServerParams{Config: testConfig()})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not initialized"))
}

func TestExportEndpoint(t *testing.T) {
	_, ts := newTestServer(t, testConfig())

	code, _ := doJSON(t, http.MethodPost, ts.URL+"/api/v1/calories", map[string]any{"food": "toast", "calories": 180, "meal_type": "breakfast"})
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, http.MethodGet, ts.URL+"/api/v1/export", nil)
	require.Equal(t, http.StatusOK, code)
	var data service.ExportData
	require.NoError(t, json.Unmarshal(body, &data))
	require.Len(t, data.Calories, 1)
	assert.Equal(t, "toast", data.Calories[0].Food)

	code, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/export?format=csv", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), ",2026-02-20,breakfast,180,toast")

	code, _ = doJSON(t, http.MethodGet, ts.URL+"/api/v1/export?format=xml", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
