package service

import (
	"context"
	"fmt"

	"github.com/saadjs/maxout/internal/model"
)

// workoutStreakWindow bounds how far back the workout streak walk looks.
const workoutStreakWindow = 7

// consecutiveDays counts days present in days, walking back from today and
// stopping at the first missing day. window <= 0 leaves the walk unbounded.
func consecutiveDays(days map[string]struct{}, from model.Day, window int) int {
	streak := 0
	for d := from; window <= 0 || streak < window; d = d.AddDays(-1) {
		if _, ok := days[d.String()]; !ok {
			break
		}
		streak++
	}
	return streak
}

// loadDistinctDays runs a query returning one day column and collects the
// distinct values.
func loadDistinctDays(ctx context.Context, q querier, query string, args ...any) (map[string]struct{}, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load tracked days: %w", err)
	}
	defer rows.Close()

	days := map[string]struct{}{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan tracked day: %w", err)
		}
		days[day] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracked days: %w", err)
	}
	return days, nil
}
