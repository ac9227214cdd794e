package maxout

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/saadjs/maxout/internal/model"
	"github.com/saadjs/maxout/internal/service"
)

func parseDayFlag(value string) (model.Day, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.Day{}, nil
	}
	d, err := model.ParseDay(value)
	if err != nil {
		return model.Day{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return d, nil
}

// reportOutcome prints and logs the achievements a ledger write unlocked.
func reportOutcome(w io.Writer, ledger string, out service.Outcome) {
	fields := log.Fields{"ledger": ledger, "recorded": out.Recorded}
	if out.StreakComputed {
		fields["streak"] = out.Streak
	}
	log.WithFields(fields).Debug("ledger write")
	for _, id := range out.Unlocked {
		title := string(id)
		if def, ok := model.LookupAchievement(id); ok {
			title = def.Title
		}
		log.WithFields(log.Fields{"ledger": ledger, "achievement": id}).Info("achievement unlocked")
		fmt.Fprintf(w, "Achievement unlocked: %s\n", title)
	}
}

func progressLabel(a model.Achievement) string {
	if !a.Tracked() || a.Progress == nil {
		if a.Unlocked {
			return "done"
		}
		return "-"
	}
	return fmt.Sprintf("%d/%d", *a.Progress, *a.MaxProgress)
}
