package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mgreco/tempus/internal/domain"
	"github.com/mgreco/tempus/internal/repository"
)

// parseTimeFlag accepts either a date (2006-01-02) or a full RFC3339
// timestamp. Bare dates are interpreted as UTC midnight.
func parseTimeFlag(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD or RFC3339)", s)
	}
	return t, nil
}

// windowFromFlags resolves --from/--to, defaulting to the current day.
func windowFromFlags(from, to string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := now.Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	if from != "" {
		t, err := parseTimeFlag(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if to != "" {
		t, err := parseTimeFlag(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %s is not before end %s", start, end)
	}
	return start, end, nil
}

// rangeFromFlags resolves the start/end of a new record from --from/--to
// and/or --for. With only --for the record ends now; with --from and --for
// it starts there and runs for the given duration.
func rangeFromFlags(from, to, dur string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if from != "" {
		if start, err = parseTimeFlag(from); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		if end, err = parseTimeFlag(to); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if dur != "" {
		d, err := time.ParseDuration(dur)
		if err != nil || d <= 0 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid duration %q", dur)
		}
		switch {
		case start.IsZero() && end.IsZero():
			end = time.Now().UTC().Truncate(time.Second)
			start = end.Add(-d)
		case end.IsZero():
			end = start.Add(d)
		case start.IsZero():
			start = end.Add(-d)
		}
	}
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("need --from and --to, or --for")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is not before end %s", start, end)
	}
	return start, end, nil
}

func parseSource(s string) (domain.SourceType, error) {
	if !domain.ValidSourceTypes[s] {
		return "", fmt.Errorf("invalid source %q (want manual, automatic, or pomodoro)", s)
	}
	return domain.SourceType(s), nil
}

// parseKeys builds composite activity keys from id arguments plus the
// shared --source flag.
func parseKeys(args []string, source domain.SourceType) ([]domain.ActivityKey, error) {
	keys := make([]domain.ActivityKey, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid activity id %q", arg)
		}
		keys = append(keys, domain.ActivityKey{ID: id, SourceType: source})
	}
	return keys, nil
}

// parseIDList parses a comma-separated id list.
func parseIDList(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// confirmDestructive prompts before a destructive operation. Returns true
// without prompting when confirmation is disabled, stdin is not a
// terminal, or --yes was passed.
func confirmDestructive(app *App, skip bool, message string) (bool, error) {
	if skip || !app.ConfirmBulk || app.IsInteractive == nil || !app.IsInteractive() {
		return true, nil
	}
	confirmed := false
	err := huh.NewConfirm().
		Title(message).
		Affirmative("Proceed").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt: %w", err)
	}
	return confirmed, nil
}

// resolveCategory maps a category name to its id. Categories must already
// exist; "" means none.
func resolveCategory(ctx context.Context, app *App, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	cat, err := app.Categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("unknown category %q (create it with: tempus category add)", name)
		}
		return nil, err
	}
	return &cat.ID, nil
}

// resolveTags maps a comma-separated tag name list to ids, creating tags
// that do not exist yet.
func resolveTags(ctx context.Context, app *App, names string) ([]int64, error) {
	if names == "" {
		return nil, nil
	}
	var ids []int64
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := app.Tags.GetTagByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			tag, err = app.Tags.CreateTag(ctx, name, "")
		}
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func formatDuration(sec int64) string {
	d := time.Duration(sec) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", sec)
}
