package testutil

import (
	"time"

	"github.com/mgreco/tempus/internal/domain"
)

// Fixture times are truncated to whole seconds so values survive the
// RFC3339 round trip through storage.

// BaseTime returns a stable, second-aligned anchor for test windows.
func BaseTime() time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

// Time entry options

type EntryOption func(*domain.TimeEntry)

func WithEntryRange(start, end time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start
		e.EndTime = &end
		e.DurationSec = int64(end.Sub(start) / time.Second)
	}
}

func WithEntryInProgress(start time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start
		e.EndTime = nil
		e.DurationSec = 0
	}
}

func WithEntryCategory(id int64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.CategoryID = &id
	}
}

func WithEntryLegacyCategory(name string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.CategoryID = nil
		e.Category = name
	}
}

func WithEntryDuration(sec int64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.DurationSec = sec
	}
}

// NewTestEntry creates a completed one-hour manual entry starting at BaseTime.
func NewTestEntry(task string, opts ...EntryOption) *domain.TimeEntry {
	start := BaseTime()
	end := start.Add(time.Hour)
	e := &domain.TimeEntry{
		Task:        task,
		StartTime:   start,
		EndTime:     &end,
		DurationSec: 3600,
		CreatedAt:   start,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// App usage options

type UsageOption func(*domain.AppUsage)

func WithUsageRange(start, end time.Time) UsageOption {
	return func(u *domain.AppUsage) {
		u.StartTime = start
		u.EndTime = &end
		u.DurationSec = int64(end.Sub(start) / time.Second)
	}
}

func WithBrowser(domainName, url string) UsageOption {
	return func(u *domain.AppUsage) {
		u.IsBrowser = true
		u.Domain = domainName
		u.URL = url
	}
}

func WithIdle() UsageOption {
	return func(u *domain.AppUsage) {
		u.IsIdle = true
	}
}

func WithUsageCategory(id int64) UsageOption {
	return func(u *domain.AppUsage) {
		u.CategoryID = &id
	}
}

func WithWindowTitle(title string) UsageOption {
	return func(u *domain.AppUsage) {
		u.WindowTitle = title
	}
}

// NewTestUsage creates a completed 30-minute capture starting at BaseTime.
func NewTestUsage(appName string, opts ...UsageOption) *domain.AppUsage {
	start := BaseTime()
	end := start.Add(30 * time.Minute)
	u := &domain.AppUsage{
		AppName:     appName,
		StartTime:   start,
		EndTime:     &end,
		DurationSec: 1800,
		CreatedAt:   start,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Pomodoro options

type PomodoroOption func(*domain.PomodoroSession)

func WithPomodoroRange(start, end time.Time) PomodoroOption {
	return func(p *domain.PomodoroSession) {
		p.StartTime = start
		p.EndTime = &end
		p.DurationSec = int64(end.Sub(start) / time.Second)
	}
}

func WithLabel(label string) PomodoroOption {
	return func(p *domain.PomodoroSession) {
		p.Label = label
	}
}

func WithInterrupted() PomodoroOption {
	return func(p *domain.PomodoroSession) {
		p.Interrupted = true
		p.Completed = false
	}
}

// NewTestPomodoro creates a completed 25-minute session starting at BaseTime.
func NewTestPomodoro(sessionType domain.SessionType, opts ...PomodoroOption) *domain.PomodoroSession {
	start := BaseTime()
	end := start.Add(25 * time.Minute)
	p := &domain.PomodoroSession{
		SessionType: sessionType,
		Completed:   true,
		StartTime:   start,
		EndTime:     &end,
		DurationSec: 1500,
		CreatedAt:   start,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
