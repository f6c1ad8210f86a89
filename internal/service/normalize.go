package service

import (
	"github.com/mgreco/tempus/internal/domain"
)

// The normalizer maps each source table's native row into the unified
// shape. Only completed rows normalize: an in-progress manual timer is
// not an activity yet, so a nil end time yields nil.

// NormalizeTimeEntry projects a manual time entry.
func NormalizeTimeEntry(e *domain.TimeEntry, tags []domain.Tag) *domain.UnifiedActivity {
	if e.EndTime == nil {
		return nil
	}
	a := &domain.UnifiedActivity{
		ID:            e.ID,
		SourceType:    domain.SourceManual,
		Type:          domain.TypeTimeEntry,
		Title:         e.Task,
		StartTime:     e.StartTime,
		EndTime:       *e.EndTime,
		DurationSec:   e.DurationSec,
		CategoryID:    e.CategoryID,
		CategoryName:  e.CategoryName,
		CategoryColor: e.CategoryColor,
		Tags:          tags,
		Metadata: domain.ActivityMetadata{
			SourceID:    e.ID,
			SourceTable: domain.SourceManual.SourceTable(),
		},
		CreatedAt: e.CreatedAt,
	}
	finishNormalize(a)
	return a
}

// NormalizeAppUsage projects a passive capture. Browser captures surface
// the domain as their title; plain app captures the app name.
func NormalizeAppUsage(u *domain.AppUsage, tags []domain.Tag) *domain.UnifiedActivity {
	if u.EndTime == nil {
		return nil
	}
	activityType := domain.TypeApp
	title := u.AppName
	if u.IsBrowser {
		activityType = domain.TypeBrowser
		if u.Domain != "" {
			title = u.Domain
		}
	}
	a := &domain.UnifiedActivity{
		ID:            u.ID,
		SourceType:    domain.SourceAutomatic,
		Type:          activityType,
		Title:         title,
		StartTime:     u.StartTime,
		EndTime:       *u.EndTime,
		DurationSec:   u.DurationSec,
		CategoryID:    u.CategoryID,
		CategoryName:  u.CategoryName,
		CategoryColor: u.CategoryColor,
		Tags:          tags,
		Metadata: domain.ActivityMetadata{
			SourceID:    u.ID,
			SourceTable: domain.SourceAutomatic.SourceTable(),
			AppName:     u.AppName,
			WindowTitle: u.WindowTitle,
			Domain:      u.Domain,
			URL:         u.URL,
			IsBrowser:   u.IsBrowser,
			IsIdle:      u.IsIdle,
		},
		CreatedAt: u.CreatedAt,
	}
	finishNormalize(a)
	return a
}

// NormalizePomodoro projects a structured focus or break interval.
// Pomodoro sessions are not categorized.
func NormalizePomodoro(p *domain.PomodoroSession, tags []domain.Tag) *domain.UnifiedActivity {
	if p.EndTime == nil {
		return nil
	}
	activityType := domain.TypePomodoroFocus
	title := p.Label
	if p.SessionType == domain.SessionBreak {
		activityType = domain.TypePomodoroBreak
		if title == "" {
			title = "Break"
		}
	} else if title == "" {
		title = "Focus"
	}
	a := &domain.UnifiedActivity{
		ID:          p.ID,
		SourceType:  domain.SourcePomodoro,
		Type:        activityType,
		Title:       title,
		StartTime:   p.StartTime,
		EndTime:     *p.EndTime,
		DurationSec: p.DurationSec,
		Tags:        tags,
		Metadata: domain.ActivityMetadata{
			SourceID:    p.ID,
			SourceTable: domain.SourcePomodoro.SourceTable(),
			SessionType: p.SessionType,
			Completed:   p.Completed,
			Interrupted: p.Interrupted,
		},
		CreatedAt: p.CreatedAt,
	}
	finishNormalize(a)
	return a
}

// finishNormalize applies the shared tail of every projection: the
// editability policy and a derived duration for rows stored without one.
func finishNormalize(a *domain.UnifiedActivity) {
	a.EditableFields = domain.EditablePolicy(a.SourceType, a.Type)
	a.IsEditable = len(a.EditableFields) > 0
	if a.DurationSec <= 0 {
		a.DurationSec = a.DerivedDurationSec()
	}
	if a.Tags == nil {
		a.Tags = []domain.Tag{}
	}
}
