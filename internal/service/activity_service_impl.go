package service

import (
	"context"
	"time"

	"github.com/mgreco/tempus/internal/db"
	"github.com/mgreco/tempus/internal/repository"
)

// repoSet bundles the per-source repositories so transactional code paths
// can swap in tx-scoped instances.
type repoSet struct {
	entries   repository.TimeEntryRepo
	usage     repository.AppUsageRepo
	pomodoros repository.PomodoroRepo
	tags      repository.TagRepo
}

func txRepos(tx db.DBTX) repoSet {
	return repoSet{
		entries:   repository.NewSQLiteTimeEntryRepo(tx),
		usage:     repository.NewSQLiteAppUsageRepo(tx),
		pomodoros: repository.NewSQLitePomodoroRepo(tx),
		tags:      repository.NewSQLiteTagRepo(tx),
	}
}

type activityService struct {
	repos    repoSet
	uow      db.UnitOfWork
	observer UseCaseObserver

	searchLookbackDays      int
	searchQueryLookbackDays int
}

// Option configures optional service behavior.
type Option func(*activityService)

// WithObserver attaches a use-case observer.
func WithObserver(obs UseCaseObserver) Option {
	return func(s *activityService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithSearchLookback overrides the search windows: days for empty
// queries, queryDays when a search string is given.
func WithSearchLookback(days, queryDays int) Option {
	return func(s *activityService) {
		if days > 0 {
			s.searchLookbackDays = days
		}
		if queryDays > 0 {
			s.searchQueryLookbackDays = queryDays
		}
	}
}

// NewActivityService wires the reconciliation engine over the three source
// repositories, the tag store, and the transaction primitive.
func NewActivityService(
	entries repository.TimeEntryRepo,
	usage repository.AppUsageRepo,
	pomodoros repository.PomodoroRepo,
	tags repository.TagRepo,
	uow db.UnitOfWork,
	opts ...Option,
) ActivityService {
	s := &activityService{
		repos: repoSet{
			entries:   entries,
			usage:     usage,
			pomodoros: pomodoros,
			tags:      tags,
		},
		uow:                     uow,
		observer:                NoopUseCaseObserver{},
		searchLookbackDays:      30,
		searchQueryLookbackDays: 90,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe emits one use-case event with structured context.
func (s *activityService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		OpID:      newOpID(),
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}
