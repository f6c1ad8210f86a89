package cli

import (
	"github.com/mgreco/tempus/internal/repository"
	"github.com/mgreco/tempus/internal/service"
)

// App bundles the service and repository ports the commands depend on.
type App struct {
	Activities service.ActivityService
	Categories repository.CategoryRepo
	Tags       repository.TagRepo
	Entries    repository.TimeEntryRepo
	Usage      repository.AppUsageRepo
	Pomodoros  repository.PomodoroRepo

	// ConfirmBulk gates the confirmation prompt before destructive
	// multi-record operations.
	ConfirmBulk bool

	// IsInteractive reports whether stdin is a terminal; prompts are
	// skipped in pipelines.
	IsInteractive func() bool
}
