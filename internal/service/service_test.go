package service

import (
	"database/sql"
	"testing"

	"github.com/mgreco/tempus/internal/repository"
	"github.com/mgreco/tempus/internal/testutil"
)

// testEnv wires real repositories over an in-memory database, the way
// production wiring does.
type testEnv struct {
	db         *sql.DB
	entries    *repository.SQLiteTimeEntryRepo
	usage      *repository.SQLiteAppUsageRepo
	pomodoros  *repository.SQLitePomodoroRepo
	categories *repository.SQLiteCategoryRepo
	tags       *repository.SQLiteTagRepo
	svc        ActivityService
}

func setupService(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	env := &testEnv{
		db:         database,
		entries:    repository.NewSQLiteTimeEntryRepo(database),
		usage:      repository.NewSQLiteAppUsageRepo(database),
		pomodoros:  repository.NewSQLitePomodoroRepo(database),
		categories: repository.NewSQLiteCategoryRepo(database),
		tags:       repository.NewSQLiteTagRepo(database),
	}
	env.svc = NewActivityService(
		env.entries, env.usage, env.pomodoros, env.tags,
		testutil.NewTestUoW(database),
	)
	return env
}
