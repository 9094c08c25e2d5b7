package app

import (
	"context"
	"log/slog"

	"timetable/internal/adapters/perf"
	"timetable/internal/adapters/storage"
	"timetable/internal/adapters/storage/kv"
	storetimetable "timetable/internal/adapters/storage/timetable"
	"timetable/internal/application/repository"
	"timetable/internal/application/session"
	"timetable/internal/config"
)

// App is one wired editing session: storage, repository and selection.
type App struct {
	Config    *config.Config
	Collector *perf.Collector
	Adapter   *storetimetable.Adapter
	Session   *session.Session

	db *storage.TimedDB
}

// New opens storage and loads the collection. Storage that is disabled or
// cannot be opened leaves the session running in memory only.
// PRE: cfg has passed Validate
// POST: Session is ready; Close releases the database
func New(ctx context.Context, cfg *config.Config, observer storetimetable.Observer) *App {
	a := &App{
		Config:    cfg,
		Collector: perf.NewCollector(cfg.Perf.RingSize),
	}

	var store kv.Store
	if db := a.openDB(ctx); db != nil {
		a.db = db
		store = kv.NewSQLiteStore(db)
	}

	a.Adapter = storetimetable.NewAdapter(store,
		storetimetable.WithKey(cfg.Storage.Key),
		storetimetable.WithCollector(a.Collector),
		storetimetable.WithObserver(observer),
	)
	repo := repository.New(ctx, a.Adapter)
	a.Session = session.New(repo)

	slog.Info("app_event", "event", "session_started",
		"version", BuildVersion(),
		"storage", a.Adapter.Available(),
		"load_status", string(repo.LastOutcome().Status),
		"timetables", len(repo.Timetables()),
	)
	return a
}

func (a *App) openDB(ctx context.Context) *storage.TimedDB {
	cfg := a.Config.Storage
	if !cfg.Enabled() {
		slog.Info("app_event", "event", "storage_disabled")
		return nil
	}

	raw, err := storage.Open(cfg.Path, cfg.BusyTimeoutMs)
	if err != nil {
		slog.Warn("app_event", "event", "storage_unavailable", "path", cfg.Path, "error", err)
		return nil
	}
	db := storage.NewTimedDB(raw, a.Collector, a.Config.Perf.SlowQueryMs)
	if err := storage.MigrateDB(ctx, db); err != nil {
		db.Close()
		slog.Warn("app_event", "event", "storage_unavailable", "path", cfg.Path, "error", err)
		return nil
	}
	return db
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
