package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cadence/internal/config"
	"cadence/internal/content"
	"cadence/internal/logging"
	"cadence/internal/persist"
	"cadence/internal/session"
	"cadence/internal/views"
)

// Workspace serializes every operation behind one mutex, so concurrent
// callers observe whole operations only.
type Workspace struct {
	mu sync.Mutex

	store   *content.Store
	gate    *session.Gate
	backend persist.Backend
	writer  *persist.Writer
	logger  *slog.Logger
	now     func() time.Time

	pageSize  int
	shareBase string

	filter    views.Filter
	page      int
	viewMode  views.ViewMode
	selection selection
}

// Option customizes Open.
type Option func(*options)

type options struct {
	backend persist.Backend
	now     func() time.Time
}

// WithBackend replaces the backend selected by the configuration.
func WithBackend(backend persist.Backend) Option {
	return func(o *options) { o.backend = backend }
}

// WithClock overrides the time source for timestamps and generated ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Open builds a workspace from cfg and hydrates it from the stored snapshot.
// Missing data yields an empty workspace; unreadable or invalid data is
// logged and also yields an empty workspace.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Workspace, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	backend := o.backend
	if backend == nil {
		opened, err := openBackend(cfg, logging.NewComponentLogger(logger, "workspace"), o.now())
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		backend = opened
	}

	w := &Workspace{
		store:     content.NewStore(content.WithClock(o.now), content.WithLogger(logger)),
		gate:      session.NewGate(logger),
		backend:   backend,
		logger:    logging.NewComponentLogger(logger, "workspace"),
		now:       o.now,
		pageSize:  cfg.Views.PageSize,
		shareBase: cfg.Views.ShareBaseURL,
		page:      1,
		viewMode:  views.DefaultViewMode,
	}
	w.gate.OnLogout(w.clearSelections)
	w.hydrate(ctx, cfg.Storage.Namespace)
	w.writer = persist.NewWriter(backend, logger)
	return w, nil
}

// openBackend opens the configured backend. A state database that is corrupt
// or from an incompatible schema is moved aside and replaced by a fresh one.
func openBackend(cfg *config.Config, logger *slog.Logger, now time.Time) (persist.Backend, error) {
	backend, err := persist.Open(cfg)
	if err == nil || !persist.Unusable(err) {
		return backend, err
	}
	path := cfg.StatePath()
	moved, qerr := persist.Quarantine(path, now)
	if qerr != nil {
		return nil, errors.Join(err, qerr)
	}
	logging.WarnWithContext(logger, "stored workspace ignored", "snapshot_load_failed",
		logging.String(logging.FieldBackend, cfg.Storage.Backend),
		logging.String(logging.FieldNamespace, cfg.Storage.Namespace),
		logging.String("path", path),
		logging.String("moved_to", moved),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "inspect the moved file; a fresh store replaces it"),
		logging.String(logging.FieldImpact, "workspace starts empty"))
	return persist.Open(cfg)
}

func (w *Workspace) hydrate(ctx context.Context, namespace string) {
	attrs := []logging.Attr{
		logging.String(logging.FieldBackend, w.backend.Kind()),
		logging.String(logging.FieldNamespace, namespace),
		logging.String("path", w.backend.Path()),
	}
	warn := func(err error) {
		logging.WarnWithContext(w.logger, "stored workspace ignored", "snapshot_load_failed",
			append(attrs,
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "inspect or remove the state file; it is replaced on the next change"),
				logging.String(logging.FieldImpact, "workspace starts empty"))...)
	}

	data, err := w.backend.Load(ctx)
	if errors.Is(err, persist.ErrNoSnapshot) {
		w.logger.Debug("no stored workspace", logging.Args(attrs...)...)
		return
	}
	if err != nil {
		warn(err)
		return
	}
	snapshot, err := persist.Decode(data)
	if err != nil {
		warn(err)
		return
	}
	mode := views.DefaultViewMode
	if snapshot.ViewMode != "" {
		mode, err = views.ParseViewMode(snapshot.ViewMode)
		if err != nil {
			warn(err)
			return
		}
	}
	if err := w.store.Restore(snapshot.Channels, snapshot.VideoProjects); err != nil {
		warn(err)
		return
	}
	w.viewMode = mode
	w.logger.Debug("workspace restored",
		append(logging.Args(attrs...),
			logging.Int("channel_count", len(snapshot.Channels)),
			logging.Int("project_count", len(snapshot.VideoProjects)))...)
}

// persistLocked submits the current projection. Callers hold w.mu.
func (w *Workspace) persistLocked() {
	data, err := persist.Encode(persist.Snapshot{
		Channels:      w.store.Channels(),
		VideoProjects: w.store.Projects(),
		ViewMode:      string(w.viewMode),
	})
	if err != nil {
		logging.ErrorWithContext(w.logger, "encode snapshot", "snapshot_encode_failed", logging.Error(err))
		return
	}
	if err := w.writer.Submit(data); err != nil {
		logging.WarnWithContext(w.logger, "snapshot dropped", "snapshot_submit_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "change is kept in memory only"))
	}
}

// Flush blocks until every submitted snapshot has been written.
func (w *Workspace) Flush() error {
	return w.writer.Flush()
}

// Close writes any pending snapshot and releases the backend.
func (w *Workspace) Close() error {
	return w.writer.Close()
}

// Health reports the state of the storage backend.
func (w *Workspace) Health(ctx context.Context) (persist.Health, error) {
	return persist.CheckHealth(ctx, w.backend)
}

// ShareBaseURL is the configured base for project share links.
func (w *Workspace) ShareBaseURL() string {
	return w.shareBase
}
