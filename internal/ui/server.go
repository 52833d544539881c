// Package ui provides the web server hosting the modyard companion
// windows.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
	"github.com/farmhand-tools/modyard/internal/ui/router"
)

// Server is the window server.
type Server struct {
	host         *host.Local
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	snapshotPath string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the window server.
type Config struct {
	Host          *host.Local
	Port          int
	Watch         bool
	SnapshotPath  string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new window server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		host:         cfg.Host,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		snapshotPath: cfg.SnapshotPath,
		logger:       logger,
		notifier:     notifier.New(),
	}

	// Host-side state changes (note edits, translation pushes) wake every
	// window; controllers additionally ping their own topic on delivery.
	s.host.OnUpdate(s.notifier.BroadcastAll)

	return s
}

// Serve starts the window server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting window server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.host, s.sessionStore, s.notifier, s.IsDev()); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	// Routes connected the window bridges; replay the current state so the
	// controllers start populated.
	s.host.PushAll()

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start snapshot watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchSnapshot(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down window server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	return true
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchSnapshot reloads the host when the snapshot file changes on disk.
// Editors replace files with rename+create, so the watch covers the
// containing directory and filters on the file name.
func (s *Server) watchSnapshot(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	snapshotAbs, err := filepath.Abs(s.snapshotPath)
	if err != nil {
		snapshotAbs = s.snapshotPath
	}
	if err := watcher.Add(filepath.Dir(snapshotAbs)); err != nil {
		s.logger.Error("failed to watch snapshot directory", "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != snapshotAbs {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reloadSnapshot()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadSnapshot re-reads the snapshot file and pushes it to the windows.
// A half-written or invalid file keeps the previous state.
func (s *Server) reloadSnapshot() {
	s.logger.Debug("snapshot changed, reloading", "file", s.snapshotPath)

	snap, err := host.ReadSnapshot(s.snapshotPath)
	if err != nil {
		s.logger.Error("snapshot reload failed", "error", err)
		return
	}

	s.host.SetSnapshot(snap)
}
