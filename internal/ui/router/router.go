// Package router sets up HTTP routes for the window server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/farmhand-tools/modyard/internal/host"
	confirmFeature "github.com/farmhand-tools/modyard/internal/ui/features/confirm"
	notesFeature "github.com/farmhand-tools/modyard/internal/ui/features/notes"
	savegameFeature "github.com/farmhand-tools/modyard/internal/ui/features/savegame"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
	"github.com/farmhand-tools/modyard/internal/ui/resources"
)

// SetupRoutes configures all routes for the window server.
func SetupRoutes(
	router chi.Router,
	h *host.Local,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Window routes
	if err := savegameFeature.SetupRoutes(router, h, sessionStore, notify); err != nil {
		return err
	}

	if err := notesFeature.SetupRoutes(router, h, notify); err != nil {
		return err
	}

	if err := confirmFeature.SetupRoutes(router, h, notify); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
