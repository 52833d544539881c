// Package savegame provides the savegame checker window.
package savegame

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

// SetupRoutes connects the savegame window to the host and mounts its
// routes.
func SetupRoutes(
	router chi.Router,
	h *host.Local,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
) error {
	handlers := NewHandlers(h.Connect(bridge.WindowSave), sessionStore, notify)

	router.Get("/", handlers.SavePage)
	router.Get("/savegame/updates", handlers.SavePageUpdates)
	router.Post("/savegame/filter", handlers.Filter)
	router.Post("/savegame/select", handlers.Select)

	return nil
}
