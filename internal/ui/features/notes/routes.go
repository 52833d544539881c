// Package notes provides the per-collection notes window.
package notes

import (
	"github.com/go-chi/chi/v5"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

// SetupRoutes connects the notes window to the host and mounts its routes.
func SetupRoutes(router chi.Router, h *host.Local, notify *notifier.Notifier) error {
	handlers := NewHandlers(h.Connect(bridge.WindowNotes), notify)

	router.Get("/notes", handlers.NotesPage)
	router.Get("/notes/updates", handlers.NotesPageUpdates)
	router.Post("/notes/field", handlers.SetField)

	return nil
}
