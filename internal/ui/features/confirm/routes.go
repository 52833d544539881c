// Package confirm provides the file copy confirmation dialog.
package confirm

import (
	"github.com/go-chi/chi/v5"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

// SetupRoutes connects the confirm dialog to the host and mounts its
// routes.
func SetupRoutes(router chi.Router, h *host.Local, notify *notifier.Notifier) error {
	handlers := NewHandlers(h.Connect(bridge.WindowConfirm), notify)

	router.Get("/confirm", handlers.ConfirmPage)
	router.Get("/confirm/updates", handlers.ConfirmPageUpdates)
	router.Post("/confirm/link", handlers.Link)
	router.Post("/confirm/accept", handlers.Accept)
	router.Post("/confirm/cancel", handlers.Cancel)

	return nil
}
