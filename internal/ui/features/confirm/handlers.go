package confirm

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/l10n"
	"github.com/farmhand-tools/modyard/internal/ui/features/common"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

// windowName identifies this window in close requests.
const windowName = "confirm"

// Handlers is the confirm dialog controller.
type Handlers struct {
	bridge   *bridge.Bridge
	relay    *l10n.Relay
	notifier *notifier.Notifier

	title *l10n.Binding

	mu   sync.RWMutex
	list bridge.ConfirmList
	has  bool
}

// NewHandlers creates the controller and wires its bridge subscriptions.
func NewHandlers(b *bridge.Bridge, notify *notifier.Notifier) *Handlers {
	h := &Handlers{
		bridge:   b,
		relay:    l10n.NewRelay(b),
		notifier: notify,
	}

	h.title = h.relay.Bind("confirm_title")

	b.Subscribe(bridge.ChannelConfirmList, h.onConfirmList)

	return h
}

func (h *Handlers) onConfirmList(payload any) {
	list, ok := payload.(bridge.ConfirmList)
	if !ok {
		return
	}
	h.mu.Lock()
	h.list = list
	h.has = len(list.Files) > 0
	h.mu.Unlock()
	h.notifier.Broadcast(notifier.TopicConfirm)
}

// ConfirmPage renders the confirm dialog with full content.
func (h *Handlers) ConfirmPage(w http.ResponseWriter, r *http.Request) {
	page := common.Page(h.title.Text(), "/confirm/updates", dialogComponent(h.buildView()))
	if err := common.Render(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ConfirmPageUpdates is the dialog's long-lived SSE endpoint.
func (h *Handlers) ConfirmPageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(notifier.TopicConfirm)
	defer h.notifier.Unsubscribe(notifier.TopicConfirm, updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(dialogComponent(h.buildView())); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Link asks the main window to reveal the file's real path.
func (h *Handlers) Link(w http.ResponseWriter, r *http.Request) {
	var signals LinkSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	var source string
	for _, f := range h.list.Files {
		if f.Name == signals.Name {
			source = f.Source
			break
		}
	}
	h.mu.RUnlock()

	sse := datastar.NewSSE(w, r)
	if source == "" {
		_ = sse.ConsoleError(fmt.Errorf("unknown file %q", signals.Name))
		return
	}

	h.bridge.Send(bridge.ChannelFileLink, bridge.FileLink{
		Name:     signals.Name,
		RealPath: source,
	})
}

// Accept confirms the copy into the pending destination and closes the
// dialog.
func (h *Handlers) Accept(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	destination := h.list.Destination
	h.mu.RUnlock()

	sse := datastar.NewSSE(w, r)
	if destination == "" {
		_ = sse.ConsoleError(fmt.Errorf("no pending copy"))
		return
	}

	h.bridge.Send(bridge.ChannelMoveFolder, destination)
	h.bridge.Send(bridge.ChannelCloseWindow, windowName)
}

// Cancel closes the dialog without confirming.
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	datastar.NewSSE(w, r)
	h.bridge.Send(bridge.ChannelCloseWindow, windowName)
}

func (h *Handlers) buildView() ViewData {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data := ViewData{
		Title:   h.title.Text(),
		HasData: h.has,
	}
	if !data.HasData {
		return data
	}

	data.Destination = h.displayPath(h.list.Destination)
	for _, f := range h.list.Files {
		data.Files = append(data.Files, FileView{
			Name:   f.Name,
			Source: h.displayPath(f.Source),
			Size:   formatSize(f.Size),
		})
	}
	return data
}

// displayPath shortens a path through the host's synchronous home-path
// lookup.
func (h *Handlers) displayPath(path string) string {
	mapped := h.bridge.Request(bridge.ChannelHomePathMap, path)
	if s, ok := mapped.(string); ok {
		return s
	}
	return path
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
