package notes

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/l10n"
	"github.com/farmhand-tools/modyard/internal/ui/features/common"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

// Handlers is the notes window controller. The host owns the note values;
// this controller only mirrors the last pushed collection state.
type Handlers struct {
	bridge   *bridge.Bridge
	relay    *l10n.Relay
	notifier *notifier.Notifier

	title  *l10n.Binding
	labels map[string]*l10n.Binding

	mu         sync.RWMutex
	collection bridge.CollectionInfo
	hasData    bool
}

// NewHandlers creates the controller and wires its bridge subscriptions.
func NewHandlers(b *bridge.Bridge, notify *notifier.Notifier) *Handlers {
	h := &Handlers{
		bridge:   b,
		relay:    l10n.NewRelay(b),
		notifier: notify,
		labels:   make(map[string]*l10n.Binding, len(host.NoteFields)),
	}

	h.title = h.relay.Bind("notes_title")
	for _, field := range host.NoteFields {
		h.labels[field] = h.relay.Bind("note_" + field)
	}

	b.Subscribe(bridge.ChannelCollectionInfo, h.onCollectionInfo)

	return h
}

func (h *Handlers) onCollectionInfo(payload any) {
	info, ok := payload.(bridge.CollectionInfo)
	if !ok {
		return
	}
	h.mu.Lock()
	h.collection = info
	h.hasData = info.ID != ""
	h.mu.Unlock()
	h.notifier.Broadcast(notifier.TopicNotes)
}

// NotesPage renders the notes window with full content.
func (h *Handlers) NotesPage(w http.ResponseWriter, r *http.Request) {
	page := common.Page(h.title.Text(), "/notes/updates", formComponent(h.buildView()))
	if err := common.Render(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// NotesPageUpdates is the window's long-lived SSE endpoint.
func (h *Handlers) NotesPageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(notifier.TopicNotes)
	defer h.notifier.Unsubscribe(notifier.TopicNotes, updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(formComponent(h.buildView())); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// SetField forwards one edited note field to the host. Exactly one
// message per edit; the refreshed state comes back as a push.
func (h *Handlers) SetField(w http.ResponseWriter, r *http.Request) {
	var signals FieldSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	collection := h.collection.ID
	h.mu.RUnlock()

	sse := datastar.NewSSE(w, r)
	if collection == "" {
		_ = sse.ConsoleError(fmt.Errorf("no collection loaded"))
		return
	}

	h.bridge.Send(bridge.ChannelSetNote, bridge.NoteChange{
		Collection: collection,
		Field:      signals.Field,
		Value:      signals.Value,
	})
}

func (h *Handlers) buildView() ViewData {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data := ViewData{
		Title:      h.title.Text(),
		Collection: h.collection.Name,
		HasData:    h.hasData,
	}
	if !data.HasData {
		return data
	}

	for _, field := range host.NoteFields {
		data.Fields = append(data.Fields, FieldView{
			Name:  field,
			Label: h.labels[field].Text(),
			Value: h.collection.Notes[field],
			Long:  field == "notes",
		})
	}
	return data
}
