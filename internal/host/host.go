// Package host implements the privileged side of the window bridges. It
// owns the already-computed data (collections, savegame analysis, notes,
// translations) and pushes snapshots to the companion windows; the windows
// never touch this state directly.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/pkg/core"
)

// Config holds construction options for a Local host.
type Config struct {
	Logger *slog.Logger

	// HomeDir is the prefix shortened to "~" by the path-mapping lookup.
	HomeDir string
}

// Local is the in-process host. All exported methods are safe for
// concurrent use.
type Local struct {
	logger  *slog.Logger
	homeDir string

	mu           sync.RWMutex
	snap         *Snapshot
	notes        *NoteStore
	translations map[string]string
	selection    []string
	fileLinks    map[string]string
	moveFolder   string
	bridges      map[bridge.Window]*bridge.Bridge

	closeFn  func(window string)
	updateFn func()
}

// New creates a host with no data loaded.
func New(cfg Config) *Local {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Local{
		logger:       logger,
		homeDir:      strings.TrimRight(cfg.HomeDir, "/"),
		notes:        NewNoteStore(),
		translations: make(map[string]string),
		fileLinks:    make(map[string]string),
		bridges:      make(map[bridge.Window]*bridge.Bridge),
	}
}

// OnWindowClose registers the callback invoked when a window asks to be
// closed. The host does not manage windows itself.
func (h *Local) OnWindowClose(fn func(window string)) {
	h.mu.Lock()
	h.closeFn = fn
	h.mu.Unlock()
}

// OnUpdate registers a hook fired after any state change a window might
// want to re-render for. The UI server points this at its SSE notifier.
func (h *Local) OnUpdate(fn func()) {
	h.mu.Lock()
	h.updateFn = fn
	h.mu.Unlock()
}

// Connect creates and registers the bridge for a window kind. Connecting
// the same kind twice replaces the previous bridge.
func (h *Local) Connect(win bridge.Window) *bridge.Bridge {
	b := bridge.New(win, h)
	h.mu.Lock()
	h.bridges[win] = b
	h.mu.Unlock()
	return b
}

// SetSnapshot replaces the host's data wholesale and pushes fresh state to
// every connected window.
func (h *Local) SetSnapshot(snap *Snapshot) {
	h.mu.Lock()
	h.snap = snap
	if snap != nil {
		if snap.Notes != nil {
			h.notes.Replace(snap.Notes)
		}
		h.translations = make(map[string]string, len(snap.Translations))
		for k, v := range snap.Translations {
			h.translations[k] = v
		}
	}
	h.mu.Unlock()

	h.PushAll()
}

// Receive handles the fire-and-forget window channels. Unknown channels
// and malformed payloads are dropped; nothing is reported back.
func (h *Local) Receive(win bridge.Window, ch bridge.Channel, payload any) {
	switch ch {
	case bridge.ChannelLog:
		h.handleLog(win, payload)
	case bridge.ChannelTranslate:
		h.handleTranslate(win, payload)
	case bridge.ChannelSetNote:
		h.handleSetNote(payload)
	case bridge.ChannelSelectMods:
		if keys, ok := payload.([]string); ok {
			h.mu.Lock()
			h.selection = append([]string(nil), keys...)
			h.mu.Unlock()
			h.logger.Debug("selection forwarded to main window", "count", len(keys))
		}
	case bridge.ChannelFileLink:
		if link, ok := payload.(bridge.FileLink); ok && link.Name != "" {
			h.mu.Lock()
			h.fileLinks[link.Name] = link.RealPath
			h.mu.Unlock()
		}
	case bridge.ChannelMoveFolder:
		if folder, ok := payload.(string); ok {
			h.mu.Lock()
			h.moveFolder = folder
			h.mu.Unlock()
		}
	case bridge.ChannelCloseWindow:
		name, _ := payload.(string)
		h.mu.RLock()
		fn := h.closeFn
		h.mu.RUnlock()
		if fn != nil {
			fn(name)
		}
	}
}

// Lookup answers the synchronous channels.
func (h *Local) Lookup(_ bridge.Window, ch bridge.Channel, payload any) (any, error) {
	if ch != bridge.ChannelHomePathMap {
		return nil, fmt.Errorf("channel %s has no synchronous handler", ch)
	}
	path, ok := payload.(string)
	if !ok {
		return nil, fmt.Errorf("home path lookup wants a string, got %T", payload)
	}
	return h.mapHomePath(path), nil
}

// mapHomePath shortens an absolute path under the configured home
// directory to its ~ form.
func (h *Local) mapHomePath(path string) string {
	if h.homeDir == "" || !strings.HasPrefix(path, h.homeDir) {
		return path
	}
	rest := path[len(h.homeDir):]
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return path
	}
	return "~" + rest
}

func (h *Local) handleLog(win bridge.Window, payload any) {
	msg, ok := payload.(bridge.LogMessage)
	if !ok {
		return
	}
	level := slog.LevelInfo
	switch strings.ToLower(msg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	h.logger.Log(context.Background(), level, msg.Text, "window", string(win), "source", msg.Source)
}

func (h *Local) handleTranslate(win bridge.Window, payload any) {
	key, ok := payload.(string)
	if !ok || key == "" {
		return
	}
	h.mu.RLock()
	text, found := h.translations[key]
	b := h.bridges[win]
	h.mu.RUnlock()

	if !found {
		text = key
	}
	if b != nil {
		b.Deliver(bridge.ChannelTranslateText, bridge.TranslatedText{Key: key, Text: text})
	}
}

func (h *Local) handleSetNote(payload any) {
	change, ok := payload.(bridge.NoteChange)
	if !ok || change.Collection == "" {
		return
	}
	h.notes.Set(change.Collection, change.Field, change.Value)
	h.logger.Debug("note stored", "collection", change.Collection, "field", change.Field)

	// The edit round-trips: windows re-render from the pushed state.
	h.PushCollectionInfo()
	h.notifyUpdate()
}

// PushAll pushes every current snapshot to the connected windows and
// triggers a localization refresh.
func (h *Local) PushAll() {
	h.PushCollectionInfo()
	h.PushSaveInfo()
	h.PushConfirmList()
	h.BroadcastL10nRefresh()
	h.notifyUpdate()
}

// PushCollectionInfo pushes the active collection and its notes to the
// save and notes windows.
func (h *Local) PushCollectionInfo() {
	h.mu.RLock()
	snap := h.snap
	saveBridge := h.bridges[bridge.WindowSave]
	notesBridge := h.bridges[bridge.WindowNotes]
	h.mu.RUnlock()

	if snap == nil {
		return
	}
	coll := snap.collection(snap.ActiveCollection)
	if coll == nil {
		return
	}

	info := bridge.CollectionInfo{
		ID:    coll.ID,
		Name:  coll.Name,
		Notes: h.notes.Get(coll.ID),
	}
	for _, b := range []*bridge.Bridge{saveBridge, notesBridge} {
		if b != nil {
			b.Deliver(bridge.ChannelCollectionInfo, info)
		}
	}
}

// PushSaveInfo pushes the savegame analysis snapshot to the save window.
func (h *Local) PushSaveInfo() {
	h.mu.RLock()
	snap := h.snap
	b := h.bridges[bridge.WindowSave]
	h.mu.RUnlock()

	if snap == nil || snap.Save == nil || b == nil {
		return
	}
	b.Deliver(bridge.ChannelSaveInfo, bridge.SaveInfo{
		Collection: snap.collection(snap.ActiveCollection),
		Save:       snap.Save,
	})
}

// PushConfirmList pushes the pending file list to the confirm window.
func (h *Local) PushConfirmList() {
	h.mu.RLock()
	snap := h.snap
	b := h.bridges[bridge.WindowConfirm]
	h.mu.RUnlock()

	if snap == nil || snap.Confirm == nil || b == nil {
		return
	}

	list := bridge.ConfirmList{Destination: snap.Confirm.Destination}
	for _, f := range snap.Confirm.Files {
		list.Files = append(list.Files, bridge.ConfirmFile{
			Name:   f.Name,
			Source: f.Source,
			Size:   f.Size,
		})
	}
	b.Deliver(bridge.ChannelConfirmList, list)
}

// BroadcastL10nRefresh tells every connected window to re-resolve its
// localization keys.
func (h *Local) BroadcastL10nRefresh() {
	h.mu.RLock()
	bridges := make([]*bridge.Bridge, 0, len(h.bridges))
	for _, b := range h.bridges {
		bridges = append(bridges, b)
	}
	h.mu.RUnlock()

	for _, b := range bridges {
		b.Deliver(bridge.ChannelL10nRefresh, nil)
	}
}

func (h *Local) notifyUpdate() {
	h.mu.RLock()
	fn := h.updateFn
	h.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Collections returns the loaded collections in snapshot order.
func (h *Local) Collections() []*core.Collection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return nil
	}
	return append([]*core.Collection(nil), h.snap.Collections...)
}

// ActiveCollectionID returns the id of the active collection, or "".
func (h *Local) ActiveCollectionID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.snap == nil {
		return ""
	}
	return h.snap.ActiveCollection
}

// NotesFor returns the full note field map for a collection.
func (h *Local) NotesFor(collection string) map[string]string {
	return h.notes.Get(collection)
}

// Selection returns the composite keys last forwarded for selection.
func (h *Local) Selection() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.selection...)
}

// MoveFolder returns the pending move destination, or "".
func (h *Local) MoveFolder() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.moveFolder
}

// FileLink returns the recorded real path for a file name, or "".
func (h *Local) FileLink(name string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.fileLinks[name]
}
