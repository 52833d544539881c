package savegame

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/l10n"
	derive "github.com/farmhand-tools/modyard/internal/savegame"
	"github.com/farmhand-tools/modyard/internal/ui/features/common"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
)

const (
	sessionName   = "modyard"
	filterSession = "save_filters"
)

// labelSet holds the window's localization bindings.
type labelSet struct {
	title  *l10n.Binding
	badges map[derive.Badge]*l10n.Binding
}

// Handlers is the savegame window controller. All derived state lives
// here, rebuilt wholesale on every push, and is reset to zero between
// pushes rather than carried over.
type Handlers struct {
	bridge       *bridge.Bridge
	relay        *l10n.Relay
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	labels       labelSet

	mu         sync.RWMutex
	collection bridge.CollectionInfo
	analysis   *derive.Analysis
	saveName   string
	singleFarm bool
	hasSave    bool
	filters    FilterSignals
}

// NewHandlers creates the controller and wires its bridge subscriptions.
func NewHandlers(b *bridge.Bridge, sessionStore sessions.Store, notify *notifier.Notifier) *Handlers {
	h := &Handlers{
		bridge:       b,
		relay:        l10n.NewRelay(b),
		sessionStore: sessionStore,
		notifier:     notify,
	}

	h.labels.title = h.relay.Bind("save_check_title")
	h.labels.badges = make(map[derive.Badge]*l10n.Binding, len(derive.AllBadges))
	for _, badge := range derive.AllBadges {
		h.labels.badges[badge] = h.relay.Bind("badge_" + string(badge))
	}

	b.Subscribe(bridge.ChannelSaveInfo, h.onSaveInfo)
	b.Subscribe(bridge.ChannelCollectionInfo, h.onCollectionInfo)

	return h
}

// onSaveInfo rebuilds the analysis from the pushed snapshot. Previous
// records are discarded, never merged.
func (h *Handlers) onSaveInfo(payload any) {
	info, ok := payload.(bridge.SaveInfo)
	if !ok {
		return
	}

	analysis := derive.Analyze(info.Collection, info.Save)

	h.mu.Lock()
	h.analysis = analysis
	h.hasSave = info.Save != nil
	h.saveName = ""
	h.singleFarm = false
	if info.Save != nil {
		h.saveName = info.Save.Name
		h.singleFarm = info.Save.SingleFarm
	}
	h.mu.Unlock()

	for _, e := range analysis.Errors {
		h.bridge.Send(bridge.ChannelLog, bridge.LogMessage{
			Level: "warn", Source: "savegame", Text: e,
		})
	}

	h.notifier.Broadcast(notifier.TopicSave)
}

func (h *Handlers) onCollectionInfo(payload any) {
	info, ok := payload.(bridge.CollectionInfo)
	if !ok {
		return
	}
	h.mu.Lock()
	h.collection = info
	h.mu.Unlock()
	h.notifier.Broadcast(notifier.TopicSave)
}

// SavePage renders the savegame window with full content. The session's
// stored filters become the window's active filters.
func (h *Handlers) SavePage(w http.ResponseWriter, r *http.Request) {
	filters := h.loadFilters(r)
	h.setFilters(filters)
	page := common.Page(h.labels.title.Text(), "/savegame/updates", listComponent(h.buildView(filters)))
	if err := common.Render(w, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SavePageUpdates is the window's long-lived SSE endpoint. Every push
// replaces the list container wholesale, rendered with whatever filters
// are active at patch time rather than at stream open.
func (h *Handlers) SavePageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(notifier.TopicSave)
	defer h.notifier.Unsubscribe(notifier.TopicSave, updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(listComponent(h.buildView(h.currentFilters()))); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Filter applies the checked badge filters and re-renders the list. The
// filters become the active set for subsequent pushes and are persisted
// in the session.
func (h *Handlers) Filter(w http.ResponseWriter, r *http.Request) {
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.setFilters(signals)
	h.saveFilters(w, r, signals)

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(listComponent(h.buildView(signals))); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Select forwards one of the derived selection lists to the main window.
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	var signals SelectSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.RLock()
	analysis := h.analysis
	h.mu.RUnlock()

	sse := datastar.NewSSE(w, r)
	if analysis == nil {
		_ = sse.ConsoleError(fmt.Errorf("no savegame loaded"))
		return
	}

	var keys []string
	switch signals.List {
	case "unused":
		keys = analysis.Selections.Unused
	case "inactive":
		keys = analysis.Selections.Inactive
	case "nohub":
		keys = analysis.Selections.NoHub
	case "active":
		keys = analysis.Selections.Active
	default:
		_ = sse.ConsoleError(fmt.Errorf("unknown selection list %q", signals.List))
		return
	}

	h.bridge.Send(bridge.ChannelSelectMods, append([]string(nil), keys...))

	status := fmt.Sprintf("%d mods selected", len(keys))
	if err := sse.PatchElementTempl(selectStatusComponent(status)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// buildView assembles the template data under the read lock.
func (h *Handlers) buildView(filters FilterSignals) ViewData {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data := ViewData{
		Title:      h.labels.title.Text(),
		Collection: h.collection.Name,
		SaveName:   h.saveName,
		SingleFarm: h.singleFarm,
		HasSave:    h.hasSave && h.analysis != nil,
	}
	if !data.HasSave {
		return data
	}

	analysis := h.analysis
	data.Errors = analysis.Errors
	data.Total = len(analysis.Records)
	data.SelectUnused = analysis.Counts.Unused
	data.SelectInactive = analysis.Counts.Inactive
	data.SelectNoHub = analysis.Counts.NoHub
	data.SelectActive = analysis.Counts.Active

	checked := make(map[derive.Badge]bool, len(derive.AllBadges))
	for _, badge := range filters.Badges() {
		checked[badge] = true
	}
	for _, badge := range derive.AllBadges {
		data.Counters = append(data.Counters, Counter{
			Name:    string(badge),
			Label:   h.labels.badges[badge].Text(),
			Count:   analysis.BadgeTotals[badge],
			Checked: checked[badge],
		})
	}

	shown := derive.Filter(analysis.Records, filters.Badges())
	data.Shown = len(shown)
	for _, rec := range shown {
		row := Row{
			Name:       rec.Name,
			Title:      rec.Title,
			Version:    rec.Version,
			ColorClass: rec.ColorClass(),
			Farms:      formatFarms(rec.UsedBy),
		}
		for _, badge := range rec.Badges() {
			row.Badges = append(row.Badges, BadgeView{
				Name:  string(badge),
				Label: h.labels.badges[badge].Text(),
			})
		}
		data.Rows = append(data.Rows, row)
	}

	return data
}

func formatFarms(farms []int) string {
	if len(farms) == 0 {
		return ""
	}
	parts := make([]string, len(farms))
	for i, farm := range farms {
		parts[i] = strconv.Itoa(farm)
	}
	return strings.Join(parts, ", ")
}

func (h *Handlers) setFilters(filters FilterSignals) {
	h.mu.Lock()
	h.filters = filters
	h.mu.Unlock()
}

func (h *Handlers) currentFilters() FilterSignals {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.filters
}

// loadFilters restores the badge filters from the session.
func (h *Handlers) loadFilters(r *http.Request) FilterSignals {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return FilterSignals{}
	}
	raw, _ := session.Values[filterSession].(string)
	return filtersFromNames(strings.Split(raw, ","))
}

// saveFilters persists the badge filters in the session.
func (h *Handlers) saveFilters(w http.ResponseWriter, r *http.Request, signals FilterSignals) {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return
	}
	names := make([]string, 0, len(derive.AllBadges))
	for _, badge := range signals.Badges() {
		names = append(names, string(badge))
	}
	session.Values[filterSession] = strings.Join(names, ",")
	_ = session.Save(r, w)
}

func filtersFromNames(names []string) FilterSignals {
	var signals FilterSignals
	for _, name := range names {
		switch derive.Badge(name) {
		case derive.BadgeMissing:
			signals.Missing = true
		case derive.BadgeMismatch:
			signals.Mismatch = true
		case derive.BadgeNoHub:
			signals.NoHub = true
		case derive.BadgeDLC:
			signals.DLC = true
		case derive.BadgeUnused:
			signals.Unused = true
		case derive.BadgeInactive:
			signals.Inactive = true
		case derive.BadgeScriptOnly:
			signals.ScriptOnly = true
		}
	}
	return signals
}
