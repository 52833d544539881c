package l10n

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhand-tools/modyard/internal/bridge"
)

// translateHost records translate requests and can answer them on demand.
type translateHost struct {
	mu   sync.Mutex
	keys []string
}

func (h *translateHost) Receive(_ bridge.Window, ch bridge.Channel, payload any) {
	if ch != bridge.ChannelTranslate {
		return
	}
	key, ok := payload.(string)
	if !ok {
		return
	}
	h.mu.Lock()
	h.keys = append(h.keys, key)
	h.mu.Unlock()
}

func (h *translateHost) Lookup(bridge.Window, bridge.Channel, any) (any, error) {
	return nil, nil
}

func (h *translateHost) requested() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.keys...)
}

func setupRelay(t *testing.T) (*Relay, *bridge.Bridge, *translateHost) {
	t.Helper()
	host := &translateHost{}
	b := bridge.New(bridge.WindowSave, host)
	return NewRelay(b), b, host
}

func TestBinding_FallsBackToKey(t *testing.T) {
	relay, _, _ := setupRelay(t)

	bd := relay.Bind("save_title")
	assert.Equal(t, "save_title", bd.Text())
}

func TestRefresh_DeduplicatesKeys(t *testing.T) {
	relay, _, host := setupRelay(t)

	relay.Bind("badge_missing")
	relay.Bind("badge_missing")
	relay.Bind("badge_unused")

	relay.Refresh()

	requested := host.requested()
	assert.Len(t, requested, 2)
	assert.ElementsMatch(t, []string{"badge_missing", "badge_unused"}, requested)
}

func TestOnText_UpdatesEverySlotWithKey(t *testing.T) {
	relay, b, _ := setupRelay(t)

	one := relay.Bind("badge_missing")
	two := relay.Bind("badge_missing")
	other := relay.Bind("badge_unused")

	b.Deliver(bridge.ChannelTranslateText, bridge.TranslatedText{Key: "badge_missing", Text: "Missing"})

	assert.Equal(t, "Missing", one.Text())
	assert.Equal(t, "Missing", two.Text())
	assert.Equal(t, "badge_unused", other.Text(), "unrelated keys untouched")
}

func TestOnText_LastWriteWins(t *testing.T) {
	relay, b, _ := setupRelay(t)
	bd := relay.Bind("save_title")

	// Two overlapping refresh cycles answering in arrival order.
	b.Deliver(bridge.ChannelTranslateText, bridge.TranslatedText{Key: "save_title", Text: "Savegame"})
	b.Deliver(bridge.ChannelTranslateText, bridge.TranslatedText{Key: "save_title", Text: "Spielstand"})

	assert.Equal(t, "Spielstand", bd.Text())
}

func TestHostRefreshSignalTriggersCycle(t *testing.T) {
	relay, b, host := setupRelay(t)
	relay.Bind("save_title")

	b.Deliver(bridge.ChannelL10nRefresh, nil)

	require.Equal(t, []string{"save_title"}, host.requested())
}

func TestOnText_MalformedPayloadDropped(t *testing.T) {
	relay, b, _ := setupRelay(t)
	bd := relay.Bind("save_title")

	assert.NotPanics(t, func() {
		b.Deliver(bridge.ChannelTranslateText, 42)
		b.Deliver(bridge.ChannelTranslateText, nil)
	})
	assert.Equal(t, "save_title", bd.Text())
}
