// Package l10n implements the pull-based localization relay. Windows bind
// text slots to opaque string keys; a refresh collects the deduplicated key
// set and asks the host for each one. The host answers asynchronously, one
// (key, text) pair at a time, and every slot bearing that key is updated in
// place. Nothing is cached beyond the bound slots themselves.
package l10n

import (
	"sync"

	"github.com/farmhand-tools/modyard/internal/bridge"
)

// Binding is one translatable text slot.
type Binding struct {
	key string

	mu   sync.RWMutex
	text string
}

// Key returns the l10n key the slot is bound to.
func (b *Binding) Key() string {
	return b.key
}

// Text returns the resolved text, or the key itself while unresolved.
func (b *Binding) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.text == "" {
		return b.key
	}
	return b.text
}

func (b *Binding) set(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

// Relay drives the refresh cycle for one window's bridge.
type Relay struct {
	bridge *bridge.Bridge

	mu       sync.RWMutex
	bindings map[string][]*Binding
}

// NewRelay wires a relay to the window's bridge, listening for resolved
// text and for host-pushed refresh signals.
func NewRelay(b *bridge.Bridge) *Relay {
	r := &Relay{
		bridge:   b,
		bindings: make(map[string][]*Binding),
	}
	b.Subscribe(bridge.ChannelTranslateText, r.onText)
	b.Subscribe(bridge.ChannelL10nRefresh, func(any) { r.Refresh() })
	return r
}

// Bind registers a new text slot for the key. Multiple slots may share a
// key; all of them are updated when the key resolves.
func (r *Relay) Bind(key string) *Binding {
	bd := &Binding{key: key}
	r.mu.Lock()
	r.bindings[key] = append(r.bindings[key], bd)
	r.mu.Unlock()
	return bd
}

// Refresh requests resolution of every currently bound key, once per
// unique key. Safe to call while a previous cycle's answers are still
// arriving: updates are keyed by identifier, not by request, so responses
// simply overwrite in arrival order.
func (r *Relay) Refresh() {
	r.mu.RLock()
	keys := make([]string, 0, len(r.bindings))
	for key := range r.bindings {
		keys = append(keys, key)
	}
	r.mu.RUnlock()

	for _, key := range keys {
		r.bridge.Send(bridge.ChannelTranslate, key)
	}
}

// onText splices one resolved pair into every slot bearing the key.
// Unknown keys and malformed payloads are dropped.
func (r *Relay) onText(payload any) {
	msg, ok := payload.(bridge.TranslatedText)
	if !ok {
		return
	}

	r.mu.RLock()
	slots := r.bindings[msg.Key]
	r.mu.RUnlock()

	for _, bd := range slots {
		bd.set(msg.Text)
	}
}
