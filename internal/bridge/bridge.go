package bridge

import (
	"sync"

	"github.com/farmhand-tools/modyard/pkg/core"
)

// Host is the privileged side of the bridge. Receive handles
// fire-and-forget messages; Lookup answers the synchronous channels.
type Host interface {
	Receive(win Window, ch Channel, payload any)
	Lookup(win Window, ch Channel, payload any) (any, error)
}

// Payload types for the individual channels. Inbound handlers should
// type-assert and ignore anything unexpected; malformed payloads degrade
// to blank display values, they never fail the window.

// LogMessage is the payload of ChannelLog.
type LogMessage struct {
	Level  string
	Source string
	Text   string
}

// NoteChange is the payload of ChannelSetNote.
type NoteChange struct {
	Collection string
	Field      string
	Value      string
}

// TranslatedText is the payload of ChannelTranslateText.
type TranslatedText struct {
	Key  string
	Text string
}

// CollectionInfo is the payload of ChannelCollectionInfo.
type CollectionInfo struct {
	ID    string
	Name  string
	Notes map[string]string
}

// SaveInfo is the payload of ChannelSaveInfo: the active collection plus
// the savegame analysis snapshot, both host-computed.
type SaveInfo struct {
	Collection *core.Collection
	Save       *core.SaveGame
}

// FileLink is the payload of ChannelFileLink.
type FileLink struct {
	Name     string
	RealPath string
}

// ConfirmFile is one entry of a ChannelConfirmList payload.
type ConfirmFile struct {
	Name   string
	Source string
	Size   int64
}

// ConfirmList is the payload of ChannelConfirmList.
type ConfirmList struct {
	Destination string
	Files       []ConfirmFile
}

// Bridge connects one window to the host. All methods are safe for
// concurrent use; delivery order between unrelated channels is not
// guaranteed and failures are not reported back to the window.
type Bridge struct {
	win  Window
	host Host

	mu   sync.RWMutex
	subs map[Channel][]func(any)
}

// New returns a bridge for the given window kind.
func New(win Window, host Host) *Bridge {
	return &Bridge{
		win:  win,
		host: host,
		subs: make(map[Channel][]func(any)),
	}
}

// Window returns the window kind this bridge serves.
func (b *Bridge) Window() Window {
	return b.win
}

// Send forwards a fire-and-forget message to the host. No return value and
// no error: a missing host simply swallows the message.
func (b *Bridge) Send(ch Channel, payload any) {
	if b.host == nil {
		return
	}
	b.host.Receive(b.win, ch, payload)
}

// Request performs the synchronous lookup, blocking until the host replies.
// On any failure the original payload is returned unchanged, mirroring the
// no-error-propagation contract of the window boundary.
func (b *Bridge) Request(ch Channel, payload any) any {
	if b.host == nil {
		return payload
	}
	out, err := b.host.Lookup(b.win, ch, payload)
	if err != nil {
		return payload
	}
	return out
}

// Subscribe registers a callback for an inbound channel. Channels outside
// the window's allow-list are silently ignored; the boolean exists so the
// caller can observe the drop, nothing more.
func (b *Bridge) Subscribe(ch Channel, fn func(any)) bool {
	if fn == nil || !Allowed(b.win, ch) {
		return false
	}
	b.mu.Lock()
	b.subs[ch] = append(b.subs[ch], fn)
	b.mu.Unlock()
	return true
}

// Deliver is the host-side push entry point: it invokes every callback
// subscribed to the channel, in registration order, on the caller's
// goroutine. Pushes on channels with no subscribers are dropped.
func (b *Bridge) Deliver(ch Channel, payload any) {
	b.mu.RLock()
	fns := make([]func(any), len(b.subs[ch]))
	copy(fns, b.subs[ch])
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}
