package bridge

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost captures everything a bridge forwards.
type recordingHost struct {
	mu       sync.Mutex
	received []Channel
	lookup   func(ch Channel, payload any) (any, error)
}

func (h *recordingHost) Receive(_ Window, ch Channel, _ any) {
	h.mu.Lock()
	h.received = append(h.received, ch)
	h.mu.Unlock()
}

func (h *recordingHost) Lookup(_ Window, ch Channel, payload any) (any, error) {
	if h.lookup != nil {
		return h.lookup(ch, payload)
	}
	return payload, nil
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		win  Window
		ch   Channel
		want bool
	}{
		{"save window may take save pushes", WindowSave, ChannelSaveInfo, true},
		{"save window may take collection pushes", WindowSave, ChannelCollectionInfo, true},
		{"notes window may not take save pushes", WindowNotes, ChannelSaveInfo, false},
		{"confirm window may take confirm lists", WindowConfirm, ChannelConfirmList, true},
		{"no window may subscribe to outbound channels", WindowSave, ChannelSetNote, false},
		{"unknown window has no allow-list", Window("popup"), ChannelSaveInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.win, tt.ch))
		})
	}
}

func TestSubscribe_AllowListGate(t *testing.T) {
	b := New(WindowNotes, &recordingHost{})

	var got []any
	ok := b.Subscribe(ChannelCollectionInfo, func(p any) { got = append(got, p) })
	require.True(t, ok)

	// Outside the notes allow-list: registration is silently dropped.
	ok = b.Subscribe(ChannelSaveInfo, func(p any) { got = append(got, p) })
	assert.False(t, ok)

	b.Deliver(ChannelCollectionInfo, CollectionInfo{ID: "c1"})
	b.Deliver(ChannelSaveInfo, SaveInfo{})

	require.Len(t, got, 1)
	assert.Equal(t, CollectionInfo{ID: "c1"}, got[0])
}

func TestDeliver_FansOutInOrder(t *testing.T) {
	b := New(WindowSave, nil)

	var order []int
	b.Subscribe(ChannelSaveInfo, func(any) { order = append(order, 1) })
	b.Subscribe(ChannelSaveInfo, func(any) { order = append(order, 2) })

	b.Deliver(ChannelSaveInfo, SaveInfo{})

	assert.Equal(t, []int{1, 2}, order)
}

func TestSend_FireAndForget(t *testing.T) {
	host := &recordingHost{}
	b := New(WindowNotes, host)

	b.Send(ChannelSetNote, NoteChange{Collection: "c1", Field: "server", Value: "x"})
	b.Send(ChannelLog, LogMessage{Level: "info", Source: "notes", Text: "hello"})

	assert.Equal(t, []Channel{ChannelSetNote, ChannelLog}, host.received)
}

func TestSend_NoHostIsSilent(t *testing.T) {
	b := New(WindowSave, nil)

	assert.NotPanics(t, func() {
		b.Send(ChannelLog, LogMessage{Text: "dropped"})
	})
}

func TestRequest(t *testing.T) {
	t.Run("returns host answer", func(t *testing.T) {
		host := &recordingHost{lookup: func(_ Channel, _ any) (any, error) {
			return "~/mods", nil
		}}
		b := New(WindowConfirm, host)

		got := b.Request(ChannelHomePathMap, "/home/user/mods")
		assert.Equal(t, "~/mods", got)
	})

	t.Run("lookup failure returns payload unchanged", func(t *testing.T) {
		host := &recordingHost{lookup: func(_ Channel, _ any) (any, error) {
			return nil, errors.New("no mapping")
		}}
		b := New(WindowConfirm, host)

		got := b.Request(ChannelHomePathMap, "/srv/mods")
		assert.Equal(t, "/srv/mods", got)
	})

	t.Run("no host returns payload unchanged", func(t *testing.T) {
		b := New(WindowConfirm, nil)
		assert.Equal(t, "/srv/mods", b.Request(ChannelHomePathMap, "/srv/mods"))
	})
}

func TestDeliver_ConcurrentSubscribe(t *testing.T) {
	b := New(WindowSave, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Subscribe(ChannelSaveInfo, func(any) {})
			b.Deliver(ChannelSaveInfo, SaveInfo{})
		}()
	}
	wg.Wait()
}
