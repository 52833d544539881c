package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/testutil"
	"github.com/farmhand-tools/modyard/pkg/core"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Collections: []*core.Collection{
			{
				ID:   "coll1",
				Name: "My Mods",
				Mods: map[string]*core.CollectionMod{
					"FS_BigBarn": {UUID: "uuid-barn", Title: "Big Barn", Version: "1.0.0.0", HubID: "hub-1", StoreItems: 2},
				},
			},
		},
		ActiveCollection: "coll1",
		Save: &core.SaveGame{
			Name:   "savegame1",
			MapMod: "FS_AlpineMap",
			Mods: map[string]*core.SaveMod{
				"FS_BigBarn": {Version: "1.0.0.0", Loaded: true, Used: true},
			},
		},
		Confirm: &ConfirmSnapshot{
			Destination: "/home/farmer/mods",
			Files:       []ConfirmFile{{Name: "FS_BigBarn.zip", Source: "/tmp/FS_BigBarn.zip", Size: 1024}},
		},
		Translations: map[string]string{"save_title": "Savegame check"},
	}
}

func newTestHost(t *testing.T) *Local {
	t.Helper()
	return New(Config{
		Logger:  testutil.NewTestLogger(t),
		HomeDir: "/home/farmer",
	})
}

func TestSetSnapshot_PushesToConnectedWindows(t *testing.T) {
	h := newTestHost(t)

	var gotColl []bridge.CollectionInfo
	var gotSave []bridge.SaveInfo
	saveBridge := h.Connect(bridge.WindowSave)
	saveBridge.Subscribe(bridge.ChannelCollectionInfo, func(p any) {
		gotColl = append(gotColl, p.(bridge.CollectionInfo))
	})
	saveBridge.Subscribe(bridge.ChannelSaveInfo, func(p any) {
		gotSave = append(gotSave, p.(bridge.SaveInfo))
	})

	var gotConfirm []bridge.ConfirmList
	confirmBridge := h.Connect(bridge.WindowConfirm)
	confirmBridge.Subscribe(bridge.ChannelConfirmList, func(p any) {
		gotConfirm = append(gotConfirm, p.(bridge.ConfirmList))
	})

	h.SetSnapshot(testSnapshot())

	require.Len(t, gotColl, 1)
	assert.Equal(t, "coll1", gotColl[0].ID)
	assert.Equal(t, "My Mods", gotColl[0].Name)

	require.Len(t, gotSave, 1)
	assert.Equal(t, "savegame1", gotSave[0].Save.Name)
	assert.Equal(t, "coll1", gotSave[0].Collection.ID)

	require.Len(t, gotConfirm, 1)
	assert.Equal(t, "/home/farmer/mods", gotConfirm[0].Destination)
	require.Len(t, gotConfirm[0].Files, 1)
}

func TestTranslate_AnswersRequestingWindowOnly(t *testing.T) {
	h := newTestHost(t)
	h.SetSnapshot(testSnapshot())

	var saveGot, notesGot []bridge.TranslatedText
	saveBridge := h.Connect(bridge.WindowSave)
	saveBridge.Subscribe(bridge.ChannelTranslateText, func(p any) {
		saveGot = append(saveGot, p.(bridge.TranslatedText))
	})
	notesBridge := h.Connect(bridge.WindowNotes)
	notesBridge.Subscribe(bridge.ChannelTranslateText, func(p any) {
		notesGot = append(notesGot, p.(bridge.TranslatedText))
	})

	saveBridge.Send(bridge.ChannelTranslate, "save_title")

	require.Len(t, saveGot, 1)
	assert.Equal(t, bridge.TranslatedText{Key: "save_title", Text: "Savegame check"}, saveGot[0])
	assert.Empty(t, notesGot)
}

func TestTranslate_UnknownKeyEchoesKey(t *testing.T) {
	h := newTestHost(t)
	h.SetSnapshot(testSnapshot())

	var got []bridge.TranslatedText
	b := h.Connect(bridge.WindowSave)
	b.Subscribe(bridge.ChannelTranslateText, func(p any) {
		got = append(got, p.(bridge.TranslatedText))
	})

	b.Send(bridge.ChannelTranslate, "no_such_key")

	require.Len(t, got, 1)
	assert.Equal(t, "no_such_key", got[0].Text)
}

func TestSetNote_RoundTripsThroughPush(t *testing.T) {
	h := newTestHost(t)
	h.SetSnapshot(testSnapshot())

	var got []bridge.CollectionInfo
	b := h.Connect(bridge.WindowNotes)
	b.Subscribe(bridge.ChannelCollectionInfo, func(p any) {
		got = append(got, p.(bridge.CollectionInfo))
	})

	b.Send(bridge.ChannelSetNote, bridge.NoteChange{
		Collection: "coll1",
		Field:      "server",
		Value:      "play.example.org",
	})

	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, "play.example.org", last.Notes["server"])
	assert.Equal(t, "", last.Notes["password"], "unset fields default to empty")

	assert.Equal(t, "play.example.org", h.NotesFor("coll1")["server"])
}

func TestSetNote_UnknownFieldDropped(t *testing.T) {
	h := newTestHost(t)
	h.SetSnapshot(testSnapshot())

	h.Receive(bridge.WindowNotes, bridge.ChannelSetNote, bridge.NoteChange{
		Collection: "coll1",
		Field:      "favorite_cow",
		Value:      "bessie",
	})

	_, exists := h.NotesFor("coll1")["favorite_cow"]
	assert.False(t, exists)
}

func TestHomePathLookup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"path under home", "/home/farmer/mods/FS_BigBarn.zip", "~/mods/FS_BigBarn.zip"},
		{"home itself", "/home/farmer", "~"},
		{"outside home", "/srv/mods/a.zip", "/srv/mods/a.zip"},
		{"prefix but not a child", "/home/farmersville/x", "/home/farmersville/x"},
	}

	h := newTestHost(t)
	b := h.Connect(bridge.WindowConfirm)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Request(bridge.ChannelHomePathMap, tt.in))
		})
	}
}

func TestSelectionAndFileState(t *testing.T) {
	h := newTestHost(t)
	b := h.Connect(bridge.WindowSave)

	b.Send(bridge.ChannelSelectMods, []string{"coll1--uuid-barn", "coll1--uuid-field"})
	assert.Equal(t, []string{"coll1--uuid-barn", "coll1--uuid-field"}, h.Selection())

	cb := h.Connect(bridge.WindowConfirm)
	cb.Send(bridge.ChannelFileLink, bridge.FileLink{Name: "FS_BigBarn.zip", RealPath: "/data/FS_BigBarn.zip"})
	assert.Equal(t, "/data/FS_BigBarn.zip", h.FileLink("FS_BigBarn.zip"))

	cb.Send(bridge.ChannelMoveFolder, "/home/farmer/new-mods")
	assert.Equal(t, "/home/farmer/new-mods", h.MoveFolder())
}

func TestCloseWindowCallback(t *testing.T) {
	h := newTestHost(t)
	var closed []string
	h.OnWindowClose(func(name string) { closed = append(closed, name) })

	b := h.Connect(bridge.WindowConfirm)
	b.Send(bridge.ChannelCloseWindow, "confirm")

	assert.Equal(t, []string{"confirm"}, closed)
}

func TestOnUpdateFiresAfterStateChanges(t *testing.T) {
	h := newTestHost(t)
	updates := 0
	h.OnUpdate(func() { updates++ })

	h.SetSnapshot(testSnapshot())
	require.Equal(t, 1, updates)

	h.Receive(bridge.WindowNotes, bridge.ChannelSetNote, bridge.NoteChange{
		Collection: "coll1", Field: "notes", Value: "hi",
	})
	assert.Equal(t, 2, updates)
}

func TestMalformedPayloadsIgnored(t *testing.T) {
	h := newTestHost(t)
	h.SetSnapshot(testSnapshot())

	assert.NotPanics(t, func() {
		h.Receive(bridge.WindowSave, bridge.ChannelLog, 123)
		h.Receive(bridge.WindowSave, bridge.ChannelTranslate, 123)
		h.Receive(bridge.WindowNotes, bridge.ChannelSetNote, "not a change")
		h.Receive(bridge.WindowSave, bridge.ChannelSelectMods, "not a slice")
	})

	_, err := h.Lookup(bridge.WindowConfirm, bridge.ChannelHomePathMap, 42)
	assert.Error(t, err)

	_, err = h.Lookup(bridge.WindowConfirm, bridge.ChannelLog, "x")
	assert.Error(t, err)
}
