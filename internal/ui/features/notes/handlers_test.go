package notes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t, nil)
	h := NewHandlers(fixture.Host.Connect(bridge.WindowNotes), fixture.Notifier)
	fixture.PushSnapshot(features.Snapshot())

	return h, fixture
}

func TestNotesPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()

	h.NotesPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>Collection notes - Modyard</title>")
	assert.Contains(t, body, `id="notes-form"`)
	assert.Contains(t, body, "My Mods")
	assert.Contains(t, body, "/notes/updates")
}

func TestNotesPage_AllFieldsRendered(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	h.NotesPage(rec, req)

	body := rec.Body.String()

	// Populated values from the snapshot
	assert.Contains(t, body, "play.example.org")
	assert.Contains(t, body, "farmer")

	// Every note field gets an input, set or not
	for _, field := range []string{"server", "username", "password", "website", "admin", "version", "notes"} {
		assert.Contains(t, body, `id="note-`+field+`"`, "field %s should render", field)
	}

	// Untranslated labels fall back to their keys
	assert.Contains(t, body, "note_server")
}

func TestNotesPage_NoCollection(t *testing.T) {
	fixture := features.SetupTestFixture(t, nil)
	h := NewHandlers(fixture.Host.Connect(bridge.WindowNotes), fixture.Notifier)

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rec := httptest.NewRecorder()
	h.NotesPage(rec, req)

	assert.Contains(t, rec.Body.String(), "No collection loaded.")
}

func TestSetField_RoundTripsThroughHost(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/notes/field",
		strings.NewReader(`{"field":"server","value":"new.example.org"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.SetField(rec, req)

	// One message to the host; the refreshed state came back as a push.
	assert.Equal(t, "new.example.org", fixture.Host.NotesFor("coll1")["server"])

	pageReq := httptest.NewRequest(http.MethodGet, "/notes", nil)
	pageRec := httptest.NewRecorder()
	h.NotesPage(pageRec, pageReq)
	assert.Contains(t, pageRec.Body.String(), "new.example.org")
}

func TestSetField_UnknownFieldDropped(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/notes/field",
		strings.NewReader(`{"field":"favorite_cow","value":"bessie"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.SetField(rec, req)

	_, exists := fixture.Host.NotesFor("coll1")["favorite_cow"]
	assert.False(t, exists)
}

func TestNotesPageUpdates_EditTriggersUpdate(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/notes/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.NotesPageUpdates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	// Simulate the edit arriving from another window connection.
	fixture.Host.Receive(bridge.WindowNotes, bridge.ChannelSetNote, bridge.NoteChange{
		Collection: "coll1", Field: "website", Value: "https://example.org",
	})

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "https://example.org")
}
