package confirm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farmhand-tools/modyard/internal/bridge"
	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t, nil)
	h := NewHandlers(fixture.Host.Connect(bridge.WindowConfirm), fixture.Notifier)
	fixture.PushSnapshot(features.Snapshot())

	return h, fixture
}

func TestConfirmPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/confirm", nil)
	rec := httptest.NewRecorder()

	h.ConfirmPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>Copy mods - Modyard</title>")
	assert.Contains(t, body, `id="confirm-dialog"`)
	assert.Contains(t, body, "/confirm/updates")
}

func TestConfirmPage_HomePathsShortened(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/confirm", nil)
	rec := httptest.NewRecorder()
	h.ConfirmPage(rec, req)

	body := rec.Body.String()

	// Paths under the home directory display with ~, others untouched
	assert.Contains(t, body, "~/mods")
	assert.Contains(t, body, "~/Downloads/FS_BigBarn.zip")
	assert.Contains(t, body, "/srv/share/FS_Plow.zip")
	assert.NotContains(t, body, "/home/farmer/Downloads")
}

func TestConfirmPage_SizesFormatted(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/confirm", nil)
	rec := httptest.NewRecorder()
	h.ConfirmPage(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "2.0 KiB")
	assert.Contains(t, body, "5.0 MiB")
}

func TestConfirmPage_Empty(t *testing.T) {
	fixture := features.SetupTestFixture(t, nil)
	h := NewHandlers(fixture.Host.Connect(bridge.WindowConfirm), fixture.Notifier)
	snap := features.Snapshot()
	snap.Confirm = &host.ConfirmSnapshot{Destination: "/home/farmer/mods"}
	fixture.PushSnapshot(snap)

	req := httptest.NewRequest(http.MethodGet, "/confirm", nil)
	rec := httptest.NewRecorder()
	h.ConfirmPage(rec, req)

	assert.Contains(t, rec.Body.String(), "Nothing to copy.")
}

func TestLink_ForwardsRealPath(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/confirm/link",
		strings.NewReader(`{"name":"FS_BigBarn.zip"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Link(rec, req)

	assert.Equal(t, "/home/farmer/Downloads/FS_BigBarn.zip", fixture.Host.FileLink("FS_BigBarn.zip"))
}

func TestLink_UnknownFile(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/confirm/link",
		strings.NewReader(`{"name":"nope.zip"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Link(rec, req)

	assert.Empty(t, fixture.Host.FileLink("nope.zip"))
}

func TestAccept_ConfirmsAndCloses(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	var closed []string
	fixture.Host.OnWindowClose(func(name string) { closed = append(closed, name) })

	req := httptest.NewRequest(http.MethodPost, "/confirm/accept", nil)
	rec := httptest.NewRecorder()

	h.Accept(rec, req)

	assert.Equal(t, "/home/farmer/mods", fixture.Host.MoveFolder())
	assert.Equal(t, []string{"confirm"}, closed)
}

func TestCancel_ClosesWithoutConfirming(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	var closed []string
	fixture.Host.OnWindowClose(func(name string) { closed = append(closed, name) })

	req := httptest.NewRequest(http.MethodPost, "/confirm/cancel", nil)
	rec := httptest.NewRecorder()

	h.Cancel(rec, req)

	assert.Empty(t, fixture.Host.MoveFolder())
	assert.Equal(t, []string{"confirm"}, closed)
}

func TestConfirmPageUpdates_PushTriggersUpdate(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/confirm/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ConfirmPageUpdates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	snap := features.Snapshot()
	snap.Confirm.Files = append(snap.Confirm.Files, host.ConfirmFile{
		Name: "FS_Extra.zip", Source: "/srv/share/FS_Extra.zip", Size: 100,
	})
	fixture.PushSnapshot(snap)

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "FS_Extra.zip")
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.size))
	}
}
