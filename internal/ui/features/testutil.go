// Package features provides shared test utilities for the window feature
// tests.
package features

import (
	"testing"

	"github.com/gorilla/sessions"

	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/testutil"
	"github.com/farmhand-tools/modyard/internal/ui/notifier"
	"github.com/farmhand-tools/modyard/pkg/core"
)

// TestFixture holds all dependencies needed for window handler tests.
type TestFixture struct {
	Host         *host.Local
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a host with the given snapshot. Connect windows
// through fixture.Host and push with PushSnapshot.
func SetupTestFixture(t *testing.T, snap *host.Snapshot) *TestFixture {
	t.Helper()

	h := host.New(host.Config{
		Logger:  testutil.NewTestLogger(t),
		HomeDir: "/home/farmer",
	})

	fixture := &TestFixture{
		Host:         h,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
	}

	if snap != nil {
		h.SetSnapshot(snap)
	}

	return fixture
}

// PushSnapshot replaces the host data and pushes it to connected windows.
func (f *TestFixture) PushSnapshot(snap *host.Snapshot) {
	f.Host.SetSnapshot(snap)
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// Snapshot builds a representative snapshot for window tests.
func Snapshot() *host.Snapshot {
	return &host.Snapshot{
		Collections: []*core.Collection{
			{
				ID:   "coll1",
				Name: "My Mods",
				Mods: map[string]*core.CollectionMod{
					"FS_BigBarn": {UUID: "uuid-barn", Title: "Big Barn", Version: "1.0.0.0", HubID: "hub-1", StoreItems: 2},
					"FS_Plow":    {UUID: "uuid-plow", Title: "Plow", Version: "2.0.0.0", HubID: "hub-2", StoreItems: 1},
					"FS_Script":  {UUID: "uuid-script", Title: "Script Pack", Version: "1.1.0.0", ScriptFiles: 3},
				},
			},
		},
		ActiveCollection: "coll1",
		Save: &core.SaveGame{
			Name:   "savegame1",
			MapMod: "FS_AlpineMap",
			Mods: map[string]*core.SaveMod{
				"FS_BigBarn": {Version: "1.0.0.0", Loaded: true, Used: true, UsedBy: []int{1}},
				"FS_Plow":    {Version: "1.9.0.0", Loaded: true},
				"FS_Script":  {Version: "1.1.0.0", Loaded: true},
				"FS_Ghost":   {Version: "0.9.0.0", Loaded: true},
			},
		},
		Confirm: &host.ConfirmSnapshot{
			Destination: "/home/farmer/mods",
			Files: []host.ConfirmFile{
				{Name: "FS_BigBarn.zip", Source: "/home/farmer/Downloads/FS_BigBarn.zip", Size: 2048},
				{Name: "FS_Plow.zip", Source: "/srv/share/FS_Plow.zip", Size: 5 * 1024 * 1024},
			},
		},
		Notes: map[string]map[string]string{
			"coll1": {"server": "play.example.org", "username": "farmer"},
		},
		Translations: map[string]string{
			"save_check_title": "Savegame check",
			"notes_title":      "Collection notes",
			"confirm_title":    "Copy mods",
			"badge_missing":    "Missing",
			"badge_unused":     "Unused",
		},
	}
}
