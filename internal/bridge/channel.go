// Package bridge defines the message contract between companion windows and
// the host process. Each window gets a Bridge exposing a fixed capability
// set: fire-and-forget sends, one synchronous lookup, and subscriptions
// gated by a per-window allow-list of inbound channels.
package bridge

// Channel identifies one cross-process message channel. The set is closed:
// only the constants below exist, so a typo is a compile error rather than
// a silently dead listener.
type Channel string

// Window -> host channels.
const (
	// ChannelLog carries structured log lines from a window.
	ChannelLog Channel = "log"

	// ChannelTranslate requests the resolved text for one l10n key.
	ChannelTranslate Channel = "l10n.translate"

	// ChannelSetNote persists a single note field edit.
	ChannelSetNote Channel = "notes.set"

	// ChannelSelectMods asks the main window to select the given
	// composite keys.
	ChannelSelectMods Channel = "mods.select"

	// ChannelFileLink forwards a resolved real-file mapping.
	ChannelFileLink Channel = "files.link"

	// ChannelMoveFolder sets the pending move destination folder.
	ChannelMoveFolder Channel = "files.moveFolder"

	// ChannelCloseWindow asks the host to close the named sub-window.
	ChannelCloseWindow Channel = "window.close"

	// ChannelHomePathMap is the only synchronous channel: it maps an
	// absolute path to its display form. Defined as a small, fast lookup.
	ChannelHomePathMap Channel = "paths.homeMap"
)

// Host -> window channels.
const (
	// ChannelTranslateText returns one resolved (key, text) pair.
	ChannelTranslateText Channel = "l10n.text"

	// ChannelL10nRefresh tells the window to re-resolve all l10n keys.
	ChannelL10nRefresh Channel = "l10n.refresh"

	// ChannelCollectionInfo pushes the active collection and its notes.
	ChannelCollectionInfo Channel = "collection.info"

	// ChannelSaveInfo pushes a full savegame analysis snapshot.
	ChannelSaveInfo Channel = "savegame.info"

	// ChannelConfirmList pushes the list of files pending confirmation.
	ChannelConfirmList Channel = "confirm.list"
)

// Window identifies one companion window kind.
type Window string

const (
	WindowSave    Window = "save"
	WindowNotes   Window = "notes"
	WindowConfirm Window = "confirm"
)

// inbound is the per-window allow-list of channels a window may subscribe
// to. Subscription attempts outside the list are dropped without error:
// this is the sole authorization mechanism at the window boundary.
var inbound = map[Window]map[Channel]struct{}{
	WindowSave: {
		ChannelCollectionInfo: {},
		ChannelSaveInfo:       {},
		ChannelTranslateText:  {},
		ChannelL10nRefresh:    {},
	},
	WindowNotes: {
		ChannelCollectionInfo: {},
		ChannelTranslateText:  {},
		ChannelL10nRefresh:    {},
	},
	WindowConfirm: {
		ChannelConfirmList:   {},
		ChannelTranslateText: {},
		ChannelL10nRefresh:   {},
	},
}

// Allowed reports whether the window may subscribe to the channel.
func Allowed(win Window, ch Channel) bool {
	_, ok := inbound[win][ch]
	return ok
}
