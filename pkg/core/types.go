// Package core holds the shared domain types exchanged between the host
// process and the companion windows. It imports only the standard library.
package core

// Collection is a named grouping of installed mod files, as computed by the
// host. The window layer never constructs these itself.
type Collection struct {
	ID   string                    `yaml:"id"`
	Name string                    `yaml:"name"`
	Mods map[string]*CollectionMod `yaml:"mods"`
}

// CollectionMod is the host's record of one installed mod within a
// collection, keyed by the mod's short name.
type CollectionMod struct {
	UUID    string `yaml:"uuid"`
	Title   string `yaml:"title"`
	Version string `yaml:"version"`

	// HubID is non-empty when the mod is recognized on the mod hub.
	HubID string `yaml:"hub_id"`

	// StoreItems counts shippable content entries; ScriptFiles counts
	// script sources. A mod with zero store items but at least one script
	// file is script-only.
	StoreItems  int `yaml:"store_items"`
	ScriptFiles int `yaml:"script_files"`
}

// SaveGame is a host-computed analysis of which mods a savegame references.
type SaveGame struct {
	Name string `yaml:"name"`

	// MapMod is the short name of the map mod the save was created on.
	MapMod string `yaml:"map_mod"`

	// SingleFarm is true for saves with exactly one farm; per-farm usage
	// attribution is only meaningful when false.
	SingleFarm bool `yaml:"single_farm"`

	Mods   map[string]*SaveMod `yaml:"mods"`
	Errors []string            `yaml:"errors"`
}

// SaveMod is the savegame's record of one referenced mod.
type SaveMod struct {
	Version string `yaml:"version"`
	Loaded  bool   `yaml:"loaded"`
	Used    bool   `yaml:"used"`

	// UsedBy lists the farm IDs using the mod. Empty for mods that are
	// loaded but not attributable to a farm.
	UsedBy []int `yaml:"used_by"`
}

// CompositeKey addresses a specific mod within a specific collection for
// selection actions in the main window.
func CompositeKey(collectionID, uuid string) string {
	return collectionID + "--" + uuid
}
