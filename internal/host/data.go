package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farmhand-tools/modyard/pkg/core"
)

// Snapshot is the externally produced data file the host serves from.
// Modyard does not parse mod files or scan game folders itself: the
// snapshot arrives pre-computed and is reloaded wholesale on change.
type Snapshot struct {
	Collections      []*core.Collection           `yaml:"collections"`
	ActiveCollection string                       `yaml:"active_collection"`
	Save             *core.SaveGame               `yaml:"savegame"`
	Confirm          *ConfirmSnapshot             `yaml:"confirm"`
	Notes            map[string]map[string]string `yaml:"notes"`
	Translations     map[string]string            `yaml:"translations"`
}

// ConfirmSnapshot describes the files pending a copy/move confirmation.
type ConfirmSnapshot struct {
	Destination string        `yaml:"destination"`
	Files       []ConfirmFile `yaml:"files"`
}

// ConfirmFile is one pending file entry.
type ConfirmFile struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Size   int64  `yaml:"size"`
}

// ReadSnapshot loads and validates a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Validate checks referential integrity of the snapshot.
func (s *Snapshot) Validate() error {
	ids := make(map[string]struct{}, len(s.Collections))
	for _, coll := range s.Collections {
		if coll.ID == "" {
			return fmt.Errorf("collection %q has no id", coll.Name)
		}
		if _, dup := ids[coll.ID]; dup {
			return fmt.Errorf("duplicate collection id %q", coll.ID)
		}
		ids[coll.ID] = struct{}{}
	}

	if s.ActiveCollection != "" {
		if _, ok := ids[s.ActiveCollection]; !ok {
			return fmt.Errorf("active collection %q not in snapshot", s.ActiveCollection)
		}
	}
	return nil
}

// collection returns the collection with the given id, or nil.
func (s *Snapshot) collection(id string) *core.Collection {
	for _, coll := range s.Collections {
		if coll.ID == id {
			return coll
		}
	}
	return nil
}
