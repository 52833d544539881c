// Package savegame derives per-mod display records from an installed-mod
// collection and a savegame analysis snapshot. The derivation is a pure
// function of its two inputs: every pass starts from zeroed state, so the
// same snapshot always yields the same records, counts, and selections.
package savegame

import (
	"sort"
	"strings"

	"github.com/farmhand-tools/modyard/pkg/core"
)

// Badge is one of the fixed status badges a record can carry.
type Badge string

const (
	BadgeNoHub      Badge = "nohub"
	BadgeDLC        Badge = "isdlc"
	BadgeMissing    Badge = "missing"
	BadgeUnused     Badge = "unused"
	BadgeInactive   Badge = "inactive"
	BadgeScriptOnly Badge = "scriptonly"
	BadgeMismatch   Badge = "mismatch"
)

// AllBadges lists every badge in display order.
var AllBadges = []Badge{
	BadgeMissing,
	BadgeMismatch,
	BadgeNoHub,
	BadgeDLC,
	BadgeUnused,
	BadgeInactive,
	BadgeScriptOnly,
}

const (
	// dlcPrefix marks paid DLC pseudo-mods by name.
	dlcPrefix = "pdlc_"

	// stopSuffix terminates a pass: a name carrying it is treated as a
	// sentinel in the sorted iteration, and every name sorted after it is
	// discarded. Preserved behavior from the shipping product.
	stopSuffix = ".csv"
)

// Record is the derived display state of one mod, rebuilt from scratch on
// every savegame push and discarded afterwards.
type Record struct {
	Name    string
	Title   string
	Version string
	UUID    string

	DLC        bool
	Present    bool
	Loaded     bool
	Used       bool
	ScriptOnly bool
	Mismatch   bool
	OnHub      bool

	// UsedBy lists the farms using the mod; nil for the map mod, which is
	// not attributable to a specific farm.
	UsedBy []int
}

// Badges returns the record's badges in display order.
func (r Record) Badges() []Badge {
	var out []Badge
	if !r.Present {
		out = append(out, BadgeMissing)
	}
	if r.Mismatch {
		out = append(out, BadgeMismatch)
	}
	if r.Present && !r.OnHub && !r.DLC {
		out = append(out, BadgeNoHub)
	}
	if r.DLC {
		out = append(out, BadgeDLC)
	}
	if !r.Used {
		out = append(out, BadgeUnused)
	}
	if !r.Loaded {
		out = append(out, BadgeInactive)
	}
	if r.ScriptOnly {
		out = append(out, BadgeScriptOnly)
	}
	return out
}

// HasBadge reports whether the record carries the badge.
func (r Record) HasBadge(b Badge) bool {
	for _, have := range r.Badges() {
		if have == b {
			return true
		}
	}
	return false
}

// ColorClass picks the row color class by fixed priority:
// missing > version-mismatch > used > loaded > default.
func (r Record) ColorClass() string {
	switch {
	case !r.Present:
		return "mod-missing"
	case r.Mismatch:
		return "mod-mismatch"
	case r.Used:
		return "mod-used"
	case r.Loaded:
		return "mod-loaded"
	default:
		return "mod-default"
	}
}

// Selections are the four composite-key lists driving the
// select-in-main-window action.
type Selections struct {
	Unused   []string
	Inactive []string
	NoHub    []string
	Active   []string
}

// Counts tallies the selection lists for badge counters. Kept as separate
// integers, incremented alongside the list appends, so the display never
// drifts from the lists themselves.
type Counts struct {
	Unused   int
	Inactive int
	NoHub    int
	Active   int
}

// Analysis is the complete result of one derivation pass.
type Analysis struct {
	Records    []Record
	Selections Selections
	Counts     Counts

	// BadgeTotals counts rendered badges per kind for the counter row.
	BadgeTotals map[Badge]int

	// Errors are the savegame's own recorded problems, displayed as
	// informational entries.
	Errors []string

	SingleFarm bool
}

// Analyze merges a collection and a savegame snapshot into display records.
// Either input may be nil; absent fields degrade to blank or false rather
// than failing the pass.
func Analyze(coll *core.Collection, save *core.SaveGame) *Analysis {
	a := &Analysis{BadgeTotals: make(map[Badge]int)}

	var collMods map[string]*core.CollectionMod
	collID := ""
	if coll != nil {
		collMods = coll.Mods
		collID = coll.ID
	}
	var saveMods map[string]*core.SaveMod
	mapMod := ""
	if save != nil {
		saveMods = save.Mods
		mapMod = save.MapMod
		a.Errors = save.Errors
		a.SingleFarm = save.SingleFarm
	}

	names := make([]string, 0, len(collMods)+len(saveMods))
	seen := make(map[string]struct{}, len(collMods)+len(saveMods))
	for name := range collMods {
		names = append(names, name)
		seen[name] = struct{}{}
	}
	for name := range saveMods {
		if _, dup := seen[name]; !dup {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasSuffix(name, stopSuffix) {
			// Sentinel: everything sorted after this point is discarded.
			break
		}

		rec := Record{
			Name:  name,
			Title: name,
			DLC:   strings.HasPrefix(name, dlcPrefix),
		}

		if cm := collMods[name]; cm != nil {
			rec.Present = true
			rec.UUID = cm.UUID
			rec.Version = cm.Version
			rec.OnHub = cm.HubID != ""
			rec.ScriptOnly = cm.StoreItems == 0 && cm.ScriptFiles > 0
			if cm.Title != "" {
				rec.Title = cm.Title
			}
		}

		if sm := saveMods[name]; sm != nil {
			rec.Loaded = sm.Loaded
			rec.Used = sm.Used
			if len(sm.UsedBy) > 0 {
				rec.UsedBy = append([]int(nil), sm.UsedBy...)
			}
			if rec.Version == "" {
				rec.Version = sm.Version
			} else if sm.Version != "" && sm.Version != rec.Version {
				rec.Mismatch = true
			}
		}

		if rec.ScriptOnly && rec.Loaded {
			rec.Used = true
		}

		if name == mapMod {
			// The map is always in use and never farm-attributable.
			rec.Used = true
			rec.Loaded = true
			rec.UsedBy = nil
		}

		if rec.UUID != "" {
			key := core.CompositeKey(collID, rec.UUID)
			if !rec.Used {
				a.Selections.Unused = append(a.Selections.Unused, key)
				a.Counts.Unused++
			}
			if !rec.Loaded {
				a.Selections.Inactive = append(a.Selections.Inactive, key)
				a.Counts.Inactive++
			}
			if !rec.OnHub {
				a.Selections.NoHub = append(a.Selections.NoHub, key)
				a.Counts.NoHub++
			}
			if rec.Loaded {
				a.Selections.Active = append(a.Selections.Active, key)
				a.Counts.Active++
			}
		}

		for _, b := range rec.Badges() {
			a.BadgeTotals[b]++
		}

		a.Records = append(a.Records, rec)
	}

	return a
}
