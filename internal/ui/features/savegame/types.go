package savegame

import (
	derive "github.com/farmhand-tools/modyard/internal/savegame"
)

// FilterSignals are the badge checkboxes sent from the window. Checked
// filters are AND-combined.
type FilterSignals struct {
	Missing    bool `json:"missing"`
	Mismatch   bool `json:"mismatch"`
	NoHub      bool `json:"nohub"`
	DLC        bool `json:"isdlc"`
	Unused     bool `json:"unused"`
	Inactive   bool `json:"inactive"`
	ScriptOnly bool `json:"scriptonly"`
}

// Badges returns the checked badges in display order.
func (s FilterSignals) Badges() []derive.Badge {
	var out []derive.Badge
	if s.Missing {
		out = append(out, derive.BadgeMissing)
	}
	if s.Mismatch {
		out = append(out, derive.BadgeMismatch)
	}
	if s.NoHub {
		out = append(out, derive.BadgeNoHub)
	}
	if s.DLC {
		out = append(out, derive.BadgeDLC)
	}
	if s.Unused {
		out = append(out, derive.BadgeUnused)
	}
	if s.Inactive {
		out = append(out, derive.BadgeInactive)
	}
	if s.ScriptOnly {
		out = append(out, derive.BadgeScriptOnly)
	}
	return out
}

// SelectSignals names the selection list sent to the main window.
type SelectSignals struct {
	List string `json:"list"`
}

// BadgeView is one rendered badge pill.
type BadgeView struct {
	Name  string
	Label string
}

// Row is one rendered mod line.
type Row struct {
	Name       string
	Title      string
	Version    string
	ColorClass string
	Badges     []BadgeView
	Farms      string
}

// Counter is one filter checkbox with its badge tally.
type Counter struct {
	Name    string
	Label   string
	Count   int
	Checked bool
}

// ViewData feeds the mod list template.
type ViewData struct {
	Title      string
	Collection string
	SaveName   string
	SingleFarm bool
	HasSave    bool
	Errors     []string

	Counters []Counter
	Rows     []Row
	Shown    int
	Total    int

	SelectUnused   int
	SelectInactive int
	SelectNoHub    int
	SelectActive   int
}
