package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/farmhand-tools/modyard/internal/host"
	"github.com/farmhand-tools/modyard/internal/savegame"
	"github.com/farmhand-tools/modyard/pkg/core"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Badges []string
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the savegame against the active collection",
		Long: `Compare the snapshot's savegame against the active collection and
print one row per mod with its status badges.

Filters are AND-combined: --badge missing --badge unused shows only
mods that are both missing and unused.`,
		Example: `  # Full report
  modyard check

  # Only mods missing from the collection
  modyard check --badge missing

  # Version mismatches, as CSV
  modyard check --badge mismatch -o csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			snap, err := loadSnapshot(cfg)
			if err != nil {
				return err
			}
			if snap.Save == nil {
				return fmt.Errorf("snapshot has no savegame section")
			}

			analysis := savegame.Analyze(activeCollection(snap), snap.Save)

			badges, err := parseBadges(opts.Badges)
			if err != nil {
				return err
			}
			records := savegame.Filter(analysis.Records, badges)

			return renderCheck(cmd.OutOrStdout(), snap.Save.Name, analysis, records, cfg.OutputFormat)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Badges, "badge", nil, "Badge filter, repeatable (missing, mismatch, nohub, isdlc, unused, inactive, scriptonly)")

	return cmd
}

func activeCollection(snap *host.Snapshot) *core.Collection {
	for _, coll := range snap.Collections {
		if coll.ID == snap.ActiveCollection {
			return coll
		}
	}
	return nil
}

func parseBadges(names []string) ([]savegame.Badge, error) {
	var badges []savegame.Badge
	for _, name := range names {
		badge := savegame.Badge(strings.ToLower(name))
		found := false
		for _, known := range savegame.AllBadges {
			if badge == known {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown badge %q", name)
		}
		badges = append(badges, badge)
	}
	return badges, nil
}

func renderCheck(w io.Writer, saveName string, analysis *savegame.Analysis, records []savegame.Record, format string) error {
	_, _ = fmt.Fprintf(w, "Savegame: %s\n", saveName)
	if analysis.SingleFarm {
		_, _ = fmt.Fprintln(w, "Single farm")
	}
	for _, e := range analysis.Errors {
		_, _ = fmt.Fprintf(w, "Error: %s\n", e)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Mod", "Title", "Version", "Badges"})

	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.Name,
			rec.Title,
			rec.Version,
			joinBadges(rec.Badges()),
		})
	}
	renderIn(t, format)

	_, _ = fmt.Fprintf(w, "(%d of %d mods)\n", len(records), len(analysis.Records))
	return nil
}

func joinBadges(badges []savegame.Badge) string {
	names := make([]string, len(badges))
	for i, b := range badges {
		names[i] = string(b)
	}
	return strings.Join(names, " ")
}
