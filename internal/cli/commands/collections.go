package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/farmhand-tools/modyard/internal/host"
)

// NewCollectionsCommand creates the collections command.
func NewCollectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the collections in the snapshot",
		Long: `List every collection the snapshot carries, with its mod count and
whether it is the active collection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			snap, err := loadSnapshot(cfg)
			if err != nil {
				return err
			}
			return renderCollections(cmd.OutOrStdout(), snap, cfg.OutputFormat)
		},
	}
}

func renderCollections(w io.Writer, snap *host.Snapshot, format string) error {
	if len(snap.Collections) == 0 {
		_, _ = fmt.Fprintln(w, "(no collections)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Mods", "Notes", "Active"})

	for _, coll := range snap.Collections {
		active := ""
		if coll.ID == snap.ActiveCollection {
			active = "*"
		}
		t.AppendRow(table.Row{coll.ID, coll.Name, len(coll.Mods), noteSummary(snap.Notes[coll.ID]), active})
	}

	renderIn(t, format)
	return nil
}

// noteSummary condenses a collection's notes to the server name plus the
// number of filled fields.
func noteSummary(notes map[string]string) string {
	filled := 0
	for _, value := range notes {
		if value != "" {
			filled++
		}
	}
	if filled == 0 {
		return ""
	}
	if server := notes["server"]; server != "" {
		return fmt.Sprintf("%s (%d)", server, filled)
	}
	return fmt.Sprintf("(%d)", filled)
}

// renderIn renders a table in the requested output format.
func renderIn(t table.Writer, format string) {
	switch format {
	case "csv":
		t.RenderCSV()
	case "md", "markdown":
		t.RenderMarkdown()
	default:
		t.Render()
	}
}
