package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ymlog/internal/replay"
)

// renderEntryTable draws the five-column stream view used by `ymlog show`.
// Depth is right-aligned so nesting jumps line up under each other; the
// remaining columns read left to right.
func renderEntryTable(entries []replay.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"DEPTH", "LEVEL", "TIME", "MESSAGE", "FIELDS"})

	for _, entry := range entries {
		row := entryRow(entry)
		tw.AppendRow(table.Row{row[0], row[1], row[2], row[3], row[4]})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
