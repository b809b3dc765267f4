package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one column of the history table.
type Column struct {
	Title string
	// Right aligns numeric columns.
	Right bool
}

// HistoryColumns lists the history table columns in HistoryRow order.
var HistoryColumns = []Column{
	{Title: "Date"},
	{Title: "Difficulty"},
	{Title: "Mode"},
	{Title: "Correct", Right: true},
	{Title: "Accuracy", Right: true},
	{Title: "Speed", Right: true},
}

// alignRows lays rows out under cols, each column as wide as its widest cell.
func alignRows(cols []Column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	header := make([]string, len(cols))
	widths := make([]int, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		widths[i] = runewidth.StringWidth(c.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCells(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, joinCells(cols, widths, row))
	}
	return lines
}

func joinCells(cols []Column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		if c.Right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(cells, " ")
}
