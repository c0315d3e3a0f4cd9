package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
)

const (
	// CellWidth is the printed width of one slot.
	CellWidth = 7
	// Columns is the number of slots per printed row.
	Columns = 9

	emptyCell = "."
	rowLabelW = 4
)

// Cell fits a slot label and amount into CellWidth. Amounts above one are
// kept visible by truncating the label instead.
func Cell(label string, amount int) string {
	if label == "" {
		return center(emptyCell)
	}

	suffix := ""
	if amount > 1 {
		suffix = "x" + strconv.Itoa(amount)
	}
	room := CellWidth - len(suffix)
	if room < 1 {
		return padding.String(truncate.String(suffix, CellWidth), CellWidth)
	}
	if len(suffix) > 0 {
		room--
		suffix = " " + suffix
	}

	return padding.String(truncate.StringWithTail(label, uint(room), "~")+suffix, CellWidth)
}

func center(s string) string {
	left := (CellWidth - len(s)) / 2
	return padding.String(strings.Repeat(" ", left)+s, CellWidth)
}

// Screen renders a gui as text. top holds the cells of the gui's own rows and
// bottom the cells of the viewer's inventory; slots are numbered
// continuously from the first top cell.
func Screen(title string, top, bottom []string) string {
	var sb strings.Builder

	sb.WriteString(Wrap(title))
	sb.WriteString("\n")
	sb.WriteString(header())

	writeRows(&sb, top, 0)
	if len(bottom) > 0 {
		sb.WriteString(strings.Repeat(" ", rowLabelW))
		sb.WriteString(strings.Repeat("-", Columns*(CellWidth+1)+1))
		sb.WriteString("\n")
		writeRows(&sb, bottom, len(top))
	}

	return sb.String()
}

func header() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", rowLabelW+1))
	for c := range Columns {
		sb.WriteString(center(strconv.Itoa(c)))
		sb.WriteString(" ")
	}
	return strings.TrimRight(sb.String(), " ") + "\n"
}

func writeRows(sb *strings.Builder, cells []string, first int) {
	for start := 0; start < len(cells); start += Columns {
		end := min(start+Columns, len(cells))

		fmt.Fprintf(sb, "%*d |", rowLabelW-1, first+start)
		for _, cell := range cells[start:end] {
			sb.WriteString(cell)
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
}
