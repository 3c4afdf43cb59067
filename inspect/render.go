package inspect

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/binlayout/codec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	padStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Render draws the layout of td as a table: one row per field with its
// offset, size, alignment and the padding inserted before it.
func Render(td codec.TypeDef) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(padStyle).
		Headers("field", "offset", "size", "align", "pad", "codec")

	fields := Fields(td)
	for _, f := range fields {
		t.Row(
			strings.Repeat("  ", f.Depth)+f.Path,
			number(f.Offset),
			number(f.Size),
			strconv.Itoa(f.Align),
			number(f.Padding),
			f.Codec,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle.Padding(0, 1)
		}
		if row >= 0 && row < len(fields) && fields[row].Trailing {
			return padStyle.Padding(0, 1)
		}
		return cellStyle
	})

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(Summary(td)), t.String())
}

// number prints -1 as "?" for sizes and offsets that are not fixed.
func number(n int) string {
	if n < 0 {
		return "?"
	}
	return strconv.Itoa(n)
}
