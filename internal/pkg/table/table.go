package table

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table - текстовая таблица с выравниванием по ширине отображения (умлауты, эмодзи, CJK)
type Table struct {
	headers  []string
	rows     [][]string
	maxWidth int
}

// New создаёт таблицу. maxWidth ограничивает ширину колонки, 0 - без ограничения
func New(maxWidth int, headers ...string) *Table {
	return &Table{headers: headers, maxWidth: maxWidth}
}

// Append добавляет строку. Лишние ячейки отбрасываются, недостающие остаются пустыми
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.headers))
	for i := 0; i < len(row) && i < len(cells); i++ {
		cell := strings.Join(strings.Fields(cells[i]), " ")
		if t.maxWidth > 0 {
			cell = runewidth.Truncate(cell, t.maxWidth, "…")
		}
		row[i] = cell
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Render пишет таблицу в w: заголовок, разделитель и строки
func (t *Table) Render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	writeRow(&sb, t.headers, widths)
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("-", wd)
	}
	writeRow(&sb, sep, widths)
	for _, row := range t.rows {
		writeRow(&sb, row, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(cell)
			continue
		}
		sb.WriteString(runewidth.FillRight(cell, widths[i]))
	}
	sb.WriteString("\n")
}
