package wizard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

// RenderTable writes the raw and weighted scores as an aligned text table,
// one row per criterion.
func RenderTable(w io.Writer, t *scoring.ScoreTable) {
	header := []string{"Criteria"}
	header = append(header, t.Suppliers...)
	for _, s := range t.Suppliers {
		header = append(header, "Weighted Score "+s)
	}

	rows := make([][]string, len(t.Criteria))
	for i, c := range t.Criteria {
		row := []string{c}
		for _, v := range t.Raw[i] {
			row = append(row, formatScore(v))
		}
		for _, v := range t.Weighted[i] {
			row = append(row, formatScore(v))
		}
		rows[i] = row
	}

	writeGrid(w, header, rows)
}

// RenderTotals writes each supplier's total in column order, followed by the
// ranking.
func RenderTotals(w io.Writer, ev *scoring.Evaluation) {
	fmt.Fprintf(w, "Total weighted scores (%s)\n", ev.Context) //nolint:errcheck
	rows := make([][]string, len(ev.Totals))
	for i, t := range ev.Totals {
		rows[i] = []string{t.Supplier, formatScore(t.Total)}
	}
	writeGrid(w, []string{"Supplier", "Total"}, rows)

	fmt.Fprintln(w) //nolint:errcheck
	rows = make([][]string, len(ev.Ranking))
	for i, r := range ev.Ranking {
		rows[i] = []string{strconv.Itoa(r.Rank), r.Supplier, formatScore(r.Total)}
	}
	writeGrid(w, []string{"Rank", "Supplier", "Total"}, rows)

	if len(ev.Frontier) < len(ev.Totals) {
		names := make([]string, len(ev.Frontier))
		for i, col := range ev.Frontier {
			names[i] = ev.Totals[col].Supplier
		}
		fmt.Fprintf(w, "\nNot dominated by another supplier: %s\n", strings.Join(names, ", ")) //nolint:errcheck
	}
}

// RenderCatalog lists criteria with guidance, then every weight profile.
func RenderCatalog(w io.Writer, c scoring.Catalog) {
	for i, crit := range c.Criteria {
		fmt.Fprintf(w, "%d. %s\n", i+1, crit.Name) //nolint:errcheck
		if crit.Description != "" {
			fmt.Fprintf(w, "   %s\n", crit.Description) //nolint:errcheck
		}
		for _, g := range crit.Guidance {
			fmt.Fprintf(w, "   %-5s %s\n", g.Range, g.Text) //nolint:errcheck
		}
	}
	fmt.Fprintln(w) //nolint:errcheck

	header := []string{"Criteria"}
	header = append(header, c.Contexts()...)
	rows := make([][]string, len(c.Criteria))
	for i, crit := range c.Criteria {
		row := []string{crit.Name}
		for _, p := range c.Profiles {
			row = append(row, strconv.Itoa(p.Weights[i]))
		}
		rows[i] = row
	}
	sum := []string{"Sum"}
	for _, p := range c.Profiles {
		sum = append(sum, strconv.Itoa(p.Sum()))
	}
	writeGrid(w, header, append(rows, sum))
}

func writeGrid(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	total := 0
	for _, wd := range widths {
		total += wd + 2
	}

	writeRow(w, header, widths)
	fmt.Fprintf(w, "%s\n", strings.Repeat("─", total-2)) //nolint:errcheck
	for _, row := range rows {
		writeRow(w, row, widths)
	}
}

func writeRow(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			parts[i] = cell
			continue
		}
		parts[i] = padRight(cell, widths[i])
	}
	fmt.Fprintf(w, "%s\n", strings.Join(parts, "  ")) //nolint:errcheck
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
