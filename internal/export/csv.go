package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Procure/internal/scoring"
)

const (
	criteriaHeader = "Criteria"
	weightedPrefix = "Weighted Score "
)

// Header returns the CSV header for a table:
// Criteria, <S1>, ..., <Sn>, Weighted Score <S1>, ..., Weighted Score <Sn>.
func Header(suppliers []string) []string {
	header := make([]string, 0, 1+2*len(suppliers))
	header = append(header, criteriaHeader)
	header = append(header, suppliers...)
	for _, s := range suppliers {
		header = append(header, weightedPrefix+s)
	}
	return header
}

// WriteCSV serializes the table, one row per criterion in declared order.
func WriteCSV(w io.Writer, t *scoring.ScoreTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(t.Suppliers)); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	n := len(t.Suppliers)
	for i, criterion := range t.Criteria {
		record := make([]string, 0, 1+2*n)
		record = append(record, criterion)
		for s := 0; s < n; s++ {
			record = append(record, formatNumber(t.Raw[i][s]))
		}
		for s := 0; s < n; s++ {
			record = append(record, formatNumber(t.Weighted[i][s]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row %q: %w", criterion, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// ReadCSV parses a table written by WriteCSV. Columns are matched by position
// so duplicate supplier names survive. Weights are not part of the format and
// are left nil.
func ReadCSV(r io.Reader) (*scoring.ScoreTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: empty input (no header row)")
	}

	header := records[0]
	if len(header) == 0 || header[0] != criteriaHeader {
		return nil, fmt.Errorf("csv: first column must be %q", criteriaHeader)
	}
	if (len(header)-1)%2 != 0 {
		return nil, fmt.Errorf("csv: header has %d supplier columns, expected an even count", len(header)-1)
	}
	n := (len(header) - 1) / 2
	suppliers := header[1 : 1+n]
	for s, name := range suppliers {
		if got := header[1+n+s]; got != weightedPrefix+name {
			return nil, fmt.Errorf("csv: column %d is %q, expected %q", 1+n+s, got, weightedPrefix+name)
		}
	}

	t := &scoring.ScoreTable{
		Suppliers: append([]string(nil), suppliers...),
		Criteria:  make([]string, 0, len(records)-1),
		Raw:       make([][]float64, 0, len(records)-1),
		Weighted:  make([][]float64, 0, len(records)-1),
	}
	for row, record := range records[1:] {
		raw := make([]float64, n)
		weighted := make([]float64, n)
		for s := 0; s < n; s++ {
			if raw[s], err = parseNumber(record[1+s]); err != nil {
				return nil, fmt.Errorf("csv: row %d, column %q: %w", row+2, header[1+s], err)
			}
			if weighted[s], err = parseNumber(record[1+n+s]); err != nil {
				return nil, fmt.Errorf("csv: row %d, column %q: %w", row+2, header[1+n+s], err)
			}
		}
		t.Criteria = append(t.Criteria, record[0])
		t.Raw = append(t.Raw, raw)
		t.Weighted = append(t.Weighted, weighted)
	}
	return t, nil
}

// Filename returns the download name for a matrix exported under context.
func Filename(context string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(context))
	if slug == "" {
		return "decision_matrix.csv"
	}
	return "decision_matrix_" + slug + ".csv"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
