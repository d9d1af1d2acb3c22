package henke

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// headerLines is the number of descriptive lines at the top of every data file.
const headerLines = 2

// Table is a rectangular block of numbers parsed from a data file. The first
// column is the swept axis (energy, wavelength or angle).
type Table struct {
	Header []string
	Rows   [][]float64
}

func (t Table) Width() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Column copies out the i-th column.
func (t Table) Column(i int) []float64 {
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// WithWavelengthAxis returns a copy of the table whose first column is converted
// from energy (eV) to wavelength (nm).
func (t Table) WithWavelengthAxis() Table {
	rows := make([][]float64, len(t.Rows))
	for r, row := range t.Rows {
		converted := make([]float64, len(row))
		copy(converted, row)
		converted[0] = EnergyToWavelength(row[0])
		rows[r] = converted
	}
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	return Table{Header: header, Rows: rows}
}

// ParseTable parses a data file, it skips the header and requires every
// remaining non-blank line to hold exactly `columns` numbers.
func ParseTable(body string, columns int) (Table, error) {
	var table Table

	scanner := bufio.NewScanner(strings.NewReader(body))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo <= headerLines {
			table.Header = append(table.Header, strings.TrimSpace(line))
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != columns {
			return Table{}, &ParseError{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("expected %d columns, got %d", columns, len(fields)),
			}
		}
		row := make([]float64, columns)
		for i, field := range fields {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Table{}, &ParseError{
					Line:   lineNo,
					Text:   line,
					Reason: fmt.Sprintf("column %d is not a number", i+1),
				}
			}
			row[i] = value
		}
		table.Rows = append(table.Rows, row)
	}
	err := scanner.Err()
	if err != nil {
		return Table{}, &ParseError{Reason: err.Error()}
	}

	if len(table.Rows) == 0 {
		return Table{}, &ParseError{Reason: "no data rows"}
	}
	return table, nil
}
