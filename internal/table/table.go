package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
)

// RequiredColumns are the headers every uploaded sales file must carry.
// Extra columns are allowed; types and ranges are not checked.
var RequiredColumns = []string{"date", "product", "quantity", "total"}

// Table is an in-memory sales table: a header row plus data rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// MissingColumnsError reports required headers absent from an upload.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Parse decodes UTF-8 comma-separated text with a header row.
func Parse(data []byte) (Table, error) {
	if !utf8.Valid(data) {
		return Table{}, fmt.Errorf("file is not valid UTF-8 text")
	}
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err == io.EOF {
		return Table{}, fmt.Errorf("file is empty")
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, rec)
	}
	return Table{Columns: header, Rows: rows}, nil
}

// Validate checks that every required column is present in the header.
func (t Table) Validate() error {
	present := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Encode writes the table back out as canonical CSV.
func (t Table) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Preview renders the first n data rows as a text grid for the model prompt.
// Rendering is deterministic: same table and n always produce the same text.
func (t Table) Preview(n int) string {
	rows := t.Rows
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	var b strings.Builder
	tw := tablewriter.NewWriter(&b)
	tw.SetHeader(t.Columns)
	tw.AppendBulk(rows)
	tw.Render()
	return b.String()
}
