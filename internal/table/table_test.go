package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sampleCSV = "date,product,quantity,total\n2024-01-01,Widget,5,50.0\n2024-01-02,Gadget,2,30.0\n"

func TestParse(t *testing.T) {
	tbl, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCols := []string{"date", "product", "quantity", "total"}
	if len(tbl.Columns) != len(wantCols) {
		t.Fatalf("expected %d columns, got %d", len(wantCols), len(tbl.Columns))
	}
	for i, c := range wantCols {
		if tbl.Columns[i] != c {
			t.Errorf("column %d: expected %q, got %q", i, c, tbl.Columns[i])
		}
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0][1] != "Widget" {
		t.Errorf("expected Widget, got %q", tbl.Rows[0][1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty file", []byte("")},
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd}},
		{"ragged rows", []byte("a,b\n1,2,3\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		wantMissing []string
	}{
		{
			name:    "all required present",
			columns: []string{"date", "product", "quantity", "total"},
		},
		{
			name:    "extra columns allowed",
			columns: []string{"region", "date", "product", "quantity", "total", "notes"},
		},
		{
			name:        "one missing",
			columns:     []string{"date", "product", "quantity"},
			wantMissing: []string{"total"},
		},
		{
			name:        "several missing keeps required order",
			columns:     []string{"product"},
			wantMissing: []string{"date", "quantity", "total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Table{Columns: tt.columns}.Validate()
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var missing *MissingColumnsError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingColumnsError, got %v", err)
			}
			if len(missing.Columns) != len(tt.wantMissing) {
				t.Fatalf("expected missing %v, got %v", tt.wantMissing, missing.Columns)
			}
			for i, c := range tt.wantMissing {
				if missing.Columns[i] != c {
					t.Errorf("missing[%d]: expected %q, got %q", i, c, missing.Columns[i])
				}
				if !strings.Contains(err.Error(), c) {
					t.Errorf("error message %q does not name column %q", err.Error(), c)
				}
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tbl, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := tbl.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if len(again.Rows) != len(tbl.Rows) {
		t.Errorf("expected %d rows after round trip, got %d", len(tbl.Rows), len(again.Rows))
	}
}

func TestPreview(t *testing.T) {
	tbl := Table{
		Columns: []string{"date", "product", "quantity", "total"},
		Rows: [][]string{
			{"2024-01-01", "Widget", "5", "50.0"},
			{"2024-01-02", "Gadget", "2", "30.0"},
			{"2024-01-03", "Widget", "1", "10.0"},
		},
	}

	preview := tbl.Preview(2)
	for _, want := range []string{"DATE", "PRODUCT", "Widget", "Gadget", "50.0"} {
		if !strings.Contains(preview, want) {
			t.Errorf("preview missing %q:\n%s", want, preview)
		}
	}
	if strings.Contains(preview, "2024-01-03") {
		t.Errorf("preview should cap at 2 rows:\n%s", preview)
	}

	// Deterministic: same input, same output.
	if tbl.Preview(2) != preview {
		t.Error("preview is not deterministic")
	}

	// n larger than the table includes everything.
	full := tbl.Preview(10)
	if !strings.Contains(full, "2024-01-03") {
		t.Errorf("full preview missing last row:\n%s", full)
	}
}
