package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/catalogstage/report"
)

// WriteReport writes the report as indented JSON.
func WriteReport(r *report.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(rd io.Reader) (*report.Report, error) {
	var r report.Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}
