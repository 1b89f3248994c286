package biomart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Response wraps the raw tab-separated body of a query result.
//
// A Response is immutable. Derived views (header, records) are computed on
// demand from the raw text, so every call to [Response.Records] yields a
// fresh scanner positioned at the first data row.
type Response struct {
	raw string
}

// NewResponse wraps a tab-separated result body, e.g. one previously saved
// to disk. [Client.Query] constructs responses directly.
func NewResponse(raw string) *Response {
	return &Response{raw: raw}
}

// Raw returns the unmodified response body.
func (r *Response) Raw() string { return r.raw }

// Header returns the first line of the body split on tab. Queries built with
// the default header setting always carry one.
//
// Returns [ErrParse] if the body is empty.
func (r *Response) Header() ([]string, error) {
	if strings.TrimSpace(r.raw) == "" {
		return nil, fmt.Errorf("%w: empty response body", ErrParse)
	}
	line := r.raw
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return strings.Split(strings.TrimRight(line, "\r"), "\t"), nil
}

// Records returns a scanner over the data rows, skipping the header line.
// Each call returns an independent scanner over the full body, so results
// can be iterated any number of times.
func (r *Response) Records() *RecordScanner {
	return newRecordScanner(r.raw, true)
}

// All collects every data row. Convenience for callers that do not need the
// row-at-a-time scanner.
func (r *Response) All() ([][]string, error) {
	var rows [][]string
	scanner := r.Records()
	for scanner.Scan() {
		rows = append(rows, scanner.Record())
	}
	return rows, scanner.Err()
}

// RecordScanner iterates over the tab-split rows of a result body, one row
// per Scan call, in the manner of bufio.Scanner.
type RecordScanner struct {
	reader     *csv.Reader
	skipHeader bool
	row        []string
	err        error
}

func newRecordScanner(raw string, skipHeader bool) *RecordScanner {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return &RecordScanner{reader: reader, skipHeader: skipHeader}
}

// Scan advances to the next row. It returns false when the input is
// exhausted or a parse error occurred; [RecordScanner.Err] distinguishes the
// two.
func (s *RecordScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if s.skipHeader {
		s.skipHeader = false
		if _, err := s.reader.Read(); err != nil {
			if err != io.EOF {
				s.err = fmt.Errorf("%w: %v", ErrParse, err)
			}
			return false
		}
	}
	row, err := s.reader.Read()
	if err != nil {
		if err != io.EOF {
			s.err = fmt.Errorf("%w: %v", ErrParse, err)
		}
		return false
	}
	s.row = row
	return true
}

// Record returns the row read by the last successful Scan.
func (s *RecordScanner) Record() []string { return s.row }

// Err returns the first parse error encountered, or nil.
func (s *RecordScanner) Err() error { return s.err }

// splitRecords parses a whole tab-separated body into rows without header
// handling. Used for the metadata listings, which carry no header line.
func splitRecords(raw string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rows = append(rows, row)
	}
}
