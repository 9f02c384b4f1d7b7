package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"index", "timestamp", "nodes", "max_depth", "used_codons", "invalid", "phenotype"}

// CSVWriter streams records to an io.Writer in CSV form, header first.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSV record writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write appends one record, emitting the header on first use.
func (cw *CSVWriter) Write(rec Record) error {
	if !cw.wroteHeader {
		if err := cw.w.Write(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		cw.wroteHeader = true
	}
	row := []string{
		strconv.Itoa(rec.Index),
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		strconv.Itoa(rec.Nodes),
		strconv.Itoa(rec.MaxDepth),
		strconv.Itoa(rec.UsedCodons),
		strconv.FormatBool(rec.Invalid),
		rec.Phenotype,
	}
	if err := cw.w.Write(row); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Flush writes any buffered rows to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// ReadCSV reads back all records from a CSV log.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(csvHeader), len(row))
		}
		rec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCSVRow(row []string) (Record, error) {
	var rec Record
	var err error

	if rec.Index, err = strconv.Atoi(row[0]); err != nil {
		return rec, fmt.Errorf("index: %w", err)
	}
	if rec.Timestamp, err = time.Parse(time.RFC3339Nano, row[1]); err != nil {
		return rec, fmt.Errorf("timestamp: %w", err)
	}
	if rec.Nodes, err = strconv.Atoi(row[2]); err != nil {
		return rec, fmt.Errorf("nodes: %w", err)
	}
	if rec.MaxDepth, err = strconv.Atoi(row[3]); err != nil {
		return rec, fmt.Errorf("max_depth: %w", err)
	}
	if rec.UsedCodons, err = strconv.Atoi(row[4]); err != nil {
		return rec, fmt.Errorf("used_codons: %w", err)
	}
	if rec.Invalid, err = strconv.ParseBool(row[5]); err != nil {
		return rec, fmt.Errorf("invalid: %w", err)
	}
	rec.Phenotype = row[6]
	return rec, nil
}
