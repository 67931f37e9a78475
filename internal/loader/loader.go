// Package loader reads CSV and gzip-compressed CSV datasets into tables.
package loader

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/polarize/schema"
)

// Load reads a CSV file (or .csv.gz / .gz) into a Table. The first record
// is the header; numeric cells become float64, everything else stays a
// string. The raw on-disk bytes are returned alongside the table so the
// caller can derive a stable dataset hash.
func Load(path string) (*schema.Table, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", path, err)
	}

	var reader io.Reader = bytes.NewReader(raw)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress %q: %w", path, err)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	table, err := Parse(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return table, raw, nil
}

// Parse decodes CSV content from r into a Table.
func Parse(r io.Reader) (*schema.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}

	cols := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, fmt.Errorf("header column %d is empty", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate header column %q", name)
		}
		seen[name] = true
		cols[i] = name
	}

	table := schema.NewTable(cols...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(schema.Row, len(cols))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if n, err := strconv.ParseFloat(cell, 64); err == nil {
				row[cols[i]] = n
			} else {
				row[cols[i]] = cell
			}
		}
		table.AppendRow(row)
	}
	return table, nil
}
