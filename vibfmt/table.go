// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibfmt

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// A Column is a named sequence of values in an output table.
type Column struct {
	Name   string
	Values []float64
}

// A Table is an ordered collection of equal-length columns. It is the
// opaque result format handed to reporting and plotting collaborators.
type Table struct {
	Cols []Column
}

// NewTable builds a table from the given columns, checking that they
// all have the same length.
func NewTable(cols ...Column) (*Table, error) {
	for _, c := range cols[1:] {
		if len(c.Values) != len(cols[0].Values) {
			return nil, errors.New("table columns differ in length")
		}
	}
	return &Table{Cols: cols}, nil
}

// Rows returns the number of rows in the table.
func (t *Table) Rows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return len(t.Cols[0].Values)
}

// WriteCSV writes the table to w in CSV format with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(t.Cols))
	for i, c := range t.Cols {
		header[i] = c.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(t.Cols))
	for row := 0; row < t.Rows(); row++ {
		for i, c := range t.Cols {
			record[i] = strconv.FormatFloat(c.Values[row], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
