// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibfmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SyntaxError represents a syntax error on a particular line of a
// sample file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

// ReadFile reads a sample from the file at path. The path "-" reads
// from stdin.
func ReadFile(path string) (*Sample, error) {
	if path == "-" {
		return ReadSample(os.Stdin, "<stdin>")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSample(f, path)
}

// ReadSample reads a sample from r. name is used in error messages; it
// is purely diagnostic.
//
// The first non-blank, non-comment line is the header. Lines starting
// with '#' are comments. The header must name "x" and "y" columns
// (case-insensitive); the reader returns ErrMissingColumn otherwise,
// and ErrInsufficientData if fewer than MinObservations data rows
// follow.
func ReadSample(r io.Reader, name string) (*Sample, error) {
	if name == "" {
		name = "<unknown>"
	}
	s := bufio.NewScanner(r)
	lineNum := 0

	// Locate the header row.
	var xCol, yCol int
	haveHeader := false
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitRow(line)
		xCol, yCol = -1, -1
		for i, f := range fields {
			switch strings.ToLower(f) {
			case "x":
				xCol = i
			case "y":
				yCol = i
			}
		}
		if xCol < 0 || yCol < 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingColumn)
		}
		haveHeader = true
		break
	}
	if !haveHeader {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w", name, ErrMissingColumn)
	}

	// Read data rows.
	sample := new(Sample)
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := splitRow(line)
		if len(fields) <= xCol || len(fields) <= yCol {
			return nil, &SyntaxError{name, lineNum, fmt.Sprintf("row has %d fields, need at least %d", len(fields), max(xCol, yCol)+1)}
		}
		x, err := strconv.ParseFloat(fields[xCol], 64)
		if err != nil {
			return nil, &SyntaxError{name, lineNum, "parsing x: " + err.Error()}
		}
		y, err := strconv.ParseFloat(fields[yCol], 64)
		if err != nil {
			return nil, &SyntaxError{name, lineNum, "parsing y: " + err.Error()}
		}
		sample.Xs = append(sample.Xs, x)
		sample.Ys = append(sample.Ys, y)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", name, lineNum, err)
	}
	if sample.Len() < MinObservations {
		return nil, fmt.Errorf("%s: %w", name, ErrInsufficientData)
	}
	return sample, nil
}

// splitRow splits a row on whitespace or on a comma/semicolon
// delimiter, whichever the row uses.
func splitRow(line string) []string {
	sep := ""
	for _, c := range line {
		if c == ',' {
			sep = ","
			break
		}
		if c == ';' {
			sep = ";"
			break
		}
	}
	if sep == "" {
		return strings.Fields(line)
	}
	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
