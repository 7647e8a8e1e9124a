// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vibfmt reads blast-vibration samples and writes result
// tables.
//
// The input format is a plain text table with a header row naming its
// columns. The columns "x" and "y" are required: x is log10 of the
// scaled distance and y is log10 of the measured peak particle
// velocity. Columns may be separated by whitespace, commas, semicolons
// or tabs, and any extra columns are ignored.
package vibfmt

import (
	"errors"
	"math"
)

// Sample is an ordered set of (x, y) observations in log10 scale.
//
// A Sample is immutable once loaded; the statistics packages only ever
// read it.
type Sample struct {
	Xs []float64
	Ys []float64
}

// MinObservations is the smallest usable sample size. With fewer than
// three points the residual degrees of freedom n-2 leave nothing to
// estimate the noise from.
const MinObservations = 3

var (
	// ErrMissingColumn indicates the input table lacks a required
	// "x" or "y" column.
	ErrMissingColumn = errors.New("input must contain 'x' and 'y' columns")

	// ErrInsufficientData indicates the input table has fewer than
	// MinObservations rows.
	ErrInsufficientData = errors.New("sample must have at least 3 observations")
)

// Len returns the number of observations.
func (s *Sample) Len() int { return len(s.Xs) }

// Bounds returns the smallest and largest x in the sample.
func (s *Sample) Bounds() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, x := range s.Xs {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return
}

// Valid checks the structural invariants of s: parallel slices and at
// least MinObservations rows.
func (s *Sample) Valid() error {
	if len(s.Xs) != len(s.Ys) {
		return errors.New("x and y sequences differ in length")
	}
	if len(s.Xs) < MinObservations {
		return ErrInsufficientData
	}
	return nil
}
