// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vibcharge inverts fitted vibration bound models to size
// explosive charges.
//
// Each bound model gives the largest scaled distance at which the
// vibration threshold is respected; from it, the maximum operating
// charge at a distance D follows from the scaling law
// s_d = D / Q^beta, so Q = (D / s_d)^(1/beta).
package vibcharge

import (
	"fmt"
	"math"

	"github.com/mineseis/ppvlaw/vibfmt"
	"github.com/mineseis/ppvlaw/vibstat"
)

// NoSolutionError indicates a bound model cannot be inverted for the
// requested threshold.
type NoSolutionError struct {
	Method vibstat.Method
	Msg    string
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no feasible scaled distance for %s bound: %s", e.Method, e.Msg)
}

// Config configures the charge solver.
type Config struct {
	// Threshold is the peak particle velocity not to exceed, in the
	// units of the original (pre-log) sample measurements.
	Threshold float64
	// Beta is the scaling-law exponent: 0.5 for elongated charges,
	// 1/3 for spherical charges.
	Beta float64
	// Distances is the grid of distances to tabulate, strictly
	// increasing and positive.
	Distances []float64
}

func (c Config) valid() error {
	if !(c.Threshold > 0) {
		return fmt.Errorf("ppv threshold must be positive, got %v", c.Threshold)
	}
	if !(c.Beta > 0) {
		return fmt.Errorf("beta must be positive, got %v", c.Beta)
	}
	if len(c.Distances) == 0 {
		return fmt.Errorf("empty distance grid")
	}
	prev := 0.0
	for i, d := range c.Distances {
		if !(d > prev) {
			return fmt.Errorf("distance grid must be positive and strictly increasing (index %d: %v)", i, d)
		}
		prev = d
	}
	return nil
}

// Table is the charge-versus-distance table, one charge column per
// bound method, aligned to the distance grid.
type Table struct {
	Distances []float64

	// ScaledDistance holds the inverted scaled distance per method,
	// indexed by vibstat.Method.
	ScaledDistance [3]float64

	Approx     []float64
	Prediction []float64
	Tolerance  []float64
}

// Solve inverts the three bound models for cfg.Threshold and tabulates
// the maximum charge at each distance in cfg.Distances.
func Solve(models vibstat.Models, cfg Config) (*Table, error) {
	if err := cfg.valid(); err != nil {
		return nil, err
	}
	logppv := math.Log10(cfg.Threshold)

	tab := &Table{Distances: cfg.Distances}
	for _, m := range vibstat.Methods {
		poly := models.ByMethod(m)
		var s float64
		var err error
		switch len(poly.Coeffs) {
		case 2:
			s, err = invertLinear(m, poly, logppv)
		case 3:
			s, err = invertQuadratic(m, poly, logppv)
		default:
			err = fmt.Errorf("%s bound model has %d coefficients, want 2 or 3", m, len(poly.Coeffs))
		}
		if err != nil {
			return nil, err
		}
		sd := math.Pow(10, s)
		tab.ScaledDistance[m] = sd

		qs := make([]float64, len(cfg.Distances))
		for i, d := range cfg.Distances {
			qs[i] = math.Pow(d/sd, 1/cfg.Beta)
		}
		switch m {
		case vibstat.MethodApprox:
			tab.Approx = qs
		case vibstat.MethodPrediction:
			tab.Prediction = qs
		case vibstat.MethodTolerance:
			tab.Tolerance = qs
		}
	}
	return tab, nil
}

// AsTable converts the result to a generic output table for the
// reporting collaborators.
func (t *Table) AsTable() *vibfmt.Table {
	tab, _ := vibfmt.NewTable(
		vibfmt.Column{Name: "D", Values: t.Distances},
		vibfmt.Column{Name: "Q_approx", Values: t.Approx},
		vibfmt.Column{Name: "Q_prediction", Values: t.Prediction},
		vibfmt.Column{Name: "Q_tolerance", Values: t.Tolerance},
	)
	return tab
}

// invertLinear solves c0 + c1·s = logppv for s.
func invertLinear(m vibstat.Method, p vibstat.Poly, logppv float64) (float64, error) {
	if p.Coeffs[1] == 0 {
		return 0, &vibstat.DegenerateModelError{Msg: fmt.Sprintf("%s bound has zero slope, cannot invert", m)}
	}
	return (logppv - p.Coeffs[0]) / p.Coeffs[1], nil
}

// invertQuadratic solves c2·s² + c1·s + c0 = logppv for s.
//
// When the discriminant admits two roots the smaller one is usually
// the operative solution, but that is not guaranteed for every fitted
// coefficient set, so roots are first screened against the model's
// fitted domain (widened by half its span on each side): a lone
// in-domain root wins, two in-domain roots fall back to the smaller,
// and no in-domain root is reported as infeasible.
func invertQuadratic(m vibstat.Method, p vibstat.Poly, logppv float64) (float64, error) {
	a, b, c := p.Coeffs[2], p.Coeffs[1], p.Coeffs[0]-logppv
	if a == 0 {
		return invertLinear(m, vibstat.Poly{Coeffs: []float64{p.Coeffs[0], p.Coeffs[1]}, Domain: p.Domain}, logppv)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, &NoSolutionError{m, fmt.Sprintf("discriminant %g is negative for threshold 10^%g", disc, logppv)}
	}
	sq := math.Sqrt(disc)
	lo, hi := (-b-sq)/(2*a), (-b+sq)/(2*a)
	if lo > hi {
		lo, hi = hi, lo
	}

	margin := (p.Domain[1] - p.Domain[0]) / 2
	min, max := p.Domain[0]-margin, p.Domain[1]+margin
	loIn := lo >= min && lo <= max
	hiIn := hi >= min && hi <= max
	switch {
	case loIn:
		return lo, nil
	case hiIn:
		return hi, nil
	}
	return 0, &NoSolutionError{m, fmt.Sprintf("roots %g and %g fall outside the modeled range [%g, %g]", lo, hi, min, max)}
}
