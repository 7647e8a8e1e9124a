// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vibstat fits the blast-vibration attenuation law and derives
// upper safety bounds from it.
//
// The model is log-linear with lognormal noise: y = intercept +
// slope·x, where x is log10 of the scaled distance and y is log10 of
// the peak particle velocity. Fit produces the regression; an
// Estimator derives upper bounds at a chosen confidence level by three
// methods of increasing rigor (approximate, prediction interval,
// tolerance interval); FitQuadratic refits the bound curves to
// quadratics so they can be inverted in closed form downstream.
package vibstat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/mineseis/ppvlaw/vibfmt"
)

// DegenerateModelError indicates a model cannot support the requested
// computation: no variance in x, or a flat bound line that cannot be
// inverted.
type DegenerateModelError struct {
	N   int
	Msg string
}

func (e *DegenerateModelError) Error() string {
	if e.N > 0 {
		return fmt.Sprintf("degenerate model (n=%d): %s", e.N, e.Msg)
	}
	return "degenerate model: " + e.Msg
}

// Regression is the fitted attenuation line with its residual
// statistics. It is immutable once produced by Fit.
type Regression struct {
	Sample *vibfmt.Sample

	Intercept float64
	Slope     float64

	N     int     // number of observations
	XMean float64 // mean of the sample xs
	SS    float64 // sum of squared deviations of x from XMean
	MSE   float64 // residual standard error, sqrt(Σr²/(n-2))
}

// Fit computes the ordinary least-squares fit of y = intercept +
// slope·x over the sample.
func Fit(s *vibfmt.Sample) (*Regression, error) {
	if err := s.Valid(); err != nil {
		return nil, err
	}
	n := s.Len()

	xMean := 0.0
	for _, x := range s.Xs {
		xMean += x
	}
	xMean /= float64(n)
	ss := 0.0
	for _, x := range s.Xs {
		ss += (x - xMean) * (x - xMean)
	}
	if ss == 0 {
		return nil, &DegenerateModelError{n, "all x values identical"}
	}

	line := fit.PolynomialRegression(s.Xs, s.Ys, nil, 1)
	intercept, slope := line.Coefficients[0], line.Coefficients[1]

	rss := 0.0
	for i, x := range s.Xs {
		r := s.Ys[i] - (intercept + slope*x)
		rss += r * r
	}

	return &Regression{
		Sample:    s,
		Intercept: intercept,
		Slope:     slope,
		N:         n,
		XMean:     xMean,
		SS:        ss,
		MSE:       math.Sqrt(rss / float64(n-2)),
	}, nil
}

// Predict returns the regression values intercept + slope·x for each
// x in xs.
func (r *Regression) Predict(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = r.Intercept + r.Slope*x
	}
	return ys
}
