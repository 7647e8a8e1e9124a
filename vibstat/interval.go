// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibstat

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
	"github.com/mineseis/ppvlaw/vibstat/internal/dist"
)

// Method identifies one of the three upper-bound families.
type Method int

const (
	// MethodApprox shifts the regression line up by a constant
	// normal-quantile offset. It ignores parameter estimation
	// uncertainty, so it is the cheapest and the least conservative
	// away from the center of the data.
	MethodApprox Method = iota
	// MethodPrediction is the rigorous single-future-observation
	// prediction bound with Student-t quantiles. It widens away
	// from the sample mean.
	MethodPrediction
	// MethodTolerance bounds a chosen fraction of the population
	// with the chosen confidence, using noncentral-t factors.
	MethodTolerance
)

var methodNames = [...]string{"approx", "prediction", "tolerance"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// Methods lists the three bound methods in their conventional order.
var Methods = [...]Method{MethodApprox, MethodPrediction, MethodTolerance}

// Spec configures interval estimation.
type Spec struct {
	// Confidence is the confidence level nc in (0.5, 1). Exactly
	// 0.5 is silently nudged to the next float above it, since the
	// quantile of an even split is degenerate.
	Confidence float64
	// Coverage is the population fraction a tolerance interval must
	// capture, in (0, 1).
	Coverage float64
}

// DefaultSpec is the conventional configuration: 90% confidence and
// 95% population coverage.
var DefaultSpec = Spec{Confidence: 0.9, Coverage: 0.95}

func (s Spec) normalize() (Spec, error) {
	if s.Confidence == 0.5 {
		s.Confidence = math.Nextafter(0.5, 1)
	}
	if !(s.Confidence > 0.5 && s.Confidence < 1) {
		return s, fmt.Errorf("confidence %v out of range (0.5, 1)", s.Confidence)
	}
	if !(s.Coverage > 0 && s.Coverage < 1) {
		return s, fmt.Errorf("coverage %v out of range (0, 1)", s.Coverage)
	}
	return s, nil
}

// An Estimator computes upper bounds on log10(ppv) at arbitrary
// x-coordinates from a fitted regression. It is a pure function of its
// inputs and may be reused across calls.
type Estimator struct {
	Reg  *Regression
	Spec Spec

	// InvNCT is the inverse noncentral-t CDF used by the tolerance
	// method: InvNCT(df, delta, p) returns k with P(T ≤ k) = p.
	// If nil, the built-in routine is used.
	InvNCT func(df, delta, p float64) (float64, error)
}

// NewEstimator returns an estimator for reg under spec.
func NewEstimator(reg *Regression, spec Spec) (*Estimator, error) {
	spec, err := spec.normalize()
	if err != nil {
		return nil, err
	}
	return &Estimator{Reg: reg, Spec: spec, InvNCT: dist.NoncentralTQuantile}, nil
}

// Predict returns the regression line at each x in xs.
func (e *Estimator) Predict(xs []float64) []float64 {
	return e.Reg.Predict(xs)
}

// Upper returns the upper bound for method m at each x in xs.
func (e *Estimator) Upper(m Method, xs []float64) ([]float64, error) {
	reg, nc := e.Reg, e.Spec.Confidence
	ys := reg.Predict(xs)
	switch m {
	case MethodApprox:
		off := dist.NormalQuantile(nc) * reg.MSE
		for i := range ys {
			ys[i] += off
		}

	case MethodPrediction:
		tq := dist.TQuantile(float64(reg.N-2), nc)
		for i, x := range xs {
			gap := x - reg.XMean
			ys[i] += tq * reg.MSE * math.Sqrt(1+1/float64(reg.N)+gap*gap/reg.SS)
		}

	case MethodTolerance:
		inv := e.InvNCT
		if inv == nil {
			inv = dist.NoncentralTQuantile
		}
		zc := dist.NormalQuantile(e.Spec.Coverage)
		for i, x := range xs {
			gap := x - reg.XMean
			tol := math.Sqrt(1/float64(reg.N) + gap*gap/reg.SS)
			k, err := inv(float64(reg.N-2), zc/tol, nc)
			if err != nil {
				return nil, err
			}
			ys[i] += k * reg.MSE * tol
		}

	default:
		panic(fmt.Sprintf("bad Method %v", m))
	}
	return ys, nil
}

// A BoundCurve is an upper bound evaluated on a grid of
// x-coordinates.
type BoundCurve struct {
	Method Method
	Xs     []float64
	Upper  []float64
}

// Curve evaluates the upper bound for method m on xs.
func (e *Estimator) Curve(m Method, xs []float64) (*BoundCurve, error) {
	upper, err := e.Upper(m, xs)
	if err != nil {
		return nil, err
	}
	return &BoundCurve{Method: m, Xs: xs, Upper: upper}, nil
}

// SampleCoverage returns the fraction of sample y values strictly
// below the method's bound at the sample x-coordinates. For the
// prediction and tolerance methods this approaches the confidence
// level as the sample grows.
func (e *Estimator) SampleCoverage(m Method) (float64, error) {
	upper, err := e.Upper(m, e.Reg.Sample.Xs)
	if err != nil {
		return 0, err
	}
	covered := 0
	for i, y := range e.Reg.Sample.Ys {
		if y < upper[i] {
			covered++
		}
	}
	return float64(covered) / float64(len(upper)), nil
}

// Grid returns m evenly spaced x-coordinates spanning the sample of
// reg. m must be at least 3.
func Grid(reg *Regression, m int) ([]float64, error) {
	if m < 3 {
		return nil, fmt.Errorf("grid size %d too small, need at least 3", m)
	}
	lo, hi := reg.Sample.Bounds()
	return vec.Linspace(lo, hi, m), nil
}
