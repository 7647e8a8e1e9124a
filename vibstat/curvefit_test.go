// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibstat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-moremath/vec"
)

func TestPolyEval(t *testing.T) {
	p := Poly{Coeffs: []float64{2, -1.5, 0.25}}
	test := func(x, want float64) {
		t.Helper()
		if got := p.Eval(x); math.Abs(got-want) > 1e-12 {
			t.Errorf("Eval(%v) = %v, want %v", x, got, want)
		}
	}
	test(0, 2)
	test(1, 0.75)
	test(-2, 6)
}

func TestFitQuadraticExact(t *testing.T) {
	// Refitting data that is exactly quadratic recovers the
	// coefficients.
	xs := vec.Linspace(0, 3, 20)
	curve := &BoundCurve{Method: MethodPrediction, Xs: xs, Upper: make([]float64, len(xs))}
	want := []float64{2, -1.2, 0.3}
	for i, x := range xs {
		curve.Upper[i] = want[0] + want[1]*x + want[2]*x*x
	}
	poly, err := FitQuadratic(curve)
	if err != nil {
		t.Fatal(err)
	}
	if len(poly.Coeffs) != 3 {
		t.Fatalf("got %d coefficients, want 3", len(poly.Coeffs))
	}
	for i, w := range want {
		if math.Abs(poly.Coeffs[i]-w) > 1e-9 {
			t.Errorf("coefficient %d = %v, want %v", i, poly.Coeffs[i], w)
		}
	}
	if poly.Domain != [2]float64{0, 3} {
		t.Errorf("domain = %v, want [0 3]", poly.Domain)
	}

	if _, err := FitQuadratic(&BoundCurve{Xs: xs[:2], Upper: curve.Upper[:2]}); err == nil {
		t.Error("FitQuadratic on 2 points succeeded, want error")
	}
}

func TestFitQuadraticTracksBound(t *testing.T) {
	// The quadratic refit is an approximation, but over the grid it
	// must track the true prediction bound closely.
	rng := rand.New(rand.NewSource(6))
	est := mustEstimator(t, synthSample(rng, 30, 2, -1.5, 0.3), DefaultSpec)
	grid, err := Grid(est.Reg, 20)
	if err != nil {
		t.Fatal(err)
	}
	curve, err := est.Curve(MethodPrediction, grid)
	if err != nil {
		t.Fatal(err)
	}
	poly, err := FitQuadratic(curve)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range grid {
		if math.Abs(poly.Eval(x)-curve.Upper[i]) > 0.01 {
			t.Errorf("refit at x=%v: %v, bound %v", x, poly.Eval(x), curve.Upper[i])
		}
	}
}

func TestApproxLine(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	est := mustEstimator(t, synthSample(rng, 30, 2, -1.5, 0.3), DefaultSpec)
	line := est.ApproxLine()
	if len(line.Coeffs) != 2 {
		t.Fatalf("got %d coefficients, want 2", len(line.Coeffs))
	}
	// The line is the closed form of the approximate bound.
	upper, err := est.Upper(MethodApprox, est.Reg.Sample.Xs)
	if err != nil {
		t.Fatal(err)
	}
	for i, x := range est.Reg.Sample.Xs {
		if math.Abs(line.Eval(x)-upper[i]) > 1e-12 {
			t.Errorf("line at x=%v: %v, bound %v", x, line.Eval(x), upper[i])
		}
	}
}

func TestFitModels(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	est := mustEstimator(t, synthSample(rng, 30, 2, -1.5, 0.3), DefaultSpec)
	grid, err := Grid(est.Reg, 20)
	if err != nil {
		t.Fatal(err)
	}
	models, err := FitModels(est, grid)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(models.Approx.Coeffs); got != 2 {
		t.Errorf("approx model has %d coefficients, want 2", got)
	}
	for _, m := range []Method{MethodPrediction, MethodTolerance} {
		if got := len(models.ByMethod(m).Coeffs); got != 3 {
			t.Errorf("%s model has %d coefficients, want 3", m, got)
		}
	}
}
