// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibstat

import (
	"fmt"

	"github.com/aclements/go-moremath/fit"
	"github.com/mineseis/ppvlaw/vibstat/internal/dist"
)

// A Poly is a low-order polynomial bound model y = Σ Coeffs[i]·xⁱ,
// valid over Domain. Degree 1 models come from the approximate method;
// degree 2 models refit the prediction and tolerance curves.
type Poly struct {
	Coeffs []float64  // ascending powers of x
	Domain [2]float64 // x range the model was fitted over
}

// Eval evaluates the polynomial at x.
func (p Poly) Eval(x float64) float64 {
	y := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*x + p.Coeffs[i]
	}
	return y
}

// FitQuadratic fits a three-coefficient quadratic to the bound curve
// by least squares. The prediction and tolerance bounds are not
// exactly quadratic in x, but over the grid range a quadratic tracks
// them closely enough to invert in closed form downstream.
func FitQuadratic(c *BoundCurve) (Poly, error) {
	if len(c.Xs) < 3 {
		return Poly{}, fmt.Errorf("bound curve has %d points, need at least 3 for a quadratic fit", len(c.Xs))
	}
	q := fit.PolynomialRegression(c.Xs, c.Upper, nil, 2)
	return Poly{
		Coeffs: q.Coefficients,
		Domain: [2]float64{c.Xs[0], c.Xs[len(c.Xs)-1]},
	}, nil
}

// ApproxLine returns the approximate-method bound as a line. The
// approximate bound is already linear, so it needs no refit: the
// regression line shifted up by the constant normal-quantile offset.
func (e *Estimator) ApproxLine() Poly {
	off := dist.NormalQuantile(e.Spec.Confidence) * e.Reg.MSE
	lo, hi := e.Reg.Sample.Bounds()
	return Poly{
		Coeffs: []float64{e.Reg.Intercept + off, e.Reg.Slope},
		Domain: [2]float64{lo, hi},
	}
}

// Models bundles the three inverted-form bound models.
type Models struct {
	Approx     Poly // degree 1
	Prediction Poly // degree 2
	Tolerance  Poly // degree 2
}

// ByMethod returns the model for method m.
func (ms Models) ByMethod(m Method) Poly {
	switch m {
	case MethodApprox:
		return ms.Approx
	case MethodPrediction:
		return ms.Prediction
	case MethodTolerance:
		return ms.Tolerance
	}
	panic(fmt.Sprintf("bad Method %v", m))
}

// FitModels evaluates the three bounds on grid and refits the
// prediction and tolerance curves to quadratics.
func FitModels(e *Estimator, grid []float64) (Models, error) {
	var ms Models
	ms.Approx = e.ApproxLine()
	for _, m := range []Method{MethodPrediction, MethodTolerance} {
		curve, err := e.Curve(m, grid)
		if err != nil {
			return Models{}, err
		}
		poly, err := FitQuadratic(curve)
		if err != nil {
			return Models{}, err
		}
		if m == MethodPrediction {
			ms.Prediction = poly
		} else {
			ms.Tolerance = poly
		}
	}
	return ms, nil
}
