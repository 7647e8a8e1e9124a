// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dist provides the quantile routines the interval estimators
// are built on: the standard normal and Student-t quantiles, and the
// noncentral-t quantile used by tolerance intervals.
//
// The noncentral-t quantile has no closed form and is not widely
// available, so it is computed here by monotone bisection against the
// noncentral-t CDF, which in turn is evaluated as a Poisson-weighted
// mixture of regularized incomplete beta functions.
package dist

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
)

// ConvergenceError indicates that a quantile root search failed to
// converge within its iteration bound.
type ConvergenceError struct {
	DF    float64 // degrees of freedom
	Delta float64 // noncentrality parameter
	P     float64 // requested quantile
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("noncentral-t quantile search did not converge (df=%g, delta=%g, p=%g)", e.DF, e.Delta, e.P)
}

// NormalQuantile returns the standard normal quantile Φ⁻¹(p).
func NormalQuantile(p float64) float64 {
	return stats.StdNormal.InvCDF(p)
}

// TQuantile returns the Student-t quantile with df degrees of freedom
// at probability p, 0 < p < 1.
func TQuantile(df, p float64) float64 {
	if !(p > 0 && p < 1) {
		panic(fmt.Sprintf("p out of range (0, 1): %v", p))
	}
	dist := stats.TDist{V: df}
	// Bracket the root around the normal quantile, which the t
	// quantile approaches for large df.
	z := NormalQuantile(p)
	lo, hi := z-1, z+1
	for i := 0; dist.CDF(lo) > p && i < 64; i++ {
		lo = z + 2*(lo-z)
	}
	for i := 0; dist.CDF(hi) < p && i < 64; i++ {
		hi = z + 2*(hi-z)
	}
	return bisect(dist.CDF, lo, hi, p)
}

// NoncentralTQuantile returns the quantile of the noncentral-t
// distribution with df degrees of freedom and noncentrality delta.
// That is, it returns the k such that P(T ≤ k) = p for T noncentral-t
// distributed. 0 < p < 1.
func NoncentralTQuantile(df, delta, p float64) (float64, error) {
	if !(p > 0 && p < 1) {
		panic(fmt.Sprintf("p out of range (0, 1): %v", p))
	}
	cdf := func(t float64) (float64, bool) {
		return NoncentralTCDF(df, delta, t)
	}
	// The distribution is approximately normal with mean delta for
	// moderate df, so start the bracket there.
	guess := delta + NormalQuantile(p)
	lo, hi := guess-1, guess+1
	for i := 0; ; i++ {
		v, ok := cdf(lo)
		if !ok || i == 64 {
			return 0, &ConvergenceError{df, delta, p}
		}
		if v <= p {
			break
		}
		lo = guess + 2*(lo-guess)
	}
	for i := 0; ; i++ {
		v, ok := cdf(hi)
		if !ok || i == 64 {
			return 0, &ConvergenceError{df, delta, p}
		}
		if v >= p {
			break
		}
		hi = guess + 2*(hi-guess)
	}
	for i := 0; i < 200; i++ {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			return mid, nil
		}
		v, ok := cdf(mid)
		if !ok {
			return 0, &ConvergenceError{df, delta, p}
		}
		if v < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= 1e-12*(1+math.Abs(mid)) {
			return mid, nil
		}
	}
	return 0, &ConvergenceError{df, delta, p}
}

// maxTerms bounds the Poisson-weighted series in NoncentralTCDF. The
// series needs on the order of delta²/2 terms, so this accommodates
// noncentralities up to a few hundred.
const maxTerms = 50000

// NoncentralTCDF returns P(T ≤ t) for T noncentral-t distributed with
// df degrees of freedom and noncentrality delta, following Lenth's
// series (Algorithm AS 243): a Poisson-weighted mixture of regularized
// incomplete beta functions. ok is false if the series did not
// converge within its term bound.
func NoncentralTCDF(df, delta, t float64) (p float64, ok bool) {
	if t < 0 {
		// P(T ≤ t; delta) = 1 - P(T ≤ -t; -delta).
		p, ok = NoncentralTCDF(df, -delta, -t)
		return 1 - p, ok
	}
	// The Poisson weights degenerate when delta²/2 underflows;
	// that is the central t distribution.
	if delta*delta/2 == 0 {
		return stats.TDist{V: df}.CDF(t), true
	}
	phi := stats.StdNormal.CDF(-delta)
	if t == 0 {
		return phi, true
	}

	x := t * t / (t*t + df)
	lambda := delta * delta / 2
	logLambda := math.Log(lambda)
	sqrt2 := math.Sqrt(2)

	sum := 0.0
	for j := 0; j < maxTerms; j++ {
		jf := float64(j)
		lg1, _ := math.Lgamma(jf + 1)
		lg15, _ := math.Lgamma(jf + 1.5)
		pj := math.Exp(-lambda + jf*logLambda - lg1)
		qj := delta / sqrt2 * math.Exp(-lambda+jf*logLambda-lg15)
		term := pj*mathx.BetaInc(x, jf+0.5, df/2) + qj*mathx.BetaInc(x, jf+1, df/2)
		sum += term
		// The incomplete beta factors are at most 1, so once we
		// are past the mode of the Poisson weights the remaining
		// terms are bounded by a geometric tail. Terms can be
		// negative when delta is, so compare magnitudes.
		if jf > lambda && math.Abs(term) < 1e-15 {
			return phi + 0.5*sum, true
		}
	}
	return 0, false
}

// bisect finds t with f(t) = p by bisection over [lo, hi], assuming f
// is nondecreasing and the root is bracketed.
func bisect(f func(float64) float64, lo, hi, p float64) float64 {
	for i := 0; i < 200; i++ {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			return mid
		}
		if f(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= 1e-12*(1+math.Abs(mid)) {
			break
		}
	}
	return lo + (hi-lo)/2
}
