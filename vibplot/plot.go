// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vibplot renders the attenuation-law results as PNG charts.
package vibplot

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mineseis/ppvlaw/vibcharge"
	"github.com/mineseis/ppvlaw/vibstat"
)

// pointStyle returns a style that renders points only (no connecting
// line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color, dashed bool) chart.Style {
	s := chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
	}
	if dashed {
		s.StrokeDashArray = []float64{5, 5}
	}
	return s
}

func methodColor(m vibstat.Method) drawing.Color {
	switch m {
	case vibstat.MethodApprox:
		return chart.ColorAlternateGray
	case vibstat.MethodPrediction:
		return chart.ColorRed
	case vibstat.MethodTolerance:
		return chart.ColorGreen
	}
	return chart.ColorBlack
}

// RenderBounds writes a PNG chart of the sample, the regression line,
// and the given upper-bound curves to w.
func RenderBounds(w io.Writer, reg *vibstat.Regression, curves []*vibstat.BoundCurve) error {
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "data",
			XValues: reg.Sample.Xs,
			YValues: reg.Sample.Ys,
			Style:   pointStyle(chart.ColorBlue),
		},
	}
	if len(curves) > 0 {
		grid := curves[0].Xs
		series = append(series, chart.ContinuousSeries{
			Name:    "regression",
			XValues: grid,
			YValues: reg.Predict(grid),
			Style:   lineStyle(chart.ColorBlue, false),
		})
	}
	for _, c := range curves {
		series = append(series, chart.ContinuousSeries{
			Name:    c.Method.String(),
			XValues: c.Xs,
			YValues: c.Upper,
			Style:   lineStyle(methodColor(c.Method), c.Method == vibstat.MethodApprox),
		})
	}

	ch := chart.Chart{
		Title:  "ppv attenuation law",
		XAxis:  chart.XAxis{Name: "log(sd)"},
		YAxis:  chart.YAxis{Name: "log(ppv)"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// RenderCharges writes a PNG chart of the charge-versus-distance
// table to w, one series per bound method.
func RenderCharges(w io.Writer, tab *vibcharge.Table) error {
	cols := []struct {
		m  vibstat.Method
		qs []float64
	}{
		{vibstat.MethodApprox, tab.Approx},
		{vibstat.MethodPrediction, tab.Prediction},
		{vibstat.MethodTolerance, tab.Tolerance},
	}
	var series []chart.Series
	for _, c := range cols {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("Q %s vs D", c.m),
			XValues: tab.Distances,
			YValues: c.qs,
			Style:   lineStyle(methodColor(c.m), c.m == vibstat.MethodApprox),
		})
	}

	ch := chart.Chart{
		Title:  "maximum operating charge",
		XAxis:  chart.XAxis{Name: "distance"},
		YAxis:  chart.YAxis{Name: "charge"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
