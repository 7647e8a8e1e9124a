// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ppvlaw fits a blast-vibration attenuation law to a sample of
// peak particle velocity measurements and derives safe-charge tables
// from it.
//
// The input is a text table with "x" and "y" columns, where x is
// log10 of the scaled distance and y is log10 of the measured ppv.
// The noise is assumed lognormal. The command fits the log-log
// regression, computes upper safety bounds by three methods
// (approximate safety line, rigorous prediction interval, tolerance
// interval), refits the curved bounds to quadratics, and inverts them
// to tabulate the maximum operating charge against distance for the
// given ppv threshold and scaling exponent.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-moremath/vec"

	"github.com/mineseis/ppvlaw/vibcharge"
	"github.com/mineseis/ppvlaw/vibfmt"
	"github.com/mineseis/ppvlaw/vibplot"
	"github.com/mineseis/ppvlaw/vibstat"
)

func main() {
	log.SetPrefix("")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [flags] input

ppvlaw reads a sample of (x, y) = (log10 scaled distance, log10 ppv)
observations from input ("-" for stdin), fits the attenuation law, and
writes prediction and safe-charge tables next to the output prefix:

	<prefix>_points.csv   per-observation predictions and bounds
	<prefix>_grid.csv     bounds evaluated on an evenly spaced grid
	<prefix>_charges.csv  maximum charge per distance and method

`, os.Args[0])
		flag.PrintDefaults()
	}
	nc := flag.Float64("nc", 0.9, "confidence level in (0.5, 1)")
	coverage := flag.Float64("coverage", 0.95, "tolerance-interval population coverage in (0, 1)")
	gridSize := flag.Int("grid", 20, "number of grid points for bound evaluation")
	ppv := flag.Float64("ppv", 0, "ppv threshold the charges must respect (required)")
	beta := flag.Float64("beta", 0.5, "scaling-law exponent (0.5 elongated, 1/3 spherical charges)")
	dmin := flag.Float64("dmin", 50, "smallest distance to tabulate")
	dmax := flag.Float64("dmax", 250, "largest distance to tabulate")
	dn := flag.Int("dn", 20, "number of distances to tabulate")
	prefix := flag.String("o", "ppvlaw", "output file prefix")
	xlsx := flag.Bool("xlsx", false, "also write the tables to <prefix>.xlsx")
	plot := flag.Bool("plot", false, "also render <prefix>_bounds.png and <prefix>_charges.png")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *ppv <= 0 {
		log.Fatal("-ppv is required and must be positive")
	}

	sample, err := vibfmt.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	reg, err := vibstat.Fit(sample)
	if err != nil {
		log.Fatal(err)
	}
	est, err := vibstat.NewEstimator(reg, vibstat.Spec{Confidence: *nc, Coverage: *coverage})
	if err != nil {
		log.Fatal(err)
	}

	grid, err := vibstat.Grid(reg, *gridSize)
	if err != nil {
		log.Fatal(err)
	}

	points, err := boundsTable(est, sample.Xs, sample.Ys)
	if err != nil {
		log.Fatal(err)
	}
	gridTab, err := boundsTable(est, grid, nil)
	if err != nil {
		log.Fatal(err)
	}

	for _, m := range vibstat.Methods {
		cov, err := est.SampleCoverage(m)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("sample coverage, %s bound: %.3f\n", m, cov)
	}

	models, err := vibstat.FitModels(est, grid)
	if err != nil {
		log.Fatal(err)
	}
	charges, err := vibcharge.Solve(models, vibcharge.Config{
		Threshold: *ppv,
		Beta:      *beta,
		Distances: vec.Linspace(*dmin, *dmax, *dn),
	})
	if err != nil {
		log.Fatal(err)
	}

	writeCSV(*prefix+"_points.csv", points)
	writeCSV(*prefix+"_grid.csv", gridTab)
	writeCSV(*prefix+"_charges.csv", charges.AsTable())

	if *xlsx {
		err := vibfmt.WriteXLSX(*prefix+".xlsx", []vibfmt.Sheet{
			{Name: "points", Table: points},
			{Name: "grid", Table: gridTab},
			{Name: "charges", Table: charges.AsTable()},
		})
		if err != nil {
			log.Fatal("writing workbook: ", err)
		}
	}

	if *plot {
		var curves []*vibstat.BoundCurve
		for _, m := range vibstat.Methods {
			c, err := est.Curve(m, grid)
			if err != nil {
				log.Fatal(err)
			}
			curves = append(curves, c)
		}
		renderPNG(*prefix+"_bounds.png", func(f *os.File) error {
			return vibplot.RenderBounds(f, reg, curves)
		})
		renderPNG(*prefix+"_charges.png", func(f *os.File) error {
			return vibplot.RenderCharges(f, charges)
		})
	}
}

// boundsTable tabulates the regression value and the three upper
// bounds at xs. ys, if non-nil, is included as the observed column.
func boundsTable(est *vibstat.Estimator, xs, ys []float64) (*vibfmt.Table, error) {
	cols := []vibfmt.Column{{Name: "x", Values: xs}}
	if ys != nil {
		cols = append(cols, vibfmt.Column{Name: "y", Values: ys})
	}
	cols = append(cols, vibfmt.Column{Name: "y_pred", Values: est.Predict(xs)})
	for _, m := range vibstat.Methods {
		upper, err := est.Upper(m, xs)
		if err != nil {
			return nil, err
		}
		cols = append(cols, vibfmt.Column{Name: "y_" + m.String(), Values: upper})
	}
	return vibfmt.NewTable(cols...)
}

func writeCSV(path string, tab *vibfmt.Table) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := tab.WriteCSV(f); err != nil {
		log.Fatal("writing ", path, ": ", err)
	}
}

func renderPNG(path string, render func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := render(f); err != nil {
		log.Fatal("rendering ", path, ": ", err)
	}
}
