// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibfmt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadSample(t *testing.T) {
	test := func(name, input string, wantXs, wantYs []float64) {
		t.Helper()
		s, err := ReadSample(strings.NewReader(input), name)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
			return
		}
		if !reflect.DeepEqual(s.Xs, wantXs) || !reflect.DeepEqual(s.Ys, wantYs) {
			t.Errorf("%s: got xs=%v ys=%v, want xs=%v ys=%v", name, s.Xs, s.Ys, wantXs, wantYs)
		}
	}

	test("whitespace", `x	y
1.76779	0.2001
0.69139	1.96096
1.55308	1.06786
`,
		[]float64{1.76779, 0.69139, 1.55308},
		[]float64{0.2001, 1.96096, 1.06786})

	test("comma", "x,y\n1,2\n3,4\n5,6\n",
		[]float64{1, 3, 5}, []float64{2, 4, 6})

	test("swapped columns", "y x\n2 1\n4 3\n6 5\n",
		[]float64{1, 3, 5}, []float64{2, 4, 6})

	test("extra columns ignored", "site x y\n1 10 20\n2 30 40\n3 50 60\n",
		[]float64{10, 30, 50}, []float64{20, 40, 60})

	test("comments and blanks", "# survey A\nx y\n\n1 2\n# mid\n3 4\n5 6\n",
		[]float64{1, 3, 5}, []float64{2, 4, 6})
}

func TestReadSampleErrors(t *testing.T) {
	// Missing column.
	_, err := ReadSample(strings.NewReader("x z\n1 2\n3 4\n5 6\n"), "in.txt")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("missing y column: got %v, want ErrMissingColumn", err)
	}
	_, err = ReadSample(strings.NewReader(""), "in.txt")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("empty input: got %v, want ErrMissingColumn", err)
	}

	// Too few rows.
	_, err = ReadSample(strings.NewReader("x y\n1 2\n3 4\n"), "in.txt")
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("2 rows: got %v, want ErrInsufficientData", err)
	}

	// Malformed number, with position.
	_, err = ReadSample(strings.NewReader("x y\n1 2\n3 oops\n5 6\n"), "in.txt")
	var syn *SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("bad number: got %v, want SyntaxError", err)
	}
	if syn.FileName != "in.txt" || syn.Line != 3 {
		t.Errorf("error at %s:%d, want in.txt:3", syn.FileName, syn.Line)
	}

	// Short row.
	_, err = ReadSample(strings.NewReader("x y\n1 2\n3\n5 6\n"), "in.txt")
	if !errors.As(err, &syn) {
		t.Errorf("short row: got %v, want SyntaxError", err)
	}
}
