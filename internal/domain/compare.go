package domain

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Epsilon is the unit relative errors are reported in.
const Epsilon = 2.22e-16

// Comparison summarises the relative error between the result columns of two
// datasets, in units of Epsilon.
type Comparison struct {
	Rows   int
	Valid  int
	Mean   float64
	Median float64
	P99    float64
	Max    float64
}

// RelativeError is the symmetric relative error max(|a-b|/|a|, |a-b|/|b|)
// in units of Epsilon. Two zeros compare equal; a single zero gives +Inf.
func RelativeError(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	if a == 0 || b == 0 {
		return math.Inf(1)
	}
	d := math.Abs(a - b)
	return math.Max(d/math.Abs(a), d/math.Abs(b)) / Epsilon
}

// Compare reads the last field of every row of a and b and summarises their
// relative error. Non-finite errors are left out of the statistics.
func Compare(a, b io.Reader, f Format) (Comparison, error) {
	xs, err := resultColumn(a, f)
	if err != nil {
		return Comparison{}, err
	}
	ys, err := resultColumn(b, f)
	if err != nil {
		return Comparison{}, err
	}
	if len(xs) != len(ys) {
		return Comparison{}, fmt.Errorf("%w: %d and %d", ErrShapeMismatch, len(xs), len(ys))
	}

	errs := make([]float64, 0, len(xs))
	for i := range xs {
		if e := RelativeError(xs[i], ys[i]); !math.IsNaN(e) && !math.IsInf(e, 0) {
			errs = append(errs, e)
		}
	}

	c := Comparison{Rows: len(xs), Valid: len(errs)}
	if len(errs) == 0 {
		c.Mean, c.Median, c.P99, c.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return c, nil
	}
	sort.Float64s(errs)
	c.Mean = stat.Mean(errs, nil)
	c.Median = stat.Quantile(0.5, stat.LinInterp, errs, nil)
	c.P99 = stat.Quantile(0.99, stat.LinInterp, errs, nil)
	c.Max = floats.Max(errs)
	return c, nil
}

// CompareFiles is Compare on two paths.
func CompareFiles(a, b string, f Format) (Comparison, error) {
	fa, err := os.Open(a)
	if err != nil {
		return Comparison{}, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer fa.Close()
	fb, err := os.Open(b)
	if err != nil {
		return Comparison{}, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer fb.Close()
	return Compare(fa, fb, f)
}

func resultColumn(r io.Reader, f Format) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		fields := f.Split(sc.Text())
		v, err := ParseField(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrStrictParse, line, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return out, nil
}
