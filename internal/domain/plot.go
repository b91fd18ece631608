package domain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PlotScript draws ys against xs.
func PlotScript(xs, ys []float64, title string) string {
	var b strings.Builder
	writeVector(&b, "x", xs)
	writeVector(&b, "y", ys)
	b.WriteString("plot(x, y, \".\");\n")
	fmt.Fprintf(&b, "title(%q);\n", title)
	return b.String()
}

func writeVector(b *strings.Builder, name string, v []float64) {
	b.WriteString(name)
	b.WriteString(" = [")
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatResult(x))
	}
	b.WriteString("];\n")
}

// PlotColumns reads the first and last field of every row of a generated
// dataset.
func PlotColumns(r io.Reader, f Format) (xs, ys []float64, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := f.Split(sc.Text())
		if len(fields) < 2 {
			continue
		}
		x, err := ParseField(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrStrictParse, err)
		}
		y, err := ParseField(fields[len(fields)-1])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrStrictParse, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, sc.Err()
}

// PlotFile builds the plot script for a dataset file.
func PlotFile(path string, f Format) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer in.Close()
	xs, ys, err := PlotColumns(in, f)
	if err != nil {
		return "", err
	}
	return PlotScript(xs, ys, path), nil
}
