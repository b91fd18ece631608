package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EchoMode selects what precedes the result on an output line.
type EchoMode int

const (
	// EchoFields writes the first Arity fields joined by the format delimiter.
	EchoFields EchoMode = iota
	// EchoLine writes the input line verbatim.
	EchoLine
)

// ParseEchoMode accepts "fields" or "line".
func ParseEchoMode(s string) (EchoMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fields", "":
		return EchoFields, nil
	case "line":
		return EchoLine, nil
	}
	return EchoFields, fmt.Errorf("unknown echo mode: %s (must be fields or line)", s)
}

func (m EchoMode) String() string {
	if m == EchoLine {
		return "line"
	}
	return "fields"
}

// Dataset binds one input file to one function and one output file.
type Dataset struct {
	Name     string
	Input    string
	Output   string
	Format   Format
	Function Function
	Echo     EchoMode
	// Separator goes between the echo and the result. Empty means the
	// format delimiter.
	Separator string
	// Lenient datasets skip rows with unparsable fields instead of failing.
	Lenient bool
}

func (d Dataset) separator() string {
	if d.Separator != "" {
		return d.Separator
	}
	return d.Format.Delimiter()
}

func (d Dataset) label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Input
}

// Stats counts what happened to the lines of one run.
type Stats struct {
	Lines      int
	Written    int
	Short      int
	Unparsable int
}

// Skipped is the number of non-empty rows that produced no output.
func (s Stats) Skipped() int { return s.Short + s.Unparsable }

// Generate reads rows from r, evaluates the dataset's function on each and
// writes the results to w. Output written before a fatal error is flushed.
func Generate(ctx context.Context, r io.Reader, w io.Writer, ds Dataset) (st Stats, err error) {
	if ds.Function == nil {
		return st, fmt.Errorf("dataset %s: %w", ds.label(), ErrUnknownFunction)
	}
	n := ds.Function.Arity()
	sep := ds.separator()
	args := make([]float64, n)

	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to write output: %w", ferr)
		}
	}()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
rows:
	for sc.Scan() {
		st.Lines++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := ds.Format.Split(line)
		if len(fields) < n {
			st.Short++
			slog.Debug("skipping short row", "dataset", ds.label(), "line", st.Lines, "fields", len(fields), "want", n)
			continue
		}
		for i := 0; i < n; i++ {
			v, perr := ParseField(fields[i])
			if perr != nil {
				if !ds.Lenient {
					return st, fmt.Errorf("%w: %s line %d field %d: %w", ErrStrictParse, ds.label(), st.Lines, i+1, perr)
				}
				st.Unparsable++
				slog.Debug("skipping unparsable row", "dataset", ds.label(), "line", st.Lines, "field", fields[i])
				continue rows
			}
			args[i] = v
		}

		res, eerr := ds.Function.Eval(ctx, args)
		if eerr != nil {
			return st, fmt.Errorf("%s line %d: %w", ds.label(), st.Lines, eerr)
		}

		echo := line
		if ds.Echo == EchoFields {
			echo = ds.Format.Join(fields[:n])
		}
		bw.WriteString(echo)
		bw.WriteString(sep)
		bw.WriteString(FormatResult(res))
		bw.WriteByte('\n')
		st.Written++
	}
	if serr := sc.Err(); serr != nil {
		return st, fmt.Errorf("failed to read %s: %w", ds.label(), serr)
	}
	return st, nil
}

// Run opens the dataset's files and generates its output.
func Run(ctx context.Context, ds Dataset) (st Stats, err error) {
	in, err := os.Open(ds.Input)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer in.Close()

	out, err := os.Create(ds.Output)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", ds.Output, cerr)
		}
	}()

	return Generate(ctx, in, out, ds)
}

// RunAll runs the datasets in order and stops at the first error.
func RunAll(ctx context.Context, datasets []Dataset) error {
	for _, ds := range datasets {
		st, err := Run(ctx, ds)
		if err != nil {
			return err
		}
		slog.Info("generated dataset",
			"dataset", ds.label(),
			"output", ds.Output,
			"rows", st.Written,
			"skipped", st.Skipped())
	}
	return nil
}
