package domain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Markers describe where the literals of a generated test array live.
type Markers struct {
	// Start is a substring of the line that declares the array.
	Start string
	// Row is the literal wrapper, e.g. SC_ for SC_(1.5).
	Row string
	// Close is a substring of the line that ends the array.
	Close string
	// MaxCloseLen bounds the trimmed length of a closing line, so rows that
	// merely contain Close are not mistaken for the end of the block.
	MaxCloseLen int
}

// BoostMarkers matches the .ipp test data shipped with Boost.Math.
var BoostMarkers = Markers{
	Start:       "static const std::array",
	Row:         "SC_",
	Close:       "}}",
	MaxCloseLen: 5,
}

const numberPattern = `([-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?)`

// ExtractState is the position of the extractor relative to the array block.
type ExtractState int

const (
	ScanningForStart ExtractState = iota
	InBlock
	Done
)

func (s ExtractState) String() string {
	switch s {
	case ScanningForStart:
		return "scanning-for-start"
	case InBlock:
		return "in-block"
	default:
		return "done"
	}
}

// ExtractStats reports how far the extractor got.
type ExtractStats struct {
	Rows  int
	State ExtractState
}

// Extractor pulls wrapped numeric literals out of test data sources.
type Extractor struct {
	markers Markers
	literal *regexp.Regexp
}

func NewExtractor(m Markers) *Extractor {
	return &Extractor{
		markers: m,
		literal: regexp.MustCompile(regexp.QuoteMeta(m.Row) + `\(` + numberPattern + `\)`),
	}
}

// Literals returns the wrapped numbers on line in order of appearance.
func (e *Extractor) Literals(line string) []string {
	matches := e.literal.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out
}

func (e *Extractor) isClose(line string) bool {
	t := strings.TrimSpace(line)
	return strings.Contains(t, e.markers.Close) && len(t) < e.markers.MaxCloseLen
}

// step advances the state machine by one line and returns the literals to
// emit for it, if any.
func (e *Extractor) step(state ExtractState, line string) (ExtractState, []string) {
	switch state {
	case ScanningForStart:
		if strings.Contains(line, e.markers.Start) {
			return InBlock, nil
		}
		return ScanningForStart, nil
	case InBlock:
		if e.isClose(line) {
			return Done, nil
		}
		if !strings.Contains(line, e.markers.Row) {
			return InBlock, nil
		}
		return InBlock, e.Literals(line)
	}
	return Done, nil
}

// Extract writes one space-joined line per array row of r to w. A source
// without the start marker yields no output and no error.
func (e *Extractor) Extract(r io.Reader, w io.Writer) (st ExtractStats, err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("failed to write output: %w", ferr)
		}
	}()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for st.State != Done && sc.Scan() {
		var row []string
		st.State, row = e.step(st.State, sc.Text())
		if len(row) == 0 {
			continue
		}
		bw.WriteString(strings.Join(row, " "))
		bw.WriteByte('\n')
		st.Rows++
	}
	if serr := sc.Err(); serr != nil {
		return st, fmt.Errorf("failed to read source: %w", serr)
	}
	return st, nil
}

// ExtractFile runs the extractor from one file into another.
func ExtractFile(input, output string, m Markers) (st ExtractStats, err error) {
	in, err := os.Open(input)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", output, cerr)
		}
	}()

	return NewExtractor(m).Extract(in, out)
}
