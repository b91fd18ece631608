package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format is the field convention of a data file.
type Format int

const (
	// FormatWhitespace separates fields by runs of blanks (Boost test data).
	FormatWhitespace Format = iota
	// FormatComma separates fields by commas (Wolfram CSV exports).
	FormatComma
)

// ParseFormat accepts "whitespace", "space", "comma" or "csv".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whitespace", "space", "":
		return FormatWhitespace, nil
	case "comma", "csv":
		return FormatComma, nil
	}
	return FormatWhitespace, fmt.Errorf("unknown format: %s (must be whitespace or comma)", s)
}

func (f Format) String() string {
	if f == FormatComma {
		return "comma"
	}
	return "whitespace"
}

// UnmarshalText lets formats be written by name in manifests.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Delimiter is the separator used when fields are joined back together.
func (f Format) Delimiter() string {
	if f == FormatComma {
		return ","
	}
	return " "
}

// Split breaks a line into fields.
func (f Format) Split(line string) []string {
	if f != FormatComma {
		return strings.Fields(line)
	}
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	// A trailing comma does not start a new field.
	if n := len(fields); n > 0 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields
}

// Join is the inverse of Split.
func (f Format) Join(fields []string) string {
	return strings.Join(fields, f.Delimiter())
}

// ParseField parses a numeric field. Besides Go float syntax it understands
// the symbolic values found in Wolfram exports.
func ParseField(s string) (float64, error) {
	switch s = strings.TrimSpace(s); s {
	case "Infinity", "ComplexInfinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	case "Indeterminate", "NaN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// FormatResult renders v with 17 significant digits, which round-trips every
// float64.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}
