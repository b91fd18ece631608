package domain_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

func TestFormatSplit(t *testing.T) {
	tests := []struct {
		name   string
		format domain.Format
		line   string
		want   []string
	}{
		{"whitespace runs", domain.FormatWhitespace, "  0.5 \t0.25   1e-3 ", []string{"0.5", "0.25", "1e-3"}},
		{"comma", domain.FormatComma, "0.5,0.25,0.75", []string{"0.5", "0.25", "0.75"}},
		{"comma trims", domain.FormatComma, " 0.5 , 0.25 ", []string{"0.5", "0.25"}},
		{"comma trailing delimiter", domain.FormatComma, "1,2,", []string{"1", "2"}},
		{"comma empty middle field", domain.FormatComma, "1,,2", []string{"1", "", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.format.Split(tt.line)); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := domain.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatComma, f)

	f, err = domain.ParseFormat("whitespace")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatWhitespace, f)

	_, err = domain.ParseFormat("tsv")
	assert.EqualError(t, err, "unknown format: tsv (must be whitespace or comma)")
}

func TestParseField(t *testing.T) {
	v, err := domain.ParseField(" 1.5e-3 ")
	require.NoError(t, err)
	assert.Equal(t, 1.5e-3, v)

	v, err = domain.ParseField("ComplexInfinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = domain.ParseField("-Infinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	v, err = domain.ParseField("Indeterminate")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	_, err = domain.ParseField("abc")
	assert.Error(t, err)
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "0.75", domain.FormatResult(0.75))
	assert.Equal(t, "0.10000000000000001", domain.FormatResult(0.1))
	assert.Equal(t, "9.9999999999999995e-21", domain.FormatResult(1e-20))

	for _, v := range []float64{math.Pi, 1.0 / 3, 2.5e-300, -7.123456789012345e100} {
		back, err := strconv.ParseFloat(domain.FormatResult(v), 64)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}
