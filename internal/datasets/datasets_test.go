package datasets

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

func TestCarlsonBindings(t *testing.T) {
	ds := Carlson()
	require.Len(t, ds, 4)

	arity := map[string]int{}
	for _, d := range ds {
		assert.Equal(t, domain.FormatComma, d.Format)
		assert.False(t, d.Lenient)
		assert.Equal(t, "../wolfram/"+d.Output, d.Input)
		arity[d.Name] = d.Function.Arity()
	}
	assert.Equal(t, map[string]int{
		"elliprf_data.csv": 3,
		"elliprg_data.csv": 3,
		"elliprj_data.csv": 4,
		"elliprj_pv.csv":   4,
	}, arity)
}

func TestEllippiKeepsInputLine(t *testing.T) {
	ds := Ellippi()
	var out bytes.Buffer
	st, err := domain.Generate(context.Background(), strings.NewReader("0 0.5 1.6857503548125961\n"), &out, ds)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Written)

	line := strings.TrimSuffix(out.String(), "\n")
	require.True(t, strings.HasPrefix(line, "0 0.5 1.6857503548125961    "), line)
	got, err := domain.ParseField(strings.TrimPrefix(line, "0 0.5 1.6857503548125961    "))
	require.NoError(t, err)
	// Π(0, k) = K(k²)
	assert.InDelta(t, 1.6857503548125961, got, 1e-14)
}
