package domain_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

const ippSource = `// Copyright John Maddock 2006.
#ifndef SC_
#  define SC_(x) static_cast<T>(BOOST_JOIN(x, L))
#endif
   static const std::array<std::array<typename table_type<T>::type, 3>, 2> ellint_d2_data = {{
      {{ SC_(-1.0), SC_(2.5e-3), SC_(0.5) }}, 
      {{ SC_(+0.25), SC_(1E+10), SC_(.75) }}
   }};
//#undef SC_
   {{ SC_(9.0) }}
`

func extract(t *testing.T, src string) (string, domain.ExtractStats) {
	t.Helper()
	var out bytes.Buffer
	st, err := domain.NewExtractor(domain.BoostMarkers).Extract(strings.NewReader(src), &out)
	require.NoError(t, err)
	return out.String(), st
}

func TestExtractBoostBlock(t *testing.T) {
	out, st := extract(t, ippSource)
	assert.Equal(t, "-1.0 2.5e-3 0.5\n+0.25 1E+10 .75\n", out)
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, domain.Done, st.State)
}

func TestExtractTwoByTwo(t *testing.T) {
	src := "static const std::array<> d = {{\n{{ SC_(1.0), SC_(2.5) }},\n{{ SC_(-3), SC_(4e-2) }}\n}};\n"
	out, st := extract(t, src)
	assert.Equal(t, "1.0 2.5\n-3 4e-2\n", out)
	assert.Equal(t, 2, st.Rows)
}

func TestExtractRowWithoutWrapper(t *testing.T) {
	out, _ := extract(t, "static const std::array x\nSC_(1.0) SC_(2.5)\n")
	assert.Equal(t, "1.0 2.5\n", out)
}

func TestExtractWithoutStartMarker(t *testing.T) {
	out, st := extract(t, "{{ SC_(1.0), SC_(2.0) }}\n}};\n")
	assert.Empty(t, out)
	assert.Equal(t, 0, st.Rows)
	assert.Equal(t, domain.ScanningForStart, st.State)
}

func TestExtractUnclosedBlockRunsToEOF(t *testing.T) {
	out, st := extract(t, "static const std::array x\n{{ SC_(1) }},\n{{ SC_(2) }}")
	assert.Equal(t, "1\n2\n", out)
	assert.Equal(t, domain.InBlock, st.State)
}

func TestExtractSkipsRowsWithoutLiterals(t *testing.T) {
	out, st := extract(t, "static const std::array x\n{{ SC_(abc) }},\n// note\n{{ SC_(3.5) }}\n}};\n")
	assert.Equal(t, "3.5\n", out)
	assert.Equal(t, 1, st.Rows)
}

func TestExtractLongLineWithCloseMarkerIsData(t *testing.T) {
	out, _ := extract(t, "static const std::array x\n{{ SC_(1.5) }}\n}};\n")
	assert.Equal(t, "1.5\n", out)
}

func TestLiterals(t *testing.T) {
	e := domain.NewExtractor(domain.BoostMarkers)
	assert.Equal(t, []string{"1.0", "-2e5", "3"}, e.Literals("SC_(1.0) SC_(-2e5) x SC_(3)"))
	assert.Nil(t, e.Literals("no literals here"))
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ellint_d2_data.ipp")
	out := filepath.Join(dir, "ellipdinc_data.txt")
	require.NoError(t, os.WriteFile(in, []byte(ippSource), 0o644))

	st, err := domain.ExtractFile(in, out, domain.BoostMarkers)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Rows)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "-1.0 2.5e-3 0.5\n+0.25 1E+10 .75\n", string(got))

	_, err = domain.ExtractFile(filepath.Join(dir, "missing.ipp"), out, domain.BoostMarkers)
	assert.True(t, errors.Is(err, domain.ErrFileOpen))
}
