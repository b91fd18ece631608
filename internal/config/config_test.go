package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcato/ellip-refdata/internal/domain"
	"github.com/fmcato/ellip-refdata/internal/domain/mocks"
)

const manifest = `
log_level: debug
datasets:
  - name: elliprf
    input: wolfram/elliprf_data.csv
    output: boost/elliprf_data.csv
    format: comma
    function: elliprf
  - name: ellippi2
    input: boost/ellippi2_data.txt
    output: boost/ellippi2_data_f64.txt
    function: ellippi
    echo: line
    separator: "    "
    lenient: true
  - name: ellipk_octave
    input: k.txt
    output: /tmp/k_out.txt
    backend: octave
    expr: ellipke(x1)
    arity: 1
`

func TestParseManifest(t *testing.T) {
	t.Setenv("REFDATA_LOG_LEVEL", "")
	m, err := Parse([]byte(manifest))
	require.NoError(t, err)

	assert.Equal(t, "debug", m.LogLevel)
	require.Len(t, m.Datasets, 3)
	assert.Equal(t, domain.FormatComma, m.Datasets[0].Format)
	assert.Equal(t, domain.FormatWhitespace, m.Datasets[1].Format)
	require.NotNil(t, m.Datasets[1].Separator)
	assert.Equal(t, "    ", *m.Datasets[1].Separator)
	assert.True(t, m.NeedsOctave())
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("REFDATA_LOG_LEVEL", "warn")
	m, err := Parse([]byte(manifest))
	require.NoError(t, err)
	assert.Equal(t, "warn", m.LogLevel)
}

func TestDefaultLogLevel(t *testing.T) {
	t.Setenv("REFDATA_LOG_LEVEL", "")
	m, err := Parse([]byte("datasets:\n  - {input: a, output: b, function: elliprf}\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", m.LogLevel)
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(manifest))
	require.NoError(t, err)
	m.BaseDir = "/data"

	ds, err := m.Build(&mocks.MockRunner{})
	require.NoError(t, err)
	require.Len(t, ds, 3)

	assert.Equal(t, "/data/wolfram/elliprf_data.csv", ds[0].Input)
	assert.Equal(t, "/data/boost/elliprf_data.csv", ds[0].Output)
	assert.Equal(t, 3, ds[0].Function.Arity())
	assert.Equal(t, domain.EchoFields, ds[0].Echo)
	assert.Empty(t, ds[0].Separator)

	assert.Equal(t, domain.EchoLine, ds[1].Echo)
	assert.Equal(t, "    ", ds[1].Separator)
	assert.True(t, ds[1].Lenient)

	assert.Equal(t, "/tmp/k_out.txt", ds[2].Output)
	octave, ok := ds[2].Function.(*domain.OctaveFunction)
	require.True(t, ok)
	assert.Equal(t, "ellipke(x1)", octave.Expr)
	assert.Equal(t, 1, octave.Arity())
}

func TestBuildOctaveWithoutRunner(t *testing.T) {
	m, err := Parse([]byte(manifest))
	require.NoError(t, err)
	_, err = m.Build(nil)
	assert.True(t, errors.Is(err, ErrInvalidManifest))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "datasets: []\n"},
		{"unknown key", "datasets:\n  - {input: a, output: b, function: elliprf, colour: red}\n"},
		{"missing output", "datasets:\n  - {input: a, function: elliprf}\n"},
		{"unknown function", "datasets:\n  - {input: a, output: b, function: ellipx}\n"},
		{"bad format", "datasets:\n  - {input: a, output: b, function: elliprf, format: tsv}\n"},
		{"bad echo", "datasets:\n  - {input: a, output: b, function: elliprf, echo: all}\n"},
		{"octave without expr", "datasets:\n  - {input: a, output: b, backend: octave, arity: 1}\n"},
		{"unknown backend", "datasets:\n  - {input: a, output: b, backend: matlab}\n"},
		{"duplicate names", "datasets:\n  - {name: x, input: a, output: b, function: elliprf}\n  - {name: x, input: c, output: d, function: elliprf}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidManifest), err.Error())
		})
	}
}

func TestLoadResolvesRelativeToManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refdata.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir: data\ndatasets:\n  - {input: a.csv, output: b.csv, function: elliprf, format: comma}\n"), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), m.BaseDir)

	ds, err := m.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "a.csv"), ds[0].Input)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
