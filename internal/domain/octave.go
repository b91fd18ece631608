package domain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Runner evaluates scripts with a local GNU Octave installation.
type Runner struct {
	Binary  string
	Timeout time.Duration
}

func NewRunner() *Runner {
	return &Runner{Binary: "octave", Timeout: 10 * time.Second}
}

// Available reports whether the Octave binary can be started.
func (r *Runner) Available(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	if err := exec.CommandContext(ctx, r.Binary, "--version").Run(); err != nil {
		return fmt.Errorf("could not run %s command, make sure it's installed and available in the PATH: %w", r.Binary, err)
	}
	return nil
}

func (r *Runner) ExecuteScript(ctx context.Context, script string) (string, error) {
	if script == "" {
		return "", fmt.Errorf("script cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Binary, "--no-gui", "--quiet", "--eval", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := strings.TrimSpace(stdout.String())

	if err != nil {
		result = stderr.String() + "\n" + result
		return result, err
	}

	return result, nil
}

func (r *Runner) GeneratePlot(ctx context.Context, script string, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if format != "png" && format != "svg" {
		return nil, fmt.Errorf("unsupported format: %s (must be png or svg)", format)
	}

	tempDir, err := os.MkdirTemp("", "refdata-plot-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	plotFile := filepath.Join(tempDir, "plot."+format)
	wrappedScript := fmt.Sprintf(`
set(0, "defaultfigurevisible", "off");
%s
print("%s");
`, script, plotFile)

	if _, err := r.ExecuteScript(ctx, wrappedScript); err != nil {
		return nil, fmt.Errorf("plot generation failed: %w", err)
	}

	imgData, err := os.ReadFile(plotFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read plot file: %w", err)
	}

	return imgData, nil
}

// OctaveFunction evaluates an Octave expression in the variables x1..xN.
type OctaveFunction struct {
	Runner ScriptRunner
	Expr   string
	N      int
}

func (f *OctaveFunction) Arity() int { return f.N }

// Script is the program run for one row.
func (f *OctaveFunction) Script(args []float64) string {
	var b strings.Builder
	for i, a := range args {
		fmt.Fprintf(&b, "x%d = %s;\n", i+1, FormatResult(a))
	}
	fmt.Fprintf(&b, "printf(\"%%.17g\\n\", %s);", f.Expr)
	return b.String()
}

func (f *OctaveFunction) Eval(ctx context.Context, args []float64) (float64, error) {
	if len(args) != f.N {
		return 0, fmt.Errorf("%w: want %d, got %d", ErrArity, f.N, len(args))
	}
	out, err := f.Runner.ExecuteScript(ctx, f.Script(args))
	if err != nil {
		return 0, fmt.Errorf("octave evaluation failed: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	v, err := ParseField(lines[len(lines)-1])
	if err != nil {
		return 0, fmt.Errorf("unexpected octave output %q: %w", out, err)
	}
	return v, nil
}
