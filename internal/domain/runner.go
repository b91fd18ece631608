package domain

import (
	"context"
)

// ScriptRunner defines the interface for executing Octave scripts
type ScriptRunner interface {
	ExecuteScript(ctx context.Context, script string) (string, error)
	GeneratePlot(ctx context.Context, script string, format string) ([]byte, error)
}
