package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

type GenerateParams struct {
	Function  string `json:"function" jsonschema:"Name of a registered function, e.g. elliprf, elliprj, ellippi, heuman_lambda"`
	Input     string `json:"input" jsonschema:"Path of the input data file"`
	Output    string `json:"output" jsonschema:"Path of the output file to write"`
	Format    string `json:"format,omitempty" jsonschema:"Field format: whitespace (default) or comma"`
	Echo      string `json:"echo,omitempty" jsonschema:"What precedes the result: fields (default) or line"`
	Separator string `json:"separator,omitempty" jsonschema:"Separator before the result; defaults to the format delimiter"`
	Lenient   bool   `json:"lenient,omitempty" jsonschema:"Skip rows with unparsable fields instead of failing"`
}

type ExtractParams struct {
	Input  string `json:"input" jsonschema:"Path of a Boost test data .ipp file"`
	Output string `json:"output" jsonschema:"Path of the output file to write"`
}

type CompareParams struct {
	A      string `json:"a" jsonschema:"Path of the first generated dataset"`
	B      string `json:"b" jsonschema:"Path of the second generated dataset"`
	Format string `json:"format,omitempty" jsonschema:"Field format: whitespace (default) or comma"`
}

type PlotParams struct {
	Path   string `json:"path" jsonschema:"Path of a generated dataset"`
	Format string `json:"format,omitempty" jsonschema:"Field format of the dataset: whitespace (default) or comma"`
	Image  string `json:"image" jsonschema:"Image output format. Supported: svg or png"`
}

type Server struct {
	mcpServer *mcp.Server
	runner    domain.ScriptRunner
}

func New(runner domain.ScriptRunner) *Server {
	return &Server{
		runner: runner,
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "ellip-refdata",
			Version: "1.0.0",
		}, nil),
	}
}

func (s *Server) RegisterHandlers() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "generate_dataset",
		Description: "Evaluate an elliptic integral on every row of a data file and write the inputs with the result at 17 significant digits. Functions: " +
			strings.Join(domain.FunctionNames(), ", "),
	}, s.generateHandler)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "extract_literals",
		Description: "Extract the SC_(...) literals of a Boost.Math test data .ipp file, one space-separated row per line.",
	}, s.extractHandler)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compare_datasets",
		Description: "Compare the result columns of two generated datasets. Reports relative error statistics in units of machine epsilon.",
	}, s.compareHandler)

	if s.runner != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "plot_dataset",
			Description: "Plot the result column of a generated dataset against its first input with GNU Octave. Returns image data in the requested format (png/svg).",
		}, s.plotHandler)
	}
}

func (s *Server) RunHTTP(addr string) error {
	if !strings.Contains(addr, "localhost") && !strings.Contains(addr, "127.0.0.1") {
		return fmt.Errorf("HTTP server must bind to localhost for security")
	}

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.mcpServer
	}, &mcp.StreamableHTTPOptions{})

	slog.Info("Starting HTTP server", "addr", addr)
	mux := http.NewServeMux()
	mux.Handle("/mcp", loggingMiddleware(securityMiddleware(handler)))
	return http.ListenAndServe(addr, mux)
}

func (s *Server) RunStdio(ctx context.Context) error {
	slog.Info("Starting stdio server")
	transport := &mcp.LoggingTransport{Transport: &mcp.StdioTransport{}, Writer: os.Stderr}
	return s.mcpServer.Run(ctx, transport)
}

func textResult(isError bool, format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: isError,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func (s *Server) generateHandler(ctx context.Context, req *mcp.CallToolRequest, params GenerateParams) (*mcp.CallToolResult, any, error) {
	if params.Function == "" || params.Input == "" || params.Output == "" {
		return nil, nil, fmt.Errorf("function, input and output parameters are required")
	}
	fn, err := domain.LookupFunction(params.Function)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	format, err := domain.ParseFormat(params.Format)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	echo, err := domain.ParseEchoMode(params.Echo)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}

	st, err := domain.Run(ctx, domain.Dataset{
		Name:      params.Function,
		Input:     params.Input,
		Output:    params.Output,
		Format:    format,
		Function:  fn,
		Echo:      echo,
		Separator: params.Separator,
		Lenient:   params.Lenient,
	})
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	return textResult(false, "Generated %s: %d rows written, %d skipped.", params.Output, st.Written, st.Skipped()), nil, nil
}

func (s *Server) extractHandler(ctx context.Context, req *mcp.CallToolRequest, params ExtractParams) (*mcp.CallToolResult, any, error) {
	if params.Input == "" || params.Output == "" {
		return nil, nil, fmt.Errorf("input and output parameters are required")
	}
	st, err := domain.ExtractFile(params.Input, params.Output, domain.BoostMarkers)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	return textResult(false, "Extracted %d rows to %s (%s).", st.Rows, params.Output, st.State), nil, nil
}

func (s *Server) compareHandler(ctx context.Context, req *mcp.CallToolRequest, params CompareParams) (*mcp.CallToolResult, any, error) {
	if params.A == "" || params.B == "" {
		return nil, nil, fmt.Errorf("a and b parameters are required")
	}
	format, err := domain.ParseFormat(params.Format)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	c, err := domain.CompareFiles(params.A, params.B, format)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	return textResult(false, "rows=%d valid=%d mean=%g median=%g p99=%g max=%g (units of %g)",
		c.Rows, c.Valid, c.Mean, c.Median, c.P99, c.Max, domain.Epsilon), nil, nil
}

func (s *Server) plotHandler(ctx context.Context, req *mcp.CallToolRequest, params PlotParams) (*mcp.CallToolResult, any, error) {
	if params.Path == "" {
		return nil, nil, fmt.Errorf("path parameter is required")
	}
	format, err := domain.ParseFormat(params.Format)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}
	script, err := domain.PlotFile(params.Path, format)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}

	imgData, err := s.runner.GeneratePlot(ctx, script, params.Image)
	if err != nil {
		return textResult(true, "%v", err), nil, nil
	}

	var mimeType string
	switch params.Image {
	case "svg":
		mimeType = "image/svg+xml"
	case "png":
		mimeType = "image/png"
	default:
		mimeType = "application/octet-stream"
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.ImageContent{Data: imgData, MIMEType: mimeType}},
	}, nil, nil
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		slog.Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID)

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		status := rw.status
		if status == 0 {
			status = http.StatusOK
		}

		logAttrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", requestID,
		}

		switch {
		case status >= 500:
			slog.Error("internal error", logAttrs...)
		case status >= 400:
			slog.Warn("invalid request", logAttrs...)
		default:
			slog.Info("request completed", logAttrs...)
		}
	})
}

func securityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !strings.HasPrefix(origin, "http://localhost") {
			http.Error(w, "Invalid origin", http.StatusForbidden)
			return
		}

		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(w, r)
	})
}
