// Command ellippi-gen appends double-precision values of the complete
// elliptic integral of the third kind to Boost's ellippi2 test data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fmcato/ellip-refdata/internal/datasets"
	"github.com/fmcato/ellip-refdata/internal/domain"
	"github.com/fmcato/ellip-refdata/internal/logging"
)

func main() {
	logging.Setup(os.Getenv("REFDATA_LOG_LEVEL"))

	if err := domain.RunAll(context.Background(), []domain.Dataset{datasets.Ellippi()}); err != nil {
		fmt.Fprintf(os.Stderr, "ellippi-gen: %v\n", err)
		os.Exit(1)
	}
}
