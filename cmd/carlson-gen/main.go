// Command carlson-gen recomputes the Wolfram Carlson test data (RF, RG, RJ
// and the RJ principal values) in double precision. It is run from
// tests/data/boost and takes no arguments.
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

	if err := domain.RunAll(context.Background(), datasets.Carlson()); err != nil {
		fmt.Fprintf(os.Stderr, "carlson-gen: %v\n", err)
		os.Exit(1)
	}
}
