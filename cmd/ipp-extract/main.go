// Command ipp-extract converts Boost.Math's ellint_d2_data.ipp into a plain
// whitespace-separated data file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fmcato/ellip-refdata/internal/datasets"
	"github.com/fmcato/ellip-refdata/internal/domain"
	"github.com/fmcato/ellip-refdata/internal/logging"
)

func main() {
	logging.Setup(os.Getenv("REFDATA_LOG_LEVEL"))

	st, err := domain.ExtractFile(datasets.IPPInput, datasets.IPPOutput, domain.BoostMarkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ipp-extract: %v\n", err)
		os.Exit(1)
	}
	slog.Info("extracted test data", "output", datasets.IPPOutput, "rows", st.Rows, "state", st.State.String())
}
