// Package datasets holds the compiled-in dataset bindings of the
// fixed-argument generators.
package datasets

import (
	"fmt"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

// Paths of the Boost test data extraction, relative to the cpp directory.
const (
	IPPInput  = "ellint_d2_data.ipp"
	IPPOutput = "../tests/data/boost/ellipdinc_data.txt"
)

// Carlson returns the Carlson datasets. Inputs are Wolfram exports read from
// ../wolfram; outputs are written to the working directory.
func Carlson() []domain.Dataset {
	bind := []struct{ file, function string }{
		{"elliprf_data.csv", "elliprf"},
		{"elliprg_data.csv", "elliprg"},
		{"elliprj_data.csv", "elliprj"},
		{"elliprj_pv.csv", "elliprj"},
	}
	out := make([]domain.Dataset, 0, len(bind))
	for _, b := range bind {
		out = append(out, domain.Dataset{
			Name:     b.file,
			Input:    "../wolfram/" + b.file,
			Output:   b.file,
			Format:   domain.FormatComma,
			Function: mustLookup(b.function),
			Echo:     domain.EchoFields,
		})
	}
	return out
}

// Ellippi recomputes Boost's ellippi2 data in double precision, keeping each
// input line and appending the result.
func Ellippi() domain.Dataset {
	return domain.Dataset{
		Name:      "ellippi2_data_f64",
		Input:     "../tests/data/boost/ellippi2_data.txt",
		Output:    "../tests/data/boost/ellippi2_data_f64.txt",
		Format:    domain.FormatWhitespace,
		Function:  mustLookup("ellippi"),
		Echo:      domain.EchoLine,
		Separator: "    ",
	}
}

func mustLookup(name string) domain.Function {
	f, err := domain.LookupFunction(name)
	if err != nil {
		panic(fmt.Sprintf("datasets: %v", err))
	}
	return f
}
