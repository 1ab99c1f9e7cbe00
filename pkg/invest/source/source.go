package source

import (
	"context"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Source loads a stock dataset from a specification (e.g., filepath).
type Source interface {
	Load(ctx context.Context, spec any) (types.Dataset, error)
}

// For returns the YAML source for a non-empty path and the bundled
// dataset otherwise.
func For(path string) Source {
	if path == "" {
		return Builtin{}
	}
	return YAMLSource{}
}
