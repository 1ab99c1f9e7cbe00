package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Renderer renders screening results to an output writer.
type Renderer interface {
	Render(w io.Writer, screens []types.Screen, opts RenderOptions) error
}

type RenderOptions struct {
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
}

// Formats lists the names accepted by For.
var Formats = []string{"table", "json", "tickers"}

// For returns the renderer registered under format.
func For(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return NewTableRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "tickers", "syms":
		return NewTickersRenderer(), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", types.ErrInvalidArgument, format, strings.Join(Formats, ", "))
}
