package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/komsit37/invest/pkg/invest/columns"
	"github.com/komsit37/invest/pkg/invest/filter"
	"github.com/komsit37/invest/pkg/invest/render"
	"github.com/komsit37/invest/pkg/invest/screen"
	"github.com/komsit37/invest/pkg/invest/source"
	"github.com/komsit37/invest/pkg/invest/types"
)

type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Writer   io.Writer
	Log      zerolog.Logger
}

type ExecuteOptions struct {
	Filters     types.ScreeningFilters
	Query       string
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	// Latency is waited before screening, as a remote screener would.
	Latency time.Duration
}

// Screen loads the dataset and runs filters, sort, query and column
// resolution, without rendering.
func (r *Runner) Screen(ctx context.Context, spec any, opts ExecuteOptions) (types.Screen, error) {
	ds, err := r.Source.Load(ctx, spec)
	if err != nil {
		return types.Screen{}, err
	}
	cols, err := columns.Compute(opts.Columns)
	if err != nil {
		return types.Screen{}, err
	}
	q, err := filter.Parse(opts.Query)
	if err != nil {
		return types.Screen{}, err
	}
	if err := sleep(ctx, opts.Latency); err != nil {
		return types.Screen{}, err
	}

	stocks, err := screen.Screen(ds.Stocks, opts.Filters)
	if err != nil {
		return types.Screen{}, err
	}
	// Apply ticker/name query after sorting; filtering keeps the order
	matched := make([]types.StockRecord, 0, len(stocks))
	for _, s := range stocks {
		if q.Match(s) {
			matched = append(matched, s)
		}
	}

	r.Log.Debug().
		Str("dataset", ds.Name).
		Int("loaded", len(ds.Stocks)).
		Int("matched", len(matched)).
		Str("sort", fmt.Sprintf("%s %s", opts.Filters.SortBy, opts.Filters.SortOrder)).
		Msg("screen complete")

	return types.Screen{Name: ds.Name, Columns: cols, Stocks: matched}, nil
}

func (r *Runner) Execute(ctx context.Context, spec any, opts ExecuteOptions) error {
	s, err := r.Screen(ctx, spec, opts)
	if err != nil {
		return err
	}
	return r.Renderer.Render(r.Writer, []types.Screen{s}, render.RenderOptions{
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
