package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/invest/pkg/invest/types"
)

// tickersRenderer prints all tickers in a single comma-separated line.
type tickersRenderer struct{}

func NewTickersRenderer() Renderer {
	return tickersRenderer{}
}

func (tickersRenderer) Render(w io.Writer, screens []types.Screen, _ RenderOptions) error {
	tickers := make([]string, 0)
	for _, s := range screens {
		for _, st := range s.Stocks {
			t := strings.TrimSpace(st.Ticker)
			if t == "" {
				continue
			}
			tickers = append(tickers, t)
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(tickers, ","))
	return err
}
