package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/invest/pkg/invest/columns"
	"github.com/komsit37/invest/pkg/invest/types"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Items   []jsonItem `json:"items"`
}

type jsonItem struct {
	types.StockRecord
	Recommendation types.Recommendation `json:"recommendation"`
	Fields         map[string]string    `json:"fields"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, screens []types.Screen, opts RenderOptions) error {
	out := make([]jsonModel, 0, len(screens))
	for _, s := range screens {
		cols := s.Columns
		if len(opts.Columns) > 0 {
			cols = opts.Columns
		}
		items := make([]jsonItem, 0, len(s.Stocks))
		for _, st := range s.Stocks {
			items = append(items, jsonItem{
				StockRecord:    st,
				Recommendation: columns.RecommendRecord(st),
				Fields:         columns.Row(cols, st),
			})
		}
		out = append(out, jsonModel{Name: s.Name, Columns: cols, Items: items})
	}
	return WriteJSON(w, out, opts.PrettyJSON)
}

// WriteJSON encodes v as a single JSON document.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
