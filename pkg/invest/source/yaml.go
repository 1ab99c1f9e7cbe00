package source

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/invest/pkg/invest/types"
)

//go:embed data/stocks.yaml
var builtinStocks []byte

// Builtin serves the dataset bundled with the binary.
type Builtin struct{}

func (Builtin) Load(ctx context.Context, _ any) (types.Dataset, error) { //nolint:revive
	return parseDataset(builtinStocks, "builtin")
}

// YAMLSource loads a dataset from a YAML file or a directory of them.
type YAMLSource struct{}

// Load expects spec to be a string filepath.
func (YAMLSource) Load(ctx context.Context, spec any) (types.Dataset, error) { //nolint:revive // ctx reserved for future use
	path, ok := spec.(string)
	if !ok {
		return types.Dataset{}, fmt.Errorf("yaml source expects filepath string spec")
	}
	info, err := os.Stat(path)
	if err != nil {
		return types.Dataset{}, err
	}

	if !info.IsDir() {
		data, err := readFile(path)
		if err != nil {
			return types.Dataset{}, err
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return parseDataset(data, base)
	}

	// Directory: concatenate every YAML file in lexical path order.
	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return types.Dataset{}, err
	}
	sort.Strings(files)

	all := types.Dataset{Name: filepath.Base(path)}
	seen := map[string]string{}
	for _, full := range files {
		data, err := readFile(full)
		if err != nil {
			return types.Dataset{}, err
		}
		ds, err := parseDataset(data, "")
		if err != nil {
			return types.Dataset{}, fmt.Errorf("%s: %w", full, err)
		}
		for _, s := range ds.Stocks {
			if prev, ok := seen[s.Ticker]; ok {
				return types.Dataset{}, fmt.Errorf("%s: %w: ticker %s already defined in %s", full, types.ErrInvalidArgument, s.Ticker, prev)
			}
			seen[s.Ticker] = full
		}
		all.Stocks = append(all.Stocks, ds.Stocks...)
	}
	return all, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseDataset accepts two shapes:
// 1) a map with optional name and a stocks list: "name: ...; stocks: [...]"
// 2) a top-level list of records: "- ticker: ..."
// fallbackName is used when the document has no name.
func parseDataset(data []byte, fallbackName string) (types.Dataset, error) {
	var ds types.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		var list []types.StockRecord
		if err2 := yaml.Unmarshal(data, &list); err2 != nil {
			return types.Dataset{}, fmt.Errorf("parse dataset: %w", err)
		}
		ds = types.Dataset{Stocks: list}
	}
	if strings.TrimSpace(ds.Name) == "" {
		ds.Name = fallbackName
	}

	seen := make(map[string]struct{}, len(ds.Stocks))
	for i, s := range ds.Stocks {
		if strings.TrimSpace(s.Ticker) == "" {
			return types.Dataset{}, fmt.Errorf("%w: record %d has no ticker", types.ErrInvalidArgument, i)
		}
		if _, dup := seen[s.Ticker]; dup {
			return types.Dataset{}, fmt.Errorf("%w: duplicate ticker %s", types.ErrInvalidArgument, s.Ticker)
		}
		seen[s.Ticker] = struct{}{}
	}
	return ds, nil
}
