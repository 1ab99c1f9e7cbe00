package source

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/invest/pkg/invest/types"
)

// LoadAllocation reads an allocation from a YAML file.
func LoadAllocation(path string) ([]types.AllocationEntry, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	alloc, err := ParseAllocation(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return alloc, nil
}

// ParseAllocation supports two YAML shapes:
// 1) a top-level list of entries: "- name: ..."
// 2) a map with an allocation key: "allocation: [...]"
func ParseAllocation(data []byte) ([]types.AllocationEntry, error) {
	var alloc []types.AllocationEntry
	if err := yaml.Unmarshal(data, &alloc); err != nil {
		var alt struct {
			Allocation []types.AllocationEntry `yaml:"allocation"`
		}
		if err2 := yaml.Unmarshal(data, &alt); err2 != nil {
			return nil, fmt.Errorf("parse allocation: %w", err)
		}
		alloc = alt.Allocation
	}
	if len(alloc) == 0 {
		return nil, fmt.Errorf("%w: allocation has no entries", types.ErrInvalidArgument)
	}
	for i, a := range alloc {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", types.ErrInvalidArgument, i)
		}
		if !a.RiskLevel.Valid() {
			return nil, fmt.Errorf("%w: entry %q has unknown risk level %q (want Low, Medium or High)",
				types.ErrInvalidArgument, a.Name, a.RiskLevel)
		}
		if math.IsNaN(a.Percentage) || a.Percentage < 0 || a.Percentage > 100 {
			return nil, fmt.Errorf("%w: entry %q percentage %g outside [0,100]", types.ErrInvalidArgument, a.Name, a.Percentage)
		}
	}
	return alloc, nil
}
