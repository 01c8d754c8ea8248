package targeting

import (
	"errors"
	"fmt"
	"strings"

	"orefinder/internal/domain/voxel"
)

var (
	ErrEmptyItems   = errors.New("held item list is empty")
	ErrEmptyTargets = errors.New("target material list is empty")
)

type entry struct {
	item   string
	target voxel.Material
}

// Mapping resolves a held item to the material it detects. Entries are
// matched in configuration order, ignoring case.
type Mapping struct {
	entries []entry
}

// NewMapping pairs items[i] with targets[i]. When the lists differ in length
// the extra tail of the longer one is ignored. Either list being empty is an
// error and no mapping is built.
func NewMapping(items, targets []string) (Mapping, error) {
	if len(items) == 0 {
		return Mapping{}, fmt.Errorf("indicate.inhand: %w", ErrEmptyItems)
	}
	if len(targets) == 0 {
		return Mapping{}, fmt.Errorf("indicate.lookfor: %w", ErrEmptyTargets)
	}
	n := min(len(items), len(targets))
	entries := make([]entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, entry{
			item:   strings.TrimSpace(items[i]),
			target: voxel.Material(strings.TrimSpace(targets[i])),
		})
	}
	return Mapping{entries: entries}, nil
}

func (m Mapping) Resolve(item string) (voxel.Material, bool) {
	item = strings.TrimSpace(item)
	if item == "" {
		return "", false
	}
	for _, e := range m.entries {
		if strings.EqualFold(e.item, item) {
			if e.target.Empty() {
				return "", false
			}
			return e.target, true
		}
	}
	return "", false
}

func (m Mapping) Len() int { return len(m.entries) }
