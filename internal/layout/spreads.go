package layout

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/spreads.yaml
var spreadFS embed.FS

var ErrUnknownSpread = errors.New("unknown spread")

// GridSpec describes a regular row/grid spread solved generically.
type GridSpec struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// SlotSpec is one hand-placed slot of an irregular spread, in card units
// from the spread center. X grows rightward, Y downward.
type SlotSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Rot float64 `yaml:"rot"`
}

// SpreadSpec is one entry of the declarative spread table. Exactly one of
// Grid or Slots is set.
type SpreadSpec struct {
	ID    string            `yaml:"id"`
	Name  map[string]string `yaml:"name"`
	Grid  *GridSpec         `yaml:"grid"`
	Slots []SlotSpec        `yaml:"slots"`
}

// Cardinality returns the fixed number of slots this spread defines.
func (s SpreadSpec) Cardinality() int {
	if s.Grid != nil {
		return s.Grid.Cols * s.Grid.Rows
	}
	return len(s.Slots)
}

// DisplayName returns the spread name for a locale, falling back to English.
func (s SpreadSpec) DisplayName(locale string) string {
	if n, ok := s.Name[locale]; ok {
		return n
	}
	return s.Name["en"]
}

var (
	loadOnce sync.Once
	specs    map[string]SpreadSpec
	specIDs  []string
	loadErr  error
)

func load() {
	raw, err := spreadFS.ReadFile("data/spreads.yaml")
	if err != nil {
		loadErr = fmt.Errorf("read spread table: %w", err)
		return
	}
	var list []SpreadSpec
	if err := yaml.Unmarshal(raw, &list); err != nil {
		loadErr = fmt.Errorf("parse spread table: %w", err)
		return
	}
	specs = make(map[string]SpreadSpec, len(list))
	for _, s := range list {
		if (s.Grid == nil) == (len(s.Slots) == 0) {
			loadErr = fmt.Errorf("spread %q must define exactly one of grid or slots", s.ID)
			return
		}
		specs[s.ID] = s
		specIDs = append(specIDs, s.ID)
	}
}

// Spread looks up one entry of the spread table.
func Spread(id string) (SpreadSpec, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return SpreadSpec{}, loadErr
	}
	s, ok := specs[id]
	if !ok {
		return SpreadSpec{}, fmt.Errorf("%w: %q", ErrUnknownSpread, id)
	}
	return s, nil
}

// SpreadIDs lists every spread in table order.
func SpreadIDs() []string {
	loadOnce.Do(load)
	out := make([]string, len(specIDs))
	copy(out, specIDs)
	return out
}
