// Package regionref loads curated region display names from a TOML
// file. The file maps slugs to names:
//
//	[regions]
//	"reeves-county-texas" = "Reeves County, Texas"
//
// A missing file or a missing entry is not an error; display names
// fall back to slug-derived titles.
package regionref

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/townpages/townpages-cli/internal/core/ports/driven"
)

// Ensure TOMLReference implements the interface.
var _ driven.RegionReference = (*TOMLReference)(nil)

// TOMLReference resolves display names from a TOML regions table.
type TOMLReference struct {
	names map[string]string
}

type refFile struct {
	Regions map[string]string `toml:"regions"`
}

// Load reads the region reference from path. A non-existent path
// yields an empty reference.
func Load(path string) (*TOMLReference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &TOMLReference{names: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("reading region reference: %w", err)
	}

	var parsed refFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing region reference: %w", err)
	}
	if parsed.Regions == nil {
		parsed.Regions = map[string]string{}
	}

	return &TOMLReference{names: parsed.Regions}, nil
}

// DisplayName returns the curated name for a slug.
func (r *TOMLReference) DisplayName(slug string) (string, bool) {
	name, ok := r.names[slug]
	return name, ok && name != ""
}

// Len returns the number of curated entries.
func (r *TOMLReference) Len() int {
	return len(r.names)
}
