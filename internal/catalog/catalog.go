package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// embeddedWishes is the wish list shipped with the site.
//
//go:embed wishes.json
var embeddedWishes []byte

// Catalog is an ordered, immutable list of wishes.
type Catalog struct {
	wishes []string
}

// Load decodes a JSON array of strings. Entries are trimmed and blank entries
// are dropped; an empty catalog is valid.
func Load(data []byte) (Catalog, error) {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("catalog: decode wishes: %w", err)
	}
	wishes := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		wishes = append(wishes, w)
	}
	return Catalog{wishes: wishes}, nil
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return Load(embeddedWishes)
}

// Wishes returns a copy of the catalog entries in order.
func (c Catalog) Wishes() []string {
	out := make([]string, len(c.wishes))
	copy(out, c.wishes)
	return out
}

// Len returns the number of wishes.
func (c Catalog) Len() int {
	return len(c.wishes)
}
