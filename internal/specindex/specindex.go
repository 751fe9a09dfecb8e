// Package specindex loads the precomputed structured index consumed by the
// explicit link strategy.
package specindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrIndexMissing marks an absent spec index, a hard precondition failure
// for the explicit strategy. The heuristic strategy does not depend on it.
var ErrIndexMissing = errors.New("spec index missing")

// Item is one declared element: an identifier plus its outbound references.
type Item struct {
	ID         string   `json:"id"`
	Title      string   `json:"title,omitempty"`
	References []string `json:"references"`
}

// Index is the parsed spec index.
type Index struct {
	Items []Item `json:"items"`
}

// Load parses a spec index file. Missing file yields ErrIndexMissing;
// malformed content names the file and root cause.
func Load(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, path)
		}
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(b, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse spec index %s: %w", path, err)
	}
	return &idx, nil
}
