package identifier

import "sort"

// Index is the immutable result of scanning a corpus: per kind the set of
// distinct identifiers, plus where each identifier occurred.
type Index struct {
	ids   map[Kind]map[string]struct{}
	occur map[string]map[string]struct{}
}

// Scanner accumulates identifier occurrences document by document.
// Accumulation is local to the scanner; Build returns the result once and
// the scanner holds no state shared with previous builds.
type Scanner struct {
	ids   map[Kind]map[string]struct{}
	occur map[string]map[string]struct{}
}

// NewScanner creates an empty scanner.
func NewScanner() *Scanner {
	s := &Scanner{
		ids:   make(map[Kind]map[string]struct{}, len(kindOrder)),
		occur: make(map[string]map[string]struct{}),
	}
	for _, k := range kindOrder {
		s.ids[k] = make(map[string]struct{})
	}
	return s
}

// Add records every identifier match found in one document.
// Repetition within a document collapses to presence.
func (s *Scanner) Add(path, text string) {
	for _, k := range kindOrder {
		for _, match := range patterns[k].FindAllString(text, -1) {
			s.ids[k][match] = struct{}{}
			units, ok := s.occur[match]
			if !ok {
				units = make(map[string]struct{})
				s.occur[match] = units
			}
			units[path] = struct{}{}
		}
	}
}

// Build snapshots the accumulated state into an immutable Index.
func (s *Scanner) Build() *Index {
	idx := &Index{
		ids:   make(map[Kind]map[string]struct{}, len(s.ids)),
		occur: make(map[string]map[string]struct{}, len(s.occur)),
	}
	for k, set := range s.ids {
		cp := make(map[string]struct{}, len(set))
		for id := range set {
			cp[id] = struct{}{}
		}
		idx.ids[k] = cp
	}
	for id, units := range s.occur {
		cp := make(map[string]struct{}, len(units))
		for u := range units {
			cp[u] = struct{}{}
		}
		idx.occur[id] = cp
	}
	return idx
}

// Scan extracts identifiers from a path → text corpus in one call.
func Scan(docs map[string]string) *Index {
	s := NewScanner()
	for path, text := range docs {
		s.Add(path, text)
	}
	return s.Build()
}

// IDs returns the distinct identifiers of a kind, sorted.
func (idx *Index) IDs(kind Kind) []string {
	set := idx.ids[kind]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the identifier of the given kind was seen.
func (idx *Index) Has(kind Kind, id string) bool {
	_, ok := idx.ids[kind][id]
	return ok
}

// Paths returns the documents in which the identifier occurred, sorted.
func (idx *Index) Paths(id string) []string {
	units := idx.occur[id]
	out := make([]string, 0, len(units))
	for u := range units {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of distinct identifiers of a kind.
func (idx *Index) Count(kind Kind) int {
	return len(idx.ids[kind])
}

// Grouped returns all identifiers keyed by kind, each list sorted.
func (idx *Index) Grouped() map[Kind][]string {
	out := make(map[Kind][]string, len(idx.ids))
	for k := range idx.ids {
		out[k] = idx.IDs(k)
	}
	return out
}
