package corpus

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Document is one text unit of the corpus.
type Document struct {
	Path string // relative to the walk root, slash-separated
	Text string
}

// Walker discovers corpus documents under a root directory.
type Walker struct {
	patterns []string
	ignored  []string
}

// DefaultPatterns selects every markdown file in the tree.
var DefaultPatterns = []string{"**/*.md"}

// DefaultIgnored are directory names never descended into.
var DefaultIgnored = []string{".git", "node_modules", "vendor", "reports", "build"}

// NewWalker creates a walker with doublestar include patterns and a list of
// ignored directory names. Nil arguments select the defaults.
func NewWalker(patterns, ignored []string) *Walker {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if len(ignored) == 0 {
		ignored = DefaultIgnored
	}
	return &Walker{patterns: patterns, ignored: ignored}
}

// Walk streams every matching readable document to the callback.
// Unreadable files are skipped silently: one bad file must never abort the
// audit. A .gitignore at the root is honored when present.
func (w *Walker) Walk(root string, onDoc func(Document)) error {
	gi := loadGitignore(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A nil entry means the root itself failed: the corpus is a
			// required input, so that escalates. Per-entry failures are
			// skipped like any other unreadable unit.
			if d == nil {
				return err
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			for _, ign := range w.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			if gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.matches(rel) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		text, readErr := os.ReadFile(path)
		if readErr != nil {
			// Best-effort scan: skip and continue.
			return nil
		}

		onDoc(Document{Path: rel, Text: string(text)})
		return nil
	})
}

// Collect walks the root and returns all documents as a path → text map.
func (w *Walker) Collect(root string) (map[string]string, error) {
	docs := make(map[string]string)
	err := w.Walk(root, func(d Document) {
		docs[d.Path] = d.Text
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (w *Walker) matches(rel string) bool {
	for _, pat := range w.patterns {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
