package identifier

import "regexp"

// Kind classifies an identifier by the lexical pattern it matched.
type Kind string

const (
	KindStakeholder Kind = "stakeholder"
	KindRequirement Kind = "requirement"
	KindDecision    Kind = "decision"
	KindComponent   Kind = "component"
	KindScenario    Kind = "scenario"
	KindTest        Kind = "test"
)

// Patterns are case-sensitive and anchored to the identifier grammar.
var patterns = map[Kind]*regexp.Regexp{
	KindStakeholder: regexp.MustCompile(`StR-\d{3}`),
	KindRequirement: regexp.MustCompile(`REQ-(?:F|NF)-\d{3}`),
	KindDecision:    regexp.MustCompile(`ADR-\d{3}`),
	KindComponent:   regexp.MustCompile(`ARC-C-\d{3}`),
	KindScenario:    regexp.MustCompile(`QA-SC-\d{3}`),
	KindTest:        regexp.MustCompile(`TEST-[A-Z0-9-]+`),
}

var kindOrder = []Kind{
	KindStakeholder,
	KindRequirement,
	KindDecision,
	KindComponent,
	KindScenario,
	KindTest,
}

var kindPrefixes = map[Kind]string{
	KindStakeholder: "StR",
	KindRequirement: "REQ",
	KindDecision:    "ADR",
	KindComponent:   "ARC",
	KindScenario:    "QA",
	KindTest:        "TEST",
}

// Kinds returns all identifier kinds in stable declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Prefix returns the raw identifier prefix for the kind (e.g. "REQ").
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// Pattern returns the compiled lexical pattern for the kind.
func (k Kind) Pattern() *regexp.Regexp {
	return patterns[k]
}

// KindOf classifies an identifier string. The whole string must match a
// kind's pattern; returns false otherwise.
func KindOf(id string) (Kind, bool) {
	for _, k := range kindOrder {
		if pat, ok := exactMatch[k]; ok && pat.MatchString(id) {
			return k, true
		}
	}
	return "", false
}

// exactMatch anchors each pattern at both ends so that classification of an
// already-extracted identifier is exact: an over-long id like REQ-F-0012 is
// not a requirement. ARC-C and ADR share no prefix, so order does not
// matter.
var exactMatch = func() map[Kind]*regexp.Regexp {
	m := make(map[Kind]*regexp.Regexp, len(patterns))
	for k, pat := range patterns {
		m[k] = regexp.MustCompile(`^(?:` + pat.String() + `)$`)
	}
	return m
}()
