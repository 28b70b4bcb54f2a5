package sanitize

import (
	"regexp"

	"privaflow/internal/registry"
)

// Restoration records how often a code was restored. A zero count for a code
// that was applied during sanitization means the external transformer likely
// altered or dropped the code; that span simply stays unrestored.
type Restoration struct {
	Code  string
	Term  string
	Count int
}

type Restorer struct {
	reg      *registry.Registry
	matchers []codeMatcher
}

type codeMatcher struct {
	code string
	term string
	re   *regexp.Regexp
}

// NewRestorer precompiles an exact-token matcher per code, in
// first-declaration order. Restoration must use the same registry that
// sanitized the artifact or the result is silently partial.
func NewRestorer(reg *registry.Registry) *Restorer {
	r := &Restorer{reg: reg}
	for _, code := range reg.Codes() {
		term, _ := reg.CanonicalTerm(code)
		r.matchers = append(r.matchers, codeMatcher{
			code: code,
			term: term,
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(code) + `\b`),
		})
	}
	return r
}

// PresentCodes reports which registry codes occur as exact tokens in text.
func (r *Restorer) PresentCodes(text string) map[string]bool {
	present := make(map[string]bool)
	for _, m := range r.matchers {
		if m.re.MatchString(text) {
			present[m.code] = true
		}
	}
	return present
}

// Restore replaces every exact-token occurrence of each code with its
// canonical term. Codes that share a rule (synonyms) all restore to the one
// canonical term; restored casing follows the declared form, not whatever
// the input carried. Advanced-pattern replacements are never restored.
func (r *Restorer) Restore(text string) (string, []Restoration) {
	results := make([]Restoration, 0, len(r.matchers))

	for _, m := range r.matchers {
		count := len(m.re.FindAllStringIndex(text, -1))
		if count > 0 {
			text = m.re.ReplaceAllLiteralString(text, m.term)
		}
		results = append(results, Restoration{Code: m.code, Term: m.term, Count: count})
	}

	return text, results
}
