// Package sanitize implements the forward (term → code) and inverse
// (code → term) replacement passes around the external transform boundary.
package sanitize

import (
	"strings"

	"privaflow/internal/registry"
)

// Replacement records one applied rule for auditability.
type Replacement struct {
	Pattern string
	Code    string
	Count   int
}

type Sanitizer struct {
	reg *registry.Registry
}

func NewSanitizer(reg *registry.Registry) *Sanitizer {
	return &Sanitizer{reg: reg}
}

// Sanitize replaces every occurrence of each term rule with its code, in
// declaration order, then applies the advanced patterns. Given a valid
// registry the pass is idempotent: codes never match any pattern, so
// sanitizing sanitized text is a no-op.
func (s *Sanitizer) Sanitize(text string) (SanitizedText, []Replacement) {
	var applied []Replacement

	for _, rule := range s.reg.Rules() {
		count := len(rule.Matcher.FindAllStringIndex(text, -1))
		if count == 0 {
			continue
		}
		text = rule.Matcher.ReplaceAllLiteralString(text, rule.Code)
		applied = append(applied, Replacement{Pattern: rule.Pattern, Code: rule.Code, Count: count})
	}

	for _, p := range s.reg.Advanced() {
		count := len(p.Matcher.FindAllStringIndex(text, -1))
		if count == 0 {
			continue
		}
		text = p.Matcher.ReplaceAllLiteralString(text, p.Replacement)
		applied = append(applied, Replacement{Pattern: p.Pattern, Code: p.Replacement, Count: count})
	}

	return SanitizedText{text: text}, applied
}

// LeakCheck scans text against every registered pattern and returns the
// patterns that still match. The orchestrator runs it on anything about to
// cross the external boundary.
func (s *Sanitizer) LeakCheck(text SanitizedText) []string {
	var leaked []string
	for _, rule := range s.reg.Rules() {
		if rule.Matcher.MatchString(text.text) {
			leaked = append(leaked, rule.Pattern)
		}
	}
	for _, p := range s.reg.Advanced() {
		if p.Matcher.MatchString(text.text) {
			leaked = append(leaked, p.Pattern)
		}
	}
	return leaked
}

// Summary formats applied replacements for logging.
func Summary(applied []Replacement) string {
	if len(applied) == 0 {
		return "no replacements"
	}
	parts := make([]string, 0, len(applied))
	for _, r := range applied {
		parts = append(parts, r.Pattern+" -> "+r.Code)
	}
	return strings.Join(parts, ", ")
}
