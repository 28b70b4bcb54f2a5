// Package registry holds the validated mapping between confidential terms
// and their replacement codes. A Registry is built once per run and is
// immutable afterwards, so it is safe to share across concurrent pipelines.
package registry

import (
	"fmt"
	"regexp"
	"strings"

	"privaflow/internal/config"
)

// ConfigError reports a bad or ambiguous term table. It is fatal and is
// surfaced before any file is processed.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "term registry: " + e.Reason
}

// TermRule is one reversible replacement: a case-insensitive pattern mapped
// to an opaque code. Several rules may share a code only when they were
// declared as synonyms of one entry; restoration then emits the canonical
// term of that entry.
type TermRule struct {
	Pattern string
	Code    string
	Matcher *regexp.Regexp
}

// AdvancedPattern is a case-sensitive, sanitize-only replacement for
// structural data (phone numbers, emails, amounts). It is never restored.
type AdvancedPattern struct {
	Pattern     string
	Replacement string
	Matcher     *regexp.Regexp
}

type Registry struct {
	rules     []TermRule
	advanced  []AdvancedPattern
	codes     []string          // distinct codes, first-declaration order
	canonical map[string]string // code -> canonical term used for restoration
	warnings  []string
}

// FromConfig builds and validates a Registry from the sanitize section of
// the configuration.
func FromConfig(cfg config.SanitizeConfig) (*Registry, error) {
	return New(cfg.Terms, cfg.AdvancedPatterns)
}

// New compiles and validates the declared rules. Validation fails on code
// collisions between distinct entries, on uncompilable patterns, and on any
// code that is itself matched by a pattern (which would break sanitize
// idempotence). Ordering problems only produce warnings.
func New(terms []config.TermConfig, patterns []config.PatternConfig) (*Registry, error) {
	r := &Registry{
		canonical: make(map[string]string),
	}

	for _, entry := range terms {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("term %q has an empty code", entry.Term)}
		}
		if existing, ok := r.canonical[code]; ok {
			return nil, &ConfigError{Reason: fmt.Sprintf(
				"code %q maps to both %q and %q; declare synonyms inside one entry if they should collapse",
				code, existing, entry.Term)}
		}

		canonical := literalForm(entry.Term)
		r.canonical[code] = canonical
		r.codes = append(r.codes, code)

		for _, pattern := range append([]string{entry.Term}, entry.Synonyms...) {
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return nil, &ConfigError{Reason: fmt.Sprintf("pattern %q does not compile: %v", pattern, err)}
			}
			r.rules = append(r.rules, TermRule{Pattern: pattern, Code: code, Matcher: re})
		}
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("advanced pattern %q does not compile: %v", p.Pattern, err)}
		}
		r.advanced = append(r.advanced, AdvancedPattern{
			Pattern:     p.Pattern,
			Replacement: p.Replacement,
			Matcher:     re,
		})
	}

	if err := r.checkCodesUnmatchable(); err != nil {
		return nil, err
	}
	r.detectShadowedRules()

	return r, nil
}

// checkCodesUnmatchable rejects a registry in which some code is itself
// matched by a rule, since sanitizing already-sanitized text would then
// rewrite the codes and restoration would be undefined.
func (r *Registry) checkCodesUnmatchable() error {
	for _, code := range r.codes {
		for _, rule := range r.rules {
			if rule.Matcher.MatchString(code) {
				return &ConfigError{Reason: fmt.Sprintf(
					"code %q is matched by pattern %q; sanitization would not be idempotent", code, rule.Pattern)}
			}
		}
		for _, p := range r.advanced {
			if p.Matcher.MatchString(code) {
				return &ConfigError{Reason: fmt.Sprintf(
					"code %q is matched by advanced pattern %q; sanitization would not be idempotent", code, p.Pattern)}
			}
		}
	}
	return nil
}

// detectShadowedRules warns when a shorter pattern is declared before a
// longer pattern containing it. The shorter rule then fires first and the
// longer term is only ever partially replaced.
func (r *Registry) detectShadowedRules() {
	for i := 0; i < len(r.rules); i++ {
		for j := i + 1; j < len(r.rules); j++ {
			shorter := strings.ToLower(literalForm(r.rules[i].Pattern))
			longer := strings.ToLower(literalForm(r.rules[j].Pattern))
			if shorter != longer && strings.Contains(longer, shorter) {
				r.warnings = append(r.warnings, fmt.Sprintf(
					"pattern %q (code %s) is declared before longer pattern %q (code %s) that contains it; order longest-match-first",
					r.rules[i].Pattern, r.rules[i].Code, r.rules[j].Pattern, r.rules[j].Code))
			}
		}
	}
}

// literalForm strips the regex decorations that term patterns commonly carry
// so the term can be used as restoration text and for overlap detection.
func literalForm(pattern string) string {
	return strings.TrimSpace(strings.ReplaceAll(pattern, `\b`, ""))
}

// Rules returns the term rules in declaration order, synonyms expanded.
func (r *Registry) Rules() []TermRule {
	return r.rules
}

// Advanced returns the sanitize-only patterns in declaration order.
func (r *Registry) Advanced() []AdvancedPattern {
	return r.advanced
}

// Codes returns the distinct codes in first-declaration order.
func (r *Registry) Codes() []string {
	return r.codes
}

// CanonicalTerm returns the term restoration emits for a code.
func (r *Registry) CanonicalTerm(code string) (string, bool) {
	term, ok := r.canonical[code]
	return term, ok
}

// Warnings returns the non-fatal ordering issues found during validation.
func (r *Registry) Warnings() []string {
	return r.warnings
}
