package registry

import (
	"errors"
	"strings"
	"testing"

	"privaflow/internal/config"
)

func TestNewValid(t *testing.T) {
	reg, err := New([]config.TermConfig{
		{Term: "Anh chị", Code: "AC"},
		{Term: "Kiến thức", Code: "KT"},
	}, []config.PatternConfig{
		{Pattern: `\b0\d{9}\b`, Replacement: "[PHONE]"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := len(reg.Rules()); got != 2 {
		t.Errorf("Rules() = %d, want 2", got)
	}
	if got := len(reg.Advanced()); got != 1 {
		t.Errorf("Advanced() = %d, want 1", got)
	}
	if got := reg.Codes(); len(got) != 2 || got[0] != "AC" || got[1] != "KT" {
		t.Errorf("Codes() = %v, want [AC KT]", got)
	}

	term, ok := reg.CanonicalTerm("AC")
	if !ok || term != "Anh chị" {
		t.Errorf("CanonicalTerm(AC) = %q, %v", term, ok)
	}
}

func TestNewCodeCollision(t *testing.T) {
	_, err := New([]config.TermConfig{
		{Term: "Anh chị", Code: "AC"},
		{Term: "Ác quỷ", Code: "AC"},
	}, nil)
	if err == nil {
		t.Fatal("New() should reject two entries sharing a code")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %T, want *ConfigError", err)
	}
}

func TestNewSynonymsShareCode(t *testing.T) {
	reg, err := New([]config.TermConfig{
		{Term: "Anh chị", Code: "AC", Synonyms: []string{"các anh chị"}},
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v; synonyms inside one entry must be allowed", err)
	}

	if got := len(reg.Rules()); got != 2 {
		t.Errorf("Rules() = %d, want 2 (term + synonym)", got)
	}
	if got := len(reg.Codes()); got != 1 {
		t.Errorf("Codes() = %d, want 1", got)
	}
}

func TestNewCodeMatchedByPattern(t *testing.T) {
	// The code "AC" is itself matched by the pattern "ac" (case-insensitive),
	// so sanitizing twice would corrupt the codes.
	_, err := New([]config.TermConfig{
		{Term: "ac", Code: "AC"},
	}, nil)
	if err == nil {
		t.Fatal("New() should reject a code matched by a pattern")
	}
}

func TestNewCodeMatchedByAdvancedPattern(t *testing.T) {
	_, err := New([]config.TermConfig{
		{Term: "số điện thoại", Code: "0123456789"},
	}, []config.PatternConfig{
		{Pattern: `\b0\d{9}\b`, Replacement: "[PHONE]"},
	})
	if err == nil {
		t.Fatal("New() should reject a code matched by an advanced pattern")
	}
}

func TestNewBadPattern(t *testing.T) {
	_, err := New([]config.TermConfig{
		{Term: "(unclosed", Code: "X"},
	}, nil)
	if err == nil {
		t.Fatal("New() should reject an uncompilable pattern")
	}
}

func TestShadowWarning(t *testing.T) {
	reg, err := New([]config.TermConfig{
		{Term: "Kiến", Code: "K"},
		{Term: "Kiến thức", Code: "KT"},
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v; ordering problems must warn, not fail", err)
	}

	warnings := reg.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Warnings() = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], "longest-match-first") {
		t.Errorf("warning %q should recommend longest-match-first ordering", warnings[0])
	}
}

func TestNoShadowWarningWhenOrderedCorrectly(t *testing.T) {
	reg, err := New([]config.TermConfig{
		{Term: "Kiến thức", Code: "KT"},
		{Term: "Kiến", Code: "K"},
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(reg.Warnings()) != 0 {
		t.Errorf("Warnings() = %v, want none for longest-first ordering", reg.Warnings())
	}
}
