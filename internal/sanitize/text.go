package sanitize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizedText is text that has passed through the sanitizer. The field is
// unexported so only this package can construct a value: the transform
// adapter accepts SanitizedText and nothing else, which makes "raw text never
// reaches the external transformer" a compile-time property instead of a
// convention.
type SanitizedText struct {
	text string
}

func (s SanitizedText) String() string {
	return s.text
}

func (s SanitizedText) Len() int {
	return len(s.text)
}

// FromArtifactFile reads a sanitized artifact produced by an earlier run.
// The file must follow the *_sanitized.txt naming contract; anything else is
// refused since its content cannot be trusted to have crossed the sanitizer.
func FromArtifactFile(path string) (SanitizedText, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !strings.HasSuffix(base, "_sanitized") {
		return SanitizedText{}, fmt.Errorf("refusing %s: not a *_sanitized.txt artifact", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SanitizedText{}, fmt.Errorf("read sanitized artifact: %w", err)
	}

	return SanitizedText{text: string(data)}, nil
}
