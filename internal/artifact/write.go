package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write persists an artifact atomically: the text goes to a uniquely named
// temp file in the destination directory and is renamed into place, so a
// crashed run never leaves a partially written artifact that could be
// mistaken for a complete one.
func Write(a Artifact, path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, []byte(a.Text), 0o644); err != nil {
		return fmt.Errorf("write %s artifact: %w", a.Stage, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize %s artifact: %w", a.Stage, err)
	}

	return nil
}
