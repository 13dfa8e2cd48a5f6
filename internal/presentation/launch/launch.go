// Package launch opens generated artifacts in the local viewer. A launch
// failure is never fatal to analysis.
package launch

import (
	"fmt"

	"github.com/pkg/browser"

	"github.com/sotola/codex-context/internal/util"
)

// Open opens the artifact at path in the default browser.
func Open(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

// OpenAll opens every artifact, logging failures and reporting how many
// opened cleanly.
func OpenAll(paths []string) int {
	opened := 0
	for _, path := range paths {
		if err := Open(path); err != nil {
			util.LogWarnf("Could not auto-open artifact: %v", err)
			continue
		}
		opened++
	}
	return opened
}
