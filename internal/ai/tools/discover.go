package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"shellagent/internal/logger"
)

// DiscoverTools scans a directory for executable tool programs, queries
// each for its metadata and registers the valid ones. Candidates with
// missing metadata, a malformed parameter schema or an already-taken
// name are skipped with a warning and the session continues. Only an
// unreadable directory is fatal.
//
// Directory entries are visited in sorted name order, which makes the
// first-wins duplicate policy deterministic.
func DiscoverTools(dir string, registry *ToolRegistry, opts ScriptOptions) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read tools directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warnf("Skipping tool candidate %s: %v", entry.Name(), err)
			continue
		}
		if info.Mode()&0o111 == 0 {
			// Not executable, not a tool program.
			continue
		}

		path := filepath.Join(dir, entry.Name())
		tool, err := NewScriptTool(path, opts)
		if err != nil {
			logger.Warnf("Skipping tool candidate %s: %v", entry.Name(), err)
			continue
		}

		if err := registry.RegisterTool(tool); err != nil {
			logger.Warnf("Skipping tool candidate %s: %v", entry.Name(), err)
			continue
		}

		logger.Debugf("Discovered tool %s (%s)", tool.Name(), entry.Name())
	}

	return nil
}
