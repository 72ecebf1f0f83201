package cli

import (
	"fmt"
	"os"
)

// openStdioLog opens the append-only stdio log. An empty path returns nil, nil.
func openStdioLog(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open stdio log: %w", err)
	}
	return f, nil
}
