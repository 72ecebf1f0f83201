//go:build !unix

package cli

import "os"

// redirectStdIO swaps os.Stdout and os.Stderr; runtime panics still reach the console.
func redirectStdIO(path string) error {
	f, err := openStdioLog(path)
	if err != nil || f == nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
