package mode

import (
	"os"
	"path/filepath"
	"strings"
)

// Known mode values. AGENTS patches the wrapped tool's entry file before
// launch; CLAUDE launches it unmodified.
const (
	Agents  = "AGENTS"
	Claude  = "CLAUDE"
	Default = Agents
)

// Path returns the mode file location under the given home directory.
func Path(home string) string {
	return filepath.Join(home, ".agentsx-mode")
}

// Load reads the persisted mode. Any read failure means the default: the
// wrapper must start even when the file was never created.
func Load(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return Default
	}
	return value
}

// Save overwrites the mode file with exactly the given value. Validation
// lives at the CLI boundary; the store persists any string.
func Save(path, value string) error {
	return os.WriteFile(path, []byte(value), 0o600)
}
