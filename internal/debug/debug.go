package debug

import (
	"fmt"
	"os"
	"strings"
)

// Enabled reports whether AGENTSX_DEBUG asks for diagnostic output.
func Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("AGENTSX_DEBUG"))) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// Logf prints a diagnostic line when debug output is enabled.
func Logf(format string, args ...any) {
	if !Enabled() {
		return
	}
	fmt.Printf("[agentsx] "+format+"\n", args...)
}
