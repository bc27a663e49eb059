package patch

import (
	"fmt"
	"os"
	"strings"

	"github.com/dlclark/regexp2"
)

// filenamePattern rewrites the CLAUDE.md filename convention. Occurrences
// directly preceded by a comma stay unchanged so comma-separated filename
// lists inside the entry file keep their original first entry; stdlib regexp
// is RE2 and cannot express the lookbehind, hence regexp2.
var filenamePattern = regexp2.MustCompile(`(?<!,)CLAUDE\.md`, regexp2.None)

// Local installs can resolve this quoted module reference against the wrong
// copy in the nested node_modules tree; the trailing slash forces directory
// resolution. Global installs do not hit the ambiguity.
const (
	moduleToken        = `"@anthropic-ai/sdk"`
	moduleTokenPatched = `"@anthropic-ai/sdk/"`
)

// Apply rewrites entry-file source for AGENTS mode. The module-token rewrite
// only applies to local installs. Apply is idempotent.
func Apply(src string, local bool) string {
	if local {
		src = strings.ReplaceAll(src, moduleToken, moduleTokenPatched)
	}
	out, err := filenamePattern.Replace(src, "AGENTS.md", -1, -1)
	if err != nil {
		// Constant pattern, literal replacement; Replace cannot fail on
		// ordinary input.
		return src
	}
	return out
}

// WritePatched regenerates the patched entry file from the original. The
// patched copy is rewritten on every run, not cached, so it always reflects
// the current original.
func WritePatched(original, patched string, local bool) error {
	src, err := os.ReadFile(original)
	if err != nil {
		return fmt.Errorf("read %s: %w", original, err)
	}
	if err := os.WriteFile(patched, []byte(Apply(string(src), local)), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", patched, err)
	}
	return nil
}
