// Package testutil provides shared test utilities for hookgate tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hookgate/hookgate/internal/constants"
)

// WriteRuleFile writes a rule file into a temp directory and returns its path.
func WriteRuleFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hooks-rules.toml")
	if err := os.WriteFile(path, []byte(content), constants.FileMode); err != nil {
		t.Fatal(err)
	}
	return path
}

// MinimalRules is a small valid rule file for tests.
const MinimalRules = `
[rules.block-force-push]
event = "PreToolUse"
matcher = "Bash"
action = "block"
priority = 10
message = "no force pushes"
when = { command = ["git push.*--force"] }

[rules.log-everything]
event = "PreToolUse"
matcher = ".*"
action = "log"
priority = -10
log_file = "/tmp/hookgate-test.log"
`
