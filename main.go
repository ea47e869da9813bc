// hookgate - Claude Code hook interceptor
//
// hookgate receives one tool invocation as JSON on stdin, consults a
// declarative TOML rule file, and decides whether to allow, block, rewrite,
// or log that invocation.
//
// Usage in ~/.claude/settings.json:
//
//	"hooks": {
//	  "PreToolUse": [{
//	    "matcher": ".*",
//	    "hooks": [{"type": "command", "command": "hookgate PreToolUse"}]
//	  }]
//	}
//
// Test:
//
//	echo '{"tool_name": "Bash", "tool_input": {"command": "npm install"}}' | hookgate PreToolUse
package main

import (
	"os"

	"github.com/hookgate/hookgate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
