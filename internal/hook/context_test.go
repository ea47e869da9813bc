package hook

import "testing"

func TestBuildContext(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		env   Env
		want  Context
	}{
		{
			name: "command input without file path",
			input: Input{
				ToolName:  "Bash",
				ToolInput: ToolInputData{Command: "npm install"},
			},
			env: Env{Cwd: "/work", Branch: "main"},
			want: Context{
				ToolName:      "Bash",
				Command:       "npm install",
				FileDir:       "/work",
				WorkspaceRoot: "/work",
				Branch:        "main",
			},
		},
		{
			name: "file path input derives file_dir",
			input: Input{
				ToolName:  "Edit",
				ToolInput: ToolInputData{FilePath: "/repo/src/main.go"},
			},
			env: Env{Cwd: "/work"},
			want: Context{
				ToolName:      "Edit",
				FilePath:      "/repo/src/main.go",
				FileDir:       "/repo/src",
				WorkspaceRoot: "/work",
			},
		},
		{
			name: "workspace root override wins over cwd",
			input: Input{
				ToolName: "Bash",
			},
			env: Env{Cwd: "/work", WorkspaceRoot: "/repo"},
			want: Context{
				ToolName:      "Bash",
				FileDir:       "/work",
				WorkspaceRoot: "/repo",
			},
		},
		{
			name: "branch resolution failure leaves branch empty",
			input: Input{
				ToolName:  "Bash",
				ToolInput: ToolInputData{Command: "ls"},
			},
			env: Env{Cwd: "/work"},
			want: Context{
				ToolName:      "Bash",
				Command:       "ls",
				FileDir:       "/work",
				WorkspaceRoot: "/work",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildContext(&tt.input, tt.env)
			if *got != tt.want {
				t.Errorf("BuildContext() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	ctx := &Context{
		Command:       "npm test",
		FilePath:      "/repo/src/main.go",
		FileDir:       "/repo/src",
		WorkspaceRoot: "/repo",
		ToolName:      "Bash",
		Branch:        "main",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no tokens", "plain text", "plain text"},
		{"single token", "running ${command}", "running npm test"},
		{"all tokens", "${tool_name} ${command} ${file_path} ${file_dir} ${workspace_root} ${branch}",
			"Bash npm test /repo/src/main.go /repo/src /repo main"},
		{"unrecognized token left verbatim", "value is ${unknown}", "value is ${unknown}"},
		{"adjacent tokens", "${branch}${branch}", "mainmain"},
		{"malformed token left verbatim", "${command", "${command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.Expand(tt.template); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

// A substituted value must never itself be re-scanned for tokens: a command
// containing the literal text "${file_path}" stays literal after expansion.
func TestExpandNotRecursive(t *testing.T) {
	ctx := &Context{
		Command:  "echo ${file_path}",
		FilePath: "/secret",
	}

	got := ctx.Expand("run: ${command}")
	want := "run: echo ${file_path}"
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestExpandIdempotentWithoutTokens(t *testing.T) {
	ctx := &Context{Command: "ls"}

	s := "nothing to expand here"
	once := ctx.Expand(s)
	twice := ctx.Expand(once)
	if once != s || twice != s {
		t.Errorf("Expand() changed token-free string: %q -> %q -> %q", s, once, twice)
	}
}
