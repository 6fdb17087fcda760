package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{"_md2slides_completions()", "complete -F _md2slides_completions md2slides", "compgen -W \"design slides\"", "--html-only", "compgen -d"}},
		{ShellZsh, []string{"#compdef md2slides", "_describe 'command' commands", "'--scene[", ":scene:(design slides)", "_files -g \"*.yaml\"", "_files -g \"*.md\""}},
		{ShellFish, []string{"function __fish_md2slides_needs_command", "__fish_md2slides_using_command convert' -l workers -s w -r", "-a 'design slides'", "-l port -s p"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion() error = %v", err)
			}
			script := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(script, want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
			for _, cmd := range []string{"convert", "serve", "themes", "doctor"} {
				if !strings.Contains(script, cmd) {
					t.Errorf("%s script missing command %q", tt.shell, cmd)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("powershell"))
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Fatalf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Error("wrote output for an unsupported shell")
	}
}

func TestExtractFlags_ConvertFlagSet(t *testing.T) {
	t.Parallel()

	flags := extractFlags(newConvertFlagSet(&convertFlags{}))
	byName := make(map[string]flagDef, len(flags))
	for i, f := range flags {
		byName[f.Long] = f
		if i > 0 && flags[i-1].Long > f.Long {
			t.Errorf("flags not sorted: %q before %q", flags[i-1].Long, f.Long)
		}
	}

	for _, name := range []string{"output", "config", "workers", "timeout", "theme", "font", "scene", "html", "quiet"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("convert flags missing --%s", name)
		}
	}
	if byName["html"].TakesArg {
		t.Error("--html should not take an argument")
	}
	if !byName["output"].IsDir {
		t.Error("--output should complete directories")
	}
	if byName["config"].FileGlob != "*.yaml" {
		t.Errorf("--config glob = %q", byName["config"].FileGlob)
	}
	if byName["workers"].Short != "w" {
		t.Errorf("--workers shorthand = %q", byName["workers"].Short)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"usage", []string{"completion"}, ExitSuccess, "Usage: md2slides completion <shell>"},
		{"bash", []string{"completion", "bash"}, ExitSuccess, "complete -F"},
		{"unknown shell", []string{"completion", "tcsh"}, ExitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(nil)
			if code := run(context.Background(), tt.args, te.Environment); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(te.stdout.String(), tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, te.stdout)
			}
		})
	}
}
