package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name     string
		vertices int
		edges    int
		warnings int
		cached   bool
		want     []string
		absent   []string
	}{
		{"fresh", 4, 2, 0, false, []string{"4 vertices", "2 edges", "fresh"}, []string{"skipped", "cached"}},
		{"no edges", 1, 0, 0, true, []string{"1 vertices", "cached"}, []string{"edges"}},
		{"skipped", 3, 1, 2, false, []string{"2 skipped"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			printStats(tt.vertices, tt.edges, tt.warnings, tt.cached)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("printStats() = %q, want %q", out, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(out, a) {
					t.Errorf("printStats() = %q, should not contain %q", out, a)
				}
			}
		})
	}
}

func TestPrintWarnings(t *testing.T) {
	buf := captureStdout(t)
	printWarnings([]string{`vertex "x": unknown shape "hexagon"`, `edge e3: unknown vertex "y"`})
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("printWarnings() wrote %d lines, want 2", got)
	}
	if !strings.Contains(buf.String(), "hexagon") {
		t.Errorf("printWarnings() = %q, want warning text", buf.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(out.String(), "hypergraph") {
				t.Errorf("completion %s output does not mention hypergraph", shell)
			}
		})
	}
}

func TestPrintArtifact(t *testing.T) {
	buf := captureStdout(t)
	printArtifact("out/pair.svg", 2048)
	if out := buf.String(); !strings.Contains(out, "out/pair.svg") || !strings.Contains(out, "2.0 kB") {
		t.Errorf("printArtifact() = %q, want path and 2.0 kB", out)
	}
}
