package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")  // teal: selection, names
	colorOK      = lipgloss.Color("35")  // green: success, active drag
	colorWarn    = lipgloss.Color("220") // amber: skipped entities
	colorFail    = lipgloss.Color("167") // red: errors
	colorCommand = lipgloss.Color("75")  // blue: suggested commands
	colorText    = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
)

// statusMark is the leading glyph of a status line.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// stdout receives all status output; tests swap it.
var stdout io.Writer = os.Stdout

func (m statusMark) print(msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) { markSuccess.print(fmt.Sprintf(format, args...)) }

func printError(format string, args ...any) { markError.print(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) { markInfo.print(fmt.Sprintf(format, args...)) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "  → path" for a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printArtifact is printFile with a human-readable size.
func printArtifact(path string, size int) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path)+" "+StyleDim.Render(humanize.Bytes(uint64(size))))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints "  N vertices · M edges · K skipped · fresh|cached".
func printStats(vertexCount, edgeCount, warnings int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d vertices", vertexCount))}
	if edgeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)))
	}
	if warnings > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d skipped", warnings)))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printWarnings prints load warnings, one per line.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		printWarning("%s", w)
	}
}

// printNextStep prints "description: command".
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
