package render

import (
	"strings"

	"github.com/matzehuels/hypergraph/pkg/errors"
)

// Format names an output artifact.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatSVG, FormatDOT, FormatPNG}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatSVG, FormatDOT, FormatPNG:
		return true
	}
	return false
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormats parses a comma-separated format list. Duplicates are
// dropped and an empty list yields svg.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !f.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: json, svg, dot, png)", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatSVG}
	}
	return out, nil
}
