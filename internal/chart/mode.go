// Package chart renders the Robertson (2010) Soil Behaviour Type chart with
// CPT points plotted over the zone boundaries.
package chart

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

// Mode selects how zones are drawn.
type Mode string

// Supported render modes.
const (
	ModeColored Mode = "colored"
	ModeOutline Mode = "outline"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ParseMode accepts colored or outline, and the short forms c and w.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "colored", "coloured", "c":
		return ModeColored, nil
	case "outline", "w":
		return ModeOutline, nil
	default:
		return "", eris.Wrapf(sbt.ErrInvalidRenderMode, "mode %q", s)
	}
}

// ParseFormat accepts png or svg.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", eris.Errorf("chart: unsupported format %q", s)
	}
}

// ContentType returns the MIME type for an output format.
func ContentType(format string) string {
	if format == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}
