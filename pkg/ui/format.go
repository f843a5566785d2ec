package ui

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects a renderer.
type Format int

const (
	// FormatAuto picks terminal or text for each writer, see Resolve.
	FormatAuto Format = iota
	// FormatTerminal styles output with lipgloss and pterm tables.
	FormatTerminal
	// FormatText prints bare values, one per line, for scripts.
	FormatText
	// FormatJSON prints one JSON document per result.
	FormatJSON
)

// formatNames holds the accepted --format spellings. The first one is
// canonical.
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat reads a --format value. Matching ignores case and surrounding
// space.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, names := range formatNames {
		if slices.Contains(names, name) {
			return f, nil
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("accepted", "auto, term, text, json")
}

// Resolve settles FormatAuto for w. Only an *os.File can be a terminal, so
// any other writer gets plain text. Explicit formats are returned unchanged.
func Resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	f, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	return DetectFormat(f)
}

// DetectFormat returns FormatTerminal for a color capable terminal and
// FormatText otherwise. NO_COLOR and CLICOLOR=0 force text.
func DetectFormat(f *os.File) Format {
	switch {
	case termenv.EnvNoColor():
		return FormatText
	case !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()):
		return FormatText
	case termenv.NewOutput(f).ColorProfile() == termenv.Ascii:
		return FormatText
	}
	return FormatTerminal
}
