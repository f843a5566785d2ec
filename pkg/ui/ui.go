// Package ui renders keeper results and failures for a styled terminal, a
// plain pipe or a program reading JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/ui/json"
	"github.com/arthur-debert/keeper/pkg/ui/terminal"
	"github.com/arthur-debert/keeper/pkg/ui/text"
)

// Renderer writes the results of pkg/ui/display, errors and short markdown
// messages in one output format.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

var renderers = map[Format]func(io.Writer) (Renderer, error){
	FormatTerminal: func(w io.Writer) (Renderer, error) { return terminal.New(w) },
	FormatText:     func(w io.Writer) (Renderer, error) { return text.New(w) },
	FormatJSON:     func(w io.Writer) (Renderer, error) { return json.New(w) },
}

// NewRenderer returns the renderer for format writing to w. FormatAuto is
// settled for w by Resolve.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	build, ok := renderers[Resolve(format, w)]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format).
			WithDetail("format", int(format))
	}
	return build(w)
}

// Console is where a command reports. Results and notices go to Out,
// failures to Err. Each side resolves FormatAuto on its own, so redirecting
// stdout keeps errors styled on an interactive stderr.
type Console struct {
	Out Renderer
	Err Renderer
}

// NewConsole parses the --format value and builds both renderers.
func NewConsole(format string, stdout, stderr io.Writer) (*Console, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	out, err := NewRenderer(f, stdout)
	if err != nil {
		return nil, err
	}
	errOut, err := NewRenderer(f, stderr)
	if err != nil {
		return nil, err
	}
	return &Console{Out: out, Err: errOut}, nil
}
