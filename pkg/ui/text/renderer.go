// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/arthur-debert/keeper/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ValueResult:
		if !v.Found {
			return nil
		}
		return r.println(display.FormatValue(v.Value))
	case *display.BoolResult:
		return r.println(fmt.Sprint(v.Value))
	case *display.CountResult:
		return r.println(fmt.Sprint(v.Count))
	case *display.ListResult:
		for _, item := range v.Items {
			if err := r.println(item); err != nil {
				return err
			}
		}
		return nil
	case *display.ValuesResult:
		for _, value := range v.Values {
			if err := r.println(display.FormatValue(value)); err != nil {
				return err
			}
		}
		return nil
	case *display.EntriesResult:
		for _, k := range slices.Sorted(maps.Keys(v.Entries)) {
			if _, err := fmt.Fprintf(r.output, "%s=%s\n", k, display.FormatValue(v.Entries[k])); err != nil {
				return err
			}
		}
		return nil
	case *display.ChangeResult:
		return r.println(v.Message)
	case *display.VersionResult:
		_, err := fmt.Fprintf(r.output, "keeper version %s\n  commit: %s\n  built:  %s\n", v.Version, v.Commit, v.Date)
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}
