// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/arthur-debert/keeper/pkg/errors"
	"github.com/arthur-debert/keeper/pkg/ui/display"
	"github.com/arthur-debert/keeper/pkg/ui/styles"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using pterm tables and lipgloss styles
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.ValueResult:
		if !v.Found {
			return r.println(styles.Render(styles.Muted, fmt.Sprintf("%s has no key %q", v.Path, v.Key)))
		}
		return r.println(fmt.Sprintf("%s = %s",
			styles.Render(styles.Key, v.Key),
			styles.Render(styles.Value, display.FormatValue(v.Value))))
	case *display.BoolResult:
		name := styles.Success
		if !v.Value {
			name = styles.Muted
		}
		return r.println(styles.Render(name, fmt.Sprint(v.Value)))
	case *display.CountResult:
		return r.println(fmt.Sprintf("%s %s", styles.Render(styles.Path, v.Path), styles.Render(styles.Key, fmt.Sprint(v.Count))))
	case *display.ListResult:
		return r.renderList(v)
	case *display.ValuesResult:
		data := pterm.TableData{{"#", "Value"}}
		for i, value := range v.Values {
			data = append(data, []string{fmt.Sprint(i), display.FormatValue(value)})
		}
		return r.renderTable(v.Path, data)
	case *display.EntriesResult:
		data := pterm.TableData{{"Key", "Value"}}
		for _, k := range slices.Sorted(maps.Keys(v.Entries)) {
			data = append(data, []string{k, display.FormatValue(v.Entries[k])})
		}
		return r.renderTable(v.Path, data)
	case *display.ChangeResult:
		return r.println(fmt.Sprintf("%s %s", styles.Render(styles.Success, "✔"), v.Message))
	case *display.VersionResult:
		return r.println(fmt.Sprintf("%s %s\n  %s %s\n  %s %s",
			styles.Render(styles.Header, "keeper"), v.Version,
			styles.Render(styles.Muted, "commit:"), v.Commit,
			styles.Render(styles.Muted, "built: "), v.Date))
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	msg := err.Error()
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s %s", styles.Render(styles.Error, string(code)), msg)
	}
	return r.println(fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, msg))
}

// RenderMessage renders a simple message. Messages may use markdown.
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(strings.TrimRight(renderMarkdown(msg), "\n"))
}

// markdownStyle is the glamour style for messages. The terminal format is
// only chosen when styling was asked for, so the style does not depend on
// whether the writer is a TTY.
const markdownStyle = "dark"

// renderMarkdown renders markdown for the terminal, falling back to the
// plain content when glamour fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(markdownStyle),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func (r *Renderer) renderList(v *display.ListResult) error {
	if len(v.Items) == 0 {
		return r.println(styles.Render(styles.Muted, "(none)"))
	}
	if v.Path != "" {
		if err := r.println(styles.Render(styles.Header, v.Path)); err != nil {
			return err
		}
	}
	for _, item := range v.Items {
		if err := r.println("  " + styles.Render(styles.Key, item)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderTable(title string, data pterm.TableData) error {
	if err := r.println(styles.Render(styles.Header, title)); err != nil {
		return err
	}
	if len(data) == 1 {
		return r.println(styles.Render(styles.Muted, "(empty)"))
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	return r.println(table)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.output, s)
	return err
}
