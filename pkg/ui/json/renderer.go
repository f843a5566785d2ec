// Package json writes keeper output as indented JSON documents, one per
// call, for programs driving the CLI.
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/keeper/pkg/errors"
)

// errorDocument is the JSON form of a failure. Code and Details are only
// present for coded errors.
type errorDocument struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDocument struct {
	Message string `json:"message"`
}

// Renderer encodes results with their own json tags.
type Renderer struct {
	enc *json.Encoder
}

func New(w io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &Renderer{enc: enc}, nil
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

func (r *Renderer) RenderError(err error) error {
	doc := errorDocument{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = code
		doc.Details = errors.GetErrorDetails(err)
	}
	return r.enc.Encode(doc)
}

// RenderMessage emits the message verbatim, markdown included.
func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDocument{Message: msg})
}
