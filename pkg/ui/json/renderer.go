// Package json renders machine-readable output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
)

// Renderer writes indented JSON documents
type Renderer struct {
	encoder *json.Encoder
}

// New creates a JSON renderer
func New(w io.Writer) *Renderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// outcome adds the error text, which EntryOutcome does not serialize
type outcome struct {
	types.EntryOutcome
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

type transferResult struct {
	*types.TransferResult
	Outcomes []outcome `json:"outcomes"`
}

// RenderResult encodes result. Transfer outcomes carry their error message and code.
func (r *Renderer) RenderResult(result interface{}) error {
	if t, ok := result.(*types.TransferResult); ok {
		out := transferResult{TransferResult: t, Outcomes: make([]outcome, len(t.Outcomes))}
		for i, o := range t.Outcomes {
			out.Outcomes[i] = outcome{EntryOutcome: o, Error: o.ErrorMessage()}
			if o.Error != nil {
				out.Outcomes[i].Code = string(errors.GetErrorCode(o.Error))
			}
		}
		return r.encoder.Encode(out)
	}
	return r.encoder.Encode(result)
}

// RenderError encodes an error object
func (r *Renderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
		"code":  string(errors.GetErrorCode(err)),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}

// RenderMessage encodes a message object
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
