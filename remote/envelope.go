package remote

import (
	"io"
	"net/http"

	"emperror.dev/errors"
	"github.com/goccy/go-json"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform {status, message, data} wrapper returned by the
// daemon's update endpoints. The server populates one per request; clients
// reconstruct one from the HTTP response to assert against.
type Envelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// NewEnvelope creates an empty envelope with an initialized data object.
func NewEnvelope() *Envelope {
	return &Envelope{Data: map[string]interface{}{}}
}

// SuccessEnvelope creates a success envelope carrying the given message.
func SuccessEnvelope(message string) *Envelope {
	e := NewEnvelope()
	e.Status = StatusSuccess
	e.Message = message
	return e
}

// ErrorEnvelope creates an error envelope carrying the given message.
func ErrorEnvelope(message string) *Envelope {
	e := NewEnvelope()
	e.Status = StatusError
	e.Message = message
	return e
}

// IsSuccess reports whether the envelope carries a success status.
func (e *Envelope) IsSuccess() bool {
	return e.Status == StatusSuccess
}

// FromClientResponse builds an envelope from an HTTP response by parsing its
// JSON body. Message and data default to their zero shapes when absent; the
// response body is consumed but not closed.
func FromClientResponse(res *http.Response) (*Envelope, error) {
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "remote: failed to read response body")
	}

	var raw struct {
		Status  string                 `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrap(err, "remote: response body is not a valid envelope")
	}

	e := NewEnvelope()
	e.Status = raw.Status
	e.Message = raw.Message
	if raw.Data != nil {
		e.Data = raw.Data
	}
	return e, nil
}
