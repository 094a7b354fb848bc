package classify

import (
	"errors"
	"fmt"
)

type Reason string

const (
	ReasonNoStatus         Reason = "no HTTP status"
	ReasonUnknown401       Reason = "unknown 401 response"
	ReasonUnexpectedStatus Reason = "unexpected status code"
	ReasonMalformedBody    Reason = "malformed JSON-RPC response"
)

const maxBodyInMessage = 200

// FatalError is returned for responses the harness cannot interpret at all. Unlike an Outcome it
// ends the run.
type FatalError struct {
	Network string
	Reason  Reason
	Status  int
	Body    string
	Err     error
}

func (e *FatalError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Network, e.Reason)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		body := e.Body
		if len(body) > maxBodyInMessage {
			body = body[:maxBodyInMessage] + "..."
		}
		msg += fmt.Sprintf(", body: %q", body)
	}
	return msg
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is, or wraps, a *FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
