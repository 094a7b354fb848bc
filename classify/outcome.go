package classify

import (
	"fmt"
	"strings"
)

// Kind is the tag of an Outcome. The set is closed.
type Kind int

const (
	OK Kind = iota
	EmptyResult
	NotSupported
	AuthInvalid
	AccessDenied
	UnknownError
	TransportError
)

var kindNames = map[Kind]string{
	OK:             "OK",
	EmptyResult:    "EmptyResult",
	NotSupported:   "NotSupported",
	AuthInvalid:    "AuthInvalid",
	AccessDenied:   "AccessDenied",
	UnknownError:   "UnknownError",
	TransportError: "TransportError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names returned by Kind.String, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Outcome is the canonical result of one probe against one network.
//
// Code is the JSON-RPC error code for NotSupported and UnknownError, and zero otherwise. Status is
// the HTTP status the outcome was observed with; it is zero for TransportError, and also for the
// outcomes declared by exception rules until the classifier stamps them.
type Outcome struct {
	Kind   Kind
	Code   int
	Status int
}

// Unsupported returns the NotSupported outcome for an error code.
func Unsupported(code int) Outcome {
	return Outcome{Kind: NotSupported, Code: code}
}

// Unknown returns the UnknownError outcome for an error code.
func Unknown(code int) Outcome {
	return Outcome{Kind: UnknownError, Code: code}
}

// WithStatus returns a copy of the outcome carrying the given HTTP status.
func (o Outcome) WithStatus(status int) Outcome {
	o.Status = status
	return o
}

func (o Outcome) String() string {
	switch o.Kind {
	case NotSupported, UnknownError:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Code)
	default:
		return o.Kind.String()
	}
}
