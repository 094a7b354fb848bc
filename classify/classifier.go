// Package classify reduces a raw HTTP and JSON-RPC response to a canonical Outcome.
//
// The decision order is fixed:
//
// 1. A transport failure is TransportError.
//
// 2. HTTP 401 is AuthInvalid if the body mentions "invalid", AccessDenied if it mentions "does not
// have access", and fatal otherwise.
//
// 3. Any status other than 200 or 400 is fatal. 400 is accepted because several backends send it
// together with an ordinary JSON-RPC error body.
//
// 4. An empty body stands for {"result": ""}.
//
// 5. Without an error member the result is OK, or EmptyResult if the result is "".
//
// 6. With an error member, the exception rules for the network are consulted (exact method, then
// any method) and the first match decides. Otherwise -32601 and -32004 are NotSupported and any
// other code is UnknownError.
package classify

import (
	"errors"
	"strings"

	"github.com/rpcmatrix/jsonrpc-contract-tests/dispatch"
	"github.com/rpcmatrix/jsonrpc-contract-tests/rpcdef"
)

// RuleLookup finds the exception rule for an error code, if any. method may be empty, in which
// case only rules that apply to every method are considered.
type RuleLookup interface {
	Lookup(network, method string, code int) (Outcome, bool)
}

type Classifier struct {
	rules RuleLookup
}

// New creates a Classifier. A nil RuleLookup means no exception rules at all.
func New(rules RuleLookup) *Classifier {
	return &Classifier{rules: rules}
}

// Classify turns one raw result into an Outcome. It is a pure function of its inputs.
//
// A non-nil error is always a *FatalError, meaning the run cannot continue. Everything else,
// including JSON-RPC errors, comes back as an Outcome.
func (c *Classifier) Classify(raw dispatch.RawResult, network, method string) (Outcome, error) {
	if raw.TransportFailed {
		return Outcome{Kind: TransportError}, nil
	}
	status, ok := raw.Status.Get()
	if !ok {
		return Outcome{}, &FatalError{Network: network, Reason: ReasonNoStatus, Body: raw.Body}
	}

	if status == 401 {
		switch {
		case strings.Contains(raw.Body, "invalid"):
			return Outcome{Kind: AuthInvalid, Status: status}, nil
		case strings.Contains(raw.Body, "does not have access"):
			return Outcome{Kind: AccessDenied, Status: status}, nil
		default:
			return Outcome{}, &FatalError{Network: network, Reason: ReasonUnknown401, Status: status, Body: raw.Body}
		}
	}

	if status != 200 && status != 400 {
		return Outcome{}, &FatalError{Network: network, Reason: ReasonUnexpectedStatus, Status: status, Body: raw.Body}
	}

	resp, err := rpcdef.ParseResponse(raw.Body)
	if err != nil {
		return Outcome{}, &FatalError{Network: network, Reason: ReasonMalformedBody, Status: status, Body: raw.Body, Err: err}
	}

	if resp.Error == nil {
		if resp.HasEmptyResult() {
			return Outcome{Kind: EmptyResult, Status: status}, nil
		}
		return Outcome{Kind: OK, Status: status}, nil
	}

	code, ok := resp.Error.NumericCode()
	if !ok {
		return Outcome{}, &FatalError{Network: network, Reason: ReasonMalformedBody, Status: status, Body: raw.Body,
			Err: errors.New("error member has no numeric code")}
	}
	return c.classifyCode(network, method, code).WithStatus(status), nil
}

func (c *Classifier) classifyCode(network, method string, code int) Outcome {
	if c.rules != nil {
		if o, ok := c.rules.Lookup(network, method, code); ok {
			return o
		}
	}
	switch code {
	case rpcdef.CodeMethodNotFound, rpcdef.CodeMethodNotSupported:
		return Unsupported(code)
	default:
		return Unknown(code)
	}
}
