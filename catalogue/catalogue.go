// Package catalogue contains the fixed tables of requests sent by the two surveys: well-formed
// method calls for the method survey, and literal, often deliberately broken, request bodies for
// the error survey.
package catalogue

import (
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/rpcmatrix/jsonrpc-contract-tests/framework"
	"github.com/rpcmatrix/jsonrpc-contract-tests/rpcdef"
)

// MethodCase is one JSON-RPC method and the parameters it is called with.
//
// Problematic cases need state the harness cannot guarantee, such as a funded account or the
// right nonce. They are left out of a default run but can be requested by name.
type MethodCase struct {
	Method      string
	Params      []ldvalue.Value
	Problematic bool
}

func (m MethodCase) Request() rpcdef.Request {
	return rpcdef.NewRequest(m.Method, m.Params)
}

func (m MethodCase) Payload() string {
	return m.Request().Payload()
}

// ParamsJSON returns the parameters as a JSON array.
func (m MethodCase) ParamsJSON() string {
	return ldvalue.ArrayOf(m.Params...).JSONString()
}

// ErrorCase is a literal request body meant to provoke one particular protocol-level error. The
// payload is sent exactly as written and need not be valid JSON.
type ErrorCase struct {
	Label   string
	Payload string
}

type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("method %q is not known", e.Method)
}

type Methods []MethodCase

// Defaults returns every case that is not problematic, in catalogue order.
func (ms Methods) Defaults() Methods {
	var ret Methods
	for _, m := range ms {
		if !m.Problematic {
			ret = append(ret, m)
		}
	}
	return ret
}

// Select returns the named cases in the order given, problematic ones included. An unknown name
// is an error.
func (ms Methods) Select(names []string) (Methods, error) {
	ret := make(Methods, 0, len(names))
	for _, name := range names {
		m, ok := ms.Find(name)
		if !ok {
			return nil, &UnknownMethodError{Method: name}
		}
		ret = append(ret, m)
	}
	return ret, nil
}

func (ms Methods) Find(name string) (MethodCase, bool) {
	for _, m := range ms {
		if m.Method == name {
			return m, true
		}
	}
	return MethodCase{}, false
}

// Filter keeps the cases whose method name passes the filter. A nil filter keeps everything.
func (ms Methods) Filter(filter framework.Filter) Methods {
	if filter == nil {
		return ms
	}
	var ret Methods
	for _, m := range ms {
		if filter(m.Method) {
			ret = append(ret, m)
		}
	}
	return ret
}

type ErrorCases []ErrorCase

// Filter keeps the cases whose label passes the filter. A nil filter keeps everything.
func (es ErrorCases) Filter(filter framework.Filter) ErrorCases {
	if filter == nil {
		return es
	}
	var ret ErrorCases
	for _, e := range es {
		if filter(e.Label) {
			ret = append(ret, e)
		}
	}
	return ret
}

// params parses a JSON array literal into a parameter list. It panics on invalid input, since it
// is only used for the static tables.
func params(jsonArray string) []ldvalue.Value {
	v := ldvalue.Parse([]byte(jsonArray))
	if v.Type() != ldvalue.ArrayType {
		panic("catalogue params must be a JSON array: " + strings.TrimSpace(jsonArray))
	}
	ret := make([]ldvalue.Value, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		ret = append(ret, v.GetByIndex(i))
	}
	return ret
}
