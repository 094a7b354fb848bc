// Package rpcdef defines the JSON-RPC 2.0 wire format as the harness sees it: the request
// envelope it sends and the loosely-typed response envelope it has to interpret.
package rpcdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const Version = "2.0"

// DefaultID is the request id used for every generated request.
const DefaultID = "1"

// Error codes that the classifier knows about.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000

	// CodeMethodNotSupported is not part of JSON-RPC 2.0. The gateway proxy returns it for
	// methods it refuses to forward.
	CodeMethodNotSupported = -32004
)

// ErrMalformedEnvelope is wrapped by ParseResponse errors for bodies that are not a JSON-RPC
// response object.
var ErrMalformedEnvelope = errors.New("malformed JSON-RPC response")

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  []ldvalue.Value `json:"params"`
	ID      ldvalue.Value   `json:"id"`
}

// NewRequest builds a request envelope with the standard version and id.
func NewRequest(method string, params []ldvalue.Value) Request {
	return Request{
		JSONRPC: Version,
		Method:  method,
		Params:  append([]ldvalue.Value{}, params...),
		ID:      ldvalue.String(DefaultID),
	}
}

// Payload returns the serialized request body.
func (r Request) Payload() string {
	data, _ := json.Marshal(r) // can't fail, every field is a plain value
	return string(data)
}

type ErrorObject struct {
	Code    ldvalue.Value `json:"code"`
	Message ldvalue.Value `json:"message"`
	Data    ldvalue.Value `json:"data"`
}

// NumericCode returns the error code if it is an integer.
func (e ErrorObject) NumericCode() (int, bool) {
	if !e.Code.IsInt() {
		return 0, false
	}
	return e.Code.IntValue(), true
}

func (e ErrorObject) String() string {
	return fmt.Sprintf("{code: %s, message: %s}", e.Code.JSONString(), e.Message.JSONString())
}

type Response struct {
	JSONRPC ldvalue.Value `json:"jsonrpc"`
	Result  ldvalue.Value `json:"result"`
	Error   *ErrorObject  `json:"error"`
	ID      ldvalue.Value `json:"id"`
}

// HasEmptyResult is true for a successful response whose result is the empty string.
func (r Response) HasEmptyResult() bool {
	return r.Error == nil && r.Result.IsString() && r.Result.StringValue() == ""
}

// ParseResponse decodes a response body. An empty body is treated as {"result": ""}, since some
// backends answer certain calls with nothing at all. An "error" member of null counts as absent.
func ParseResponse(body string) (Response, error) {
	if body == "" {
		return Response{Result: ldvalue.String("")}, nil
	}
	data := bytes.TrimSpace([]byte(body))
	if len(data) == 0 || data[0] != '{' {
		return Response{}, fmt.Errorf("%w: body is not a JSON object", ErrMalformedEnvelope)
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %s", ErrMalformedEnvelope, err)
	}
	return resp, nil
}
