package matrix

import (
	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/dispatch"
)

// Probe describes one finished call. URL has the API key redacted.
type Probe struct {
	Label   string
	Network string
	URL     string
	Payload string
	Raw     dispatch.RawResult
	Outcome classify.Outcome
}

// Observer receives progress notifications from a Reporter. ProbeDone is called even when
// classification failed, so that the response can still be shown.
type Observer interface {
	RowStarted(label string, payload string)
	ProbeDone(p Probe)
	RowFinished(row Row)
}

type nullObserver struct{}

func (n nullObserver) RowStarted(string, string) {}
func (n nullObserver) ProbeDone(Probe)           {}
func (n nullObserver) RowFinished(Row)           {}
