// Package matrix drives a survey: for every catalogue entry it probes every network, classifies
// the results, and prints one row per entry.
package matrix

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rpcmatrix/jsonrpc-contract-tests/catalogue"
	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/dispatch"
	"github.com/rpcmatrix/jsonrpc-contract-tests/registry"
)

// RedactedKey stands in for the API key in anything the reporter shows to a user.
const RedactedKey = "<API_KEY>"

type Sender interface {
	Send(ctx context.Context, url, payload string) dispatch.RawResult
}

type Classifier interface {
	Classify(raw dispatch.RawResult, network, method string) (classify.Outcome, error)
}

// ConnectError is the fatal error for a transport failure when the reporter is configured to
// halt on one.
type ConnectError struct {
	Network string
	URL     string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("can't connect to %s (%s): %s", e.Network, e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Reporter runs catalogue entries against a fixed, ordered list of networks.
//
// Rows are emitted in catalogue order. With Parallel set, the networks of a single row are
// probed concurrently; each probe writes only its own cell, and the Observer must then be safe
// for concurrent use.
type Reporter struct {
	Sender     Sender
	Classifier Classifier
	Networks   []registry.NetworkEndpoint
	APIKey     string
	Output     io.Writer
	Observer   Observer

	Parallel bool
	// HaltOnTransportError turns a TransportError outcome into a fatal *ConnectError.
	HaltOnTransportError bool
}

type entry struct {
	label   string
	method  string
	payload string
	kind    RowKind
}

func (r *Reporter) networkNames() []string {
	names := make([]string, 0, len(r.Networks))
	for _, n := range r.Networks {
		names = append(names, n.Name)
	}
	return names
}

func (r *Reporter) observer() Observer {
	if r.Observer == nil {
		return nullObserver{}
	}
	return r.Observer
}

// WriteHeader prints the header row.
func (r *Reporter) WriteHeader(kind RowKind) {
	fmt.Fprintln(r.Output, HeaderLine(kind, r.networkNames()))
}

// RunMethods prints the header and one row per method case. It stops at the first fatal error.
func (r *Reporter) RunMethods(ctx context.Context, methods catalogue.Methods) error {
	r.WriteHeader(MethodRow)
	for _, m := range methods {
		e := entry{label: m.Method, method: m.Method, payload: m.Payload(), kind: MethodRow}
		if err := r.runEntry(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// RunErrors prints the header and one row per error case. It stops at the first fatal error.
//
// Error cases are classified without a method, so only exception rules that apply to every
// method are used.
func (r *Reporter) RunErrors(ctx context.Context, cases catalogue.ErrorCases) error {
	r.WriteHeader(ErrorCaseRow)
	for _, c := range cases {
		e := entry{label: c.Label, payload: c.Payload, kind: ErrorCaseRow}
		if err := r.runEntry(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) runEntry(ctx context.Context, e entry) error {
	row, err := r.buildRow(ctx, e)
	if err != nil {
		return fmt.Errorf("%s: %w", e.label, err)
	}
	r.observer().RowFinished(row)
	fmt.Fprintln(r.Output, row.String())
	return nil
}

func (r *Reporter) buildRow(ctx context.Context, e entry) (Row, error) {
	row := newRow(e.label, e.kind, len(r.Networks))
	r.observer().RowStarted(e.label, e.payload)

	if !r.Parallel {
		for i, n := range r.Networks {
			o, err := r.probe(ctx, e, n)
			if err != nil {
				return Row{}, err
			}
			row.Cells[i] = o
		}
		return row, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, n := range r.Networks {
		i, n := i, n
		g.Go(func() error {
			o, err := r.probe(gctx, e, n)
			if err != nil {
				return err
			}
			row.Cells[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Row{}, err
	}
	return row, nil
}

func (r *Reporter) probe(ctx context.Context, e entry, n registry.NetworkEndpoint) (classify.Outcome, error) {
	raw := r.Sender.Send(ctx, n.URL(r.APIKey), e.payload)
	raw.Err = r.redact(raw.Err)
	outcome, err := r.Classifier.Classify(raw, n.Name, e.method)
	r.observer().ProbeDone(Probe{
		Label:   e.label,
		Network: n.Name,
		URL:     n.URL(RedactedKey),
		Payload: e.payload,
		Raw:     raw,
		Outcome: outcome,
	})
	if err != nil {
		return classify.Outcome{}, err
	}
	if outcome.Kind == classify.TransportError && r.HaltOnTransportError {
		return classify.Outcome{}, &ConnectError{Network: n.Name, URL: n.URL(RedactedKey), Err: raw.Err}
	}
	return outcome, nil
}

type redactedError struct {
	message string
	err     error
}

func (e redactedError) Error() string { return e.message }
func (e redactedError) Unwrap() error { return e.err }

// redact hides the API key in transport errors, which usually quote the request URL.
func (r *Reporter) redact(err error) error {
	if err == nil || r.APIKey == "" || !strings.Contains(err.Error(), r.APIKey) {
		return err
	}
	return redactedError{message: strings.ReplaceAll(err.Error(), r.APIKey, RedactedKey), err: err}
}
