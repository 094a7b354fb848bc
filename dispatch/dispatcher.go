// Package dispatch sends a single JSON-RPC payload to a single endpoint and captures whatever came
// back, without interpreting it.
package dispatch

import (
	"context"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const DefaultTimeout = time.Second * 30

// RawResult is the transport-level outcome of one call.
//
// If TransportFailed is true, no HTTP response was obtained (or its body could not be read) and
// Err describes why; Status is undefined in that case.
type RawResult struct {
	Status          ldvalue.OptionalInt
	Body            string
	TransportFailed bool
	Err             error
}

type Config struct {
	// Timeout bounds the whole exchange. Zero means DefaultTimeout.
	Timeout time.Duration
	// ContentType is sent as the Content-Type header if it is not empty. By default no
	// Content-Type is sent at all.
	ContentType string
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type Dispatcher struct {
	client      *http.Client
	contentType string
}

func New(config Config) *Dispatcher {
	client := config.HTTPClient
	if client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Dispatcher{client: client, contentType: config.ContentType}
}

// Send POSTs payload to url exactly once. It never returns an error: a connection failure is
// reported as a RawResult with TransportFailed set, and there are no retries.
func (d *Dispatcher) Send(ctx context.Context, url, payload string) RawResult {
	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(payload))
	if err != nil {
		return RawResult{TransportFailed: true, Err: err}
	}
	if d.contentType != "" {
		req.Header.Set("Content-Type", d.contentType)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return RawResult{TransportFailed: true, Err: err}
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return RawResult{TransportFailed: true, Err: err}
	}
	return RawResult{Status: ldvalue.NewOptionalInt(resp.StatusCode), Body: string(data)}
}
