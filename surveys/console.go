package surveys

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/framework"
	"github.com/rpcmatrix/jsonrpc-contract-tests/matrix"
)

const maxBodyShown = 200

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	networkColor = color.New(color.FgCyan)
)

// consoleObserver writes diagnostic output for a run to stderr. Output for each row is captured
// while the row runs and dumped when it finishes, so that rows probed in parallel do not
// interleave.
type consoleObserver struct {
	out                  io.Writer
	contentType          string
	DebugOutputOnAnomaly bool
	DebugOutputAlways    bool
	rowLog               *framework.CapturingLogger
}

func newConsoleObserver(out io.Writer, contentType string) *consoleObserver {
	return &consoleObserver{out: out, contentType: contentType, rowLog: &framework.CapturingLogger{}}
}

func (c *consoleObserver) RowStarted(label, payload string) {
	c.rowLog = &framework.CapturingLogger{}
	c.rowLog.Printf("request=%s", payload)
}

func (c *consoleObserver) ProbeDone(p matrix.Probe) {
	logger := framework.LoggerWithPrefix(c.rowLog, networkColor.Sprintf("%s: ", p.Network))
	logger.Printf("%s", curlCommand(p.URL, p.Payload, c.contentType))
	if p.Raw.TransportFailed {
		logger.Printf("transport failure: %s", p.Raw.Err)
		return
	}
	body := p.Raw.Body
	if len(body) > maxBodyShown {
		body = body[:maxBodyShown]
	}
	logger.Printf("HTTP %d: %s", p.Raw.Status.IntValue(), body)
}

func (c *consoleObserver) RowFinished(row matrix.Row) {
	anomaly := false
	for _, o := range row.Cells {
		if o.Kind == classify.UnknownError || o.Kind == classify.TransportError {
			anomaly = true
		}
	}
	if c.DebugOutputAlways || (anomaly && c.DebugOutputOnAnomaly) {
		c.rowLog.Output().Dump(c.out, "    DEBUG ")
	}
}

// Printf implements framework.Logger, for general diagnostics.
func (c *consoleObserver) Printf(message string, args ...interface{}) {
	warningColor.Fprintf(c.out, message+"\n", args...)
}

// Fatal reports an error that ends the run. Captured output of the unfinished row is dumped first
// if any debug output was requested, since that row usually shows what went wrong.
func (c *consoleObserver) Fatal(err error) {
	if c.DebugOutputAlways || c.DebugOutputOnAnomaly {
		c.rowLog.Output().Dump(c.out, "    DEBUG ")
		c.rowLog = &framework.CapturingLogger{}
	}
	for i, line := range strings.Split(err.Error(), "\n") {
		if i == 0 {
			errorColor.Fprint(c.out, "Error: ")
		} else {
			fmt.Fprint(c.out, "  ")
		}
		fmt.Fprintln(c.out, line)
	}
}
