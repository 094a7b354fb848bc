package surveys

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rpcmatrix/jsonrpc-contract-tests/catalogue"
	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/dispatch"
	"github.com/rpcmatrix/jsonrpc-contract-tests/framework"
	"github.com/rpcmatrix/jsonrpc-contract-tests/matrix"
	"github.com/rpcmatrix/jsonrpc-contract-tests/registry"
)

type Mode int

const (
	// MethodSurvey checks which methods each network supports.
	MethodSurvey Mode = iota
	// ErrorSurvey sends malformed requests to see which error each network returns.
	ErrorSurvey
)

func (m Mode) Description() string {
	if m == ErrorSurvey {
		return "A test suite to elicit each error for eth_method(s) for every network"
	}
	return "Test support exists for every eth_method for every network"
}

// EntryNoun is what a catalogue entry is called in help text.
func (m Mode) EntryNoun() string {
	if m == ErrorSurvey {
		return "test"
	}
	return "method"
}

func (m Mode) defaultNetworks() []string {
	if m == ErrorSurvey {
		return registry.DefaultErrorSurveyNetworks()
	}
	return registry.DefaultMethodSurveyNetworks()
}

// Main runs one survey and returns the process exit code: 0 if the matrix was completed (whatever
// its contents), 1 if the run could not start or was aborted.
func Main(mode Mode, args []string, stdout, stderr io.Writer) int {
	var params commandParams
	if err := params.Read(mode, args, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	console := newConsoleObserver(stderr, params.contentType)
	console.DebugOutputAlways = params.verbose
	console.DebugOutputOnAnomaly = params.debug

	if err := run(context.Background(), mode, params, stdout, console); err != nil {
		console.Fatal(err)
		return 1
	}
	return 0
}

func run(ctx context.Context, mode Mode, params commandParams, stdout io.Writer, console *consoleObserver) error {
	methods, errorCases, err := selectEntries(mode, params)
	if err != nil {
		return err
	}
	if params.printCatalogue {
		printCatalogue(stdout, methods, errorCases)
		return nil
	}

	reg := registry.Default()
	if params.registryFile != "" {
		if err := reg.LoadFile(params.registryFile); err != nil {
			return err
		}
	}
	names := []string(params.networks)
	if len(names) == 0 {
		names = mode.defaultNetworks()
	}
	endpoints, err := reg.Endpoints(names)
	if err != nil {
		return err
	}

	if !params.quiet {
		framework.PrintFilterDescription(console, params.filters)
	}

	reporter := &matrix.Reporter{
		Sender:     dispatch.New(dispatch.Config{Timeout: params.timeout, ContentType: params.contentType}),
		Classifier: classify.New(reg),
		Networks:   endpoints,
		APIKey:     params.apiKey,
		Output:     stdout,
		Observer:   console,
		Parallel:   params.parallel,
		// A dropped connection is a plausible answer to a malformed request, but not to a
		// well-formed one.
		HaltOnTransportError: mode == MethodSurvey,
	}
	if mode == ErrorSurvey {
		return reporter.RunErrors(ctx, errorCases)
	}
	return reporter.RunMethods(ctx, methods)
}

func selectEntries(mode Mode, params commandParams) (catalogue.Methods, catalogue.ErrorCases, error) {
	var filter framework.Filter
	if params.filters.IsDefined() {
		filter = params.filters.AsFilter
	}
	if mode == ErrorSurvey {
		return nil, catalogue.DefaultErrorCases().Filter(filter), nil
	}
	all := catalogue.DefaultMethods(params.signerAccount)
	if len(params.methods) == 0 {
		if params.printCatalogue {
			return all.Filter(filter), nil, nil
		}
		return all.Defaults().Filter(filter), nil, nil
	}
	selected, err := all.Select(params.methods)
	if err != nil {
		return nil, nil, err
	}
	return selected.Filter(filter), nil, nil
}

func printCatalogue(out io.Writer, methods catalogue.Methods, errorCases catalogue.ErrorCases) {
	for _, c := range errorCases {
		fmt.Fprintf(out, "%-20s: %s\n", c.Label, c.Payload)
	}
	for _, m := range methods {
		note := ""
		if m.Problematic {
			note = "  (needs setup, only run when named with -m)"
		}
		fmt.Fprintf(out, "%-40s %s%s\n", m.Method, m.ParamsJSON(), note)
	}
}
