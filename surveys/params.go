package surveys

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"github.com/joho/godotenv"

	"github.com/rpcmatrix/jsonrpc-contract-tests/dispatch"
	"github.com/rpcmatrix/jsonrpc-contract-tests/framework"
)

const defaultEnvFile = ".env"

// API key sources, in order of precedence after the command line.
var apiKeyEnvVars = []string{"INFURA_API_KEY", "ETH"}

const signerAccountEnvVar = "SIGNER_ACCOUNT"

type commandParams struct {
	networks       framework.NameList
	methods        framework.NameList
	filters        framework.RegexFilters
	apiKey         string
	verbose        bool
	quiet          bool
	debug          bool
	printCatalogue bool
	parallel       bool
	registryFile   string
	envFile        string
	contentType    string
	timeout        time.Duration
	signerAccount  string
}

// Read parses the command line and loads the environment. On failure it has already explained
// the problem on stderr; flag.ErrHelp is returned if help was requested.
func (c *commandParams) Read(mode Mode, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\nUsage of %s:\n", mode.Description(), args[0])
		fs.PrintDefaults()
	}

	for _, name := range []string{"n", "networks"} {
		fs.Var(&c.networks, name, "network subdomain(s) to test, comma separated or repeated (default: all test networks)")
	}
	if mode == MethodSurvey {
		for _, name := range []string{"m", "methods"} {
			fs.Var(&c.methods, name, "method name(s) to test, e.g. eth_getBalance (default: all methods that need no setup)")
		}
	}
	for _, name := range []string{"k", "api-key"} {
		fs.StringVar(&c.apiKey, name, "", "Infura API key to use (default: "+strings.Join(apiKeyEnvVars, " or ")+" env var)")
	}
	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&c.verbose, name, false, "output the response for every request")
	}
	for _, name := range []string{"q", "quiet"} {
		fs.BoolVar(&c.quiet, name, false, "don't be verbose")
	}
	for _, name := range []string{"p", "print"} {
		fs.BoolVar(&c.printCatalogue, name, false, "print the list of "+mode.EntryNoun()+"s and exit")
	}
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select "+mode.EntryNoun()+"s to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select "+mode.EntryNoun()+"s not to run")
	fs.BoolVar(&c.debug, "debug", false, "output responses for rows with unrecognized error codes")
	fs.BoolVar(&c.parallel, "parallel", false, "probe the networks of each row concurrently")
	fs.StringVar(&c.registryFile, "registry", "", "YAML file with extra networks and exception rules")
	fs.StringVar(&c.envFile, "env-file", defaultEnvFile, "file of environment variables to load if present")
	fs.StringVar(&c.contentType, "content-type", "", "Content-Type header to send (default: none)")
	fs.DurationVar(&c.timeout, "timeout", dispatch.DefaultTimeout, "timeout for each request")

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return errors.New("unexpected arguments")
	}

	if err := loadEnvFile(c.envFile, c.envFile != defaultEnvFile); err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	if c.apiKey == "" {
		c.apiKey = apiKeyFromEnv()
	}
	if c.apiKey == "" && !c.printCatalogue {
		fmt.Fprintln(stderr, "Error: Use -api-key to provide a valid Infura API key")
		fs.Usage()
		return errors.New("missing API key")
	}
	c.signerAccount = os.Getenv(signerAccountEnvVar)

	if c.quiet {
		c.verbose = false
		c.debug = false
	} else if mode == MethodSurvey && len(c.methods) > 0 {
		// Naming methods explicitly usually means you want to see what they returned.
		c.verbose = true
	}
	return nil
}

// loadEnvFile loads variables that are not already set. A missing file is only an error if it
// was asked for explicitly.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("cannot read env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot load env file %s: %w", path, err)
	}
	return nil
}

func apiKeyFromEnv() string {
	for _, name := range apiKeyEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand returns a shell command that repeats a request.
func curlCommand(url, payload string, contentType string) string {
	var b commandBuilder
	b.add("curl", "-s", "-X", "POST")
	if contentType != "" {
		b.add("-H", "Content-Type: "+contentType)
	}
	b.add("--data", payload, url)
	return b.String()
}
