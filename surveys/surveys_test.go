package surveys

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "test-key-123"

type runResult struct {
	exitCode int
	stdout   string
	stderr   string
}

func runSurvey(mode Mode, args ...string) runResult {
	var stdout, stderr bytes.Buffer
	code := Main(mode, append([]string{"survey"}, args...), &stdout, &stderr)
	return runResult{exitCode: code, stdout: stdout.String(), stderr: stderr.String()}
}

func clearKeyEnv(t *testing.T) {
	for _, name := range append(apiKeyEnvVars, signerAccountEnvVar) {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// withLocalNetworks starts a server and writes a registry file that maps each network name to
// a path on it.
func withLocalNetworks(t *testing.T, handlers map[string]http.Handler, action func(registryFile string)) {
	mux := http.NewServeMux()
	for name, h := range handlers {
		mux.Handle("/"+name+"/", h)
	}
	httphelpers.WithServer(mux, func(server *httptest.Server) {
		var b strings.Builder
		b.WriteString("networks:\n")
		for name := range handlers {
			b.WriteString("  - name: " + name + "\n    url: " + server.URL + "/" + name + "/{apiKey}\n")
		}
		if _, ok := handlers["local-b"]; ok {
			b.WriteString("exceptions:\n  - network: local-b\n    code: -32099\n    outcome: NotSupported\n")
		}
		path := filepath.Join(t.TempDir(), "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
		action(path)
	})
}

func respond(status int, body string) http.Handler {
	return httphelpers.HandlerWithResponse(status, nil, []byte(body))
}

func TestMissingAPIKey(t *testing.T) {
	clearKeyEnv(t)
	r := runSurvey(MethodSurvey)
	assert.Equal(t, 1, r.exitCode)
	assert.Contains(t, r.stderr, "Use -api-key to provide a valid Infura API key")
	assert.Contains(t, r.stderr, "Usage of survey")
	assert.Empty(t, r.stdout)
}

func TestHelpExitsZero(t *testing.T) {
	r := runSurvey(ErrorSurvey, "-h")
	assert.Equal(t, 0, r.exitCode)
	assert.Contains(t, r.stderr, ErrorSurvey.Description())
}

func TestBadFlag(t *testing.T) {
	r := runSurvey(ErrorSurvey, "-k", testKey, "-m", "eth_chainId")
	assert.Equal(t, 1, r.exitCode, "the error survey has no -m flag")
}

func TestPrintErrorCatalogue(t *testing.T) {
	clearKeyEnv(t)
	r := runSurvey(ErrorSurvey, "-p")
	assert.Equal(t, 0, r.exitCode)
	assert.Contains(t, r.stdout, "extra comma         : {\"jsonrpc\": \"2.0\", \"method\": \"eth_getBlockByNumber\",, ")
	assert.Equal(t, 10, strings.Count(r.stdout, "\n"))
}

func TestPrintMethodCatalogue(t *testing.T) {
	r := runSurvey(MethodSurvey, "-print", "-k", testKey, "-run", "^eth_(call|chainId)$")
	assert.Equal(t, 0, r.exitCode)
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "eth_call "))
	assert.Contains(t, lines[0], "needs setup")
	assert.True(t, strings.HasPrefix(lines[1], "eth_chainId "))
	assert.Contains(t, lines[1], "[]")
}

func TestUnknownNetworkFailsBeforeAnyRequest(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(respond(200, `{"result":"0x1"}`))
	withLocalNetworks(t, map[string]http.Handler{"local-a": handler}, func(registryFile string) {
		r := runSurvey(MethodSurvey, "-k", testKey, "-registry", registryFile, "-n", "local-a,local-typo")
		assert.Equal(t, 1, r.exitCode)
		assert.Contains(t, r.stderr, `network "local-typo" is not known`)
		assert.Empty(t, r.stdout)
		assert.Len(t, requestsCh, 0)
	})
}

func TestUnknownMethod(t *testing.T) {
	r := runSurvey(MethodSurvey, "-k", testKey, "-m", "eth_notAThing")
	assert.Equal(t, 1, r.exitCode)
	assert.Contains(t, r.stderr, `method "eth_notAThing" is not known`)
}

func TestMethodSurveyEndToEnd(t *testing.T) {
	handlerA, requestsCh := httphelpers.RecordingHandler(respond(200, `{"jsonrpc":"2.0","id":"1","result":"0x1"}`))
	handlers := map[string]http.Handler{
		"local-a": handlerA,
		"local-b": respond(400, `{"jsonrpc":"2.0","id":"1","error":{"code":-32099,"message":"nope"}}`),
		"local-c": respond(200, `{"jsonrpc":"2.0","id":"1","error":{"code":-32042,"message":"odd"}}`),
	}
	withLocalNetworks(t, handlers, func(registryFile string) {
		r := runSurvey(MethodSurvey, "-k", testKey, "-registry", registryFile,
			"-n", "local-a", "-n", "local-b,local-c", "-m", "eth_chainId", "-m", "net_version", "-q")
		assert.Equal(t, 0, r.exitCode, r.stderr)
		assert.Equal(t,
			"method, local-a, local-b, local-c\n"+
				"eth_chainId, OK (200), N(-32099), -32042 (200)\n"+
				"net_version, OK (200), N(-32099), -32042 (200)\n",
			r.stdout)
		assert.Empty(t, r.stderr)

		require.Len(t, requestsCh, 2)
		req := <-requestsCh
		assert.Equal(t, "/local-a/"+testKey, req.Request.URL.Path)
		assert.JSONEq(t, `{"jsonrpc":"2.0","method":"eth_chainId","params":[],"id":"1"}`, string(req.Body))
	})
}

func TestNamedMethodsAreVerboseUnlessQuiet(t *testing.T) {
	withLocalNetworks(t, map[string]http.Handler{"local-a": respond(200, `{"result":"0xabc"}`)}, func(registryFile string) {
		r := runSurvey(MethodSurvey, "-k", testKey, "-registry", registryFile, "-n", "local-a", "-m", "eth_chainId")
		assert.Equal(t, 0, r.exitCode)
		assert.Contains(t, r.stderr, "DEBUG")
		assert.Contains(t, r.stderr, "curl -s -X POST --data")
		assert.Contains(t, r.stderr, `HTTP 200: {"result":"0xabc"}`)
		assert.Contains(t, r.stderr, "<API_KEY>")
		assert.NotContains(t, r.stderr, testKey)
	})
}

func TestUnexpectedStatusIsFatal(t *testing.T) {
	withLocalNetworks(t, map[string]http.Handler{"local-a": respond(502, "bad gateway")}, func(registryFile string) {
		r := runSurvey(ErrorSurvey, "-k", testKey, "-registry", registryFile, "-n", "local-a")
		assert.Equal(t, 1, r.exitCode)
		assert.Equal(t, "test, local-a\n", r.stdout)
		assert.Contains(t, r.stderr, "Error: ")
		assert.Contains(t, r.stderr, "local-a: unexpected status code (status 502)")
	})
}

func TestUnknownErrorCodesDoNotFailTheRun(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"error":{"code":-32700,"message":"parse error"}}`
	withLocalNetworks(t, map[string]http.Handler{"local-a": respond(400, body)}, func(registryFile string) {
		r := runSurvey(ErrorSurvey, "-k", testKey, "-registry", registryFile, "-n", "local-a", "-debug")
		assert.Equal(t, 0, r.exitCode)
		assert.Contains(t, r.stdout, "extra comma         , -32700 (400)\n")
		assert.NotContains(t, r.stdout, "OK")
		assert.Contains(t, r.stderr, "DEBUG", "-debug shows rows with unrecognized codes")
	})
}

func closedServerRegistryFile(t *testing.T) string {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	url := server.URL
	server.Close()
	path := filepath.Join(t.TempDir(), "registry.yaml")
	doc := "networks:\n  - name: gone\n    url: " + url + "/{apiKey}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestTransportFailureHaltsMethodSurvey(t *testing.T) {
	r := runSurvey(MethodSurvey, "-k", testKey, "-registry", closedServerRegistryFile(t), "-n", "gone")
	assert.Equal(t, 1, r.exitCode)
	assert.Contains(t, r.stderr, "can't connect to gone")
	assert.NotContains(t, r.stderr, testKey)
}

func TestTransportFailureIsRecordedByErrorSurvey(t *testing.T) {
	r := runSurvey(ErrorSurvey, "-k", testKey, "-registry", closedServerRegistryFile(t), "-n", "gone", "-run", "missing")
	assert.Equal(t, 0, r.exitCode, r.stderr)
	assert.Equal(t,
		"test, gone\n"+
			"missing id          , transport error\n"+
			"missing param       , transport error\n"+
			"missing 0x          , transport error\n",
		r.stdout)
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("ETH", "from-eth-var")
	handler, requestsCh := httphelpers.RecordingHandler(respond(200, `{"result":"0x1"}`))
	withLocalNetworks(t, map[string]http.Handler{"local-a": handler}, func(registryFile string) {
		r := runSurvey(MethodSurvey, "-registry", registryFile, "-n", "local-a", "-m", "eth_chainId", "-q")
		assert.Equal(t, 0, r.exitCode, r.stderr)
		req := <-requestsCh
		assert.Equal(t, "/local-a/from-eth-var", req.Request.URL.Path)
	})
}

func TestAPIKeyFromEnvFile(t *testing.T) {
	clearKeyEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("INFURA_API_KEY=from-env-file\n"), 0o600))

	handler, requestsCh := httphelpers.RecordingHandler(respond(200, `{"result":"0x1"}`))
	withLocalNetworks(t, map[string]http.Handler{"local-a": handler}, func(registryFile string) {
		r := runSurvey(MethodSurvey, "-env-file", envFile, "-registry", registryFile, "-n", "local-a", "-m", "eth_chainId", "-q")
		assert.Equal(t, 0, r.exitCode, r.stderr)
		req := <-requestsCh
		assert.Equal(t, "/local-a/from-env-file", req.Request.URL.Path)
	})
}

func TestMissingExplicitEnvFile(t *testing.T) {
	r := runSurvey(MethodSurvey, "-k", testKey, "-env-file", filepath.Join(t.TempDir(), "none.env"))
	assert.Equal(t, 1, r.exitCode)
	assert.Contains(t, r.stderr, "cannot read env file")
}

func TestCurlCommand(t *testing.T) {
	assert.Equal(t,
		`curl -s -X POST --data '{"id": 1,}' 'https://x.example/v3/<API_KEY>'`,
		curlCommand("https://x.example/v3/<API_KEY>", `{"id": 1,}`, ""))
	assert.Equal(t,
		`curl -s -X POST -H 'Content-Type: application/json' --data '{}' https://x.example/k`,
		curlCommand("https://x.example/k", "{}", "application/json"))
}
