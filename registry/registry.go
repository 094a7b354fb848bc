// Package registry holds the table of target networks and the table of per-network exception
// rules that the classifier consults.
//
// Exception rules are data: a backend that signals "not supported" with an unusual code is
// onboarded by adding a rule, not by editing the classifier.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
)

const ProviderDomain = "infura.io"

// APIKeyPlaceholder is replaced with the API key in an endpoint's URL template.
const APIKeyPlaceholder = "{apiKey}"

// AnyMethod is the Method of an exception rule that applies to every method.
const AnyMethod = ""

type NetworkEndpoint struct {
	Name        string
	URLTemplate string
}

// ProviderEndpoint returns the endpoint for a network subdomain of the default provider, of the
// form https://{network}.infura.io/v3/{apiKey}.
func ProviderEndpoint(name string) NetworkEndpoint {
	return NetworkEndpoint{
		Name:        name,
		URLTemplate: fmt.Sprintf("https://%s.%s/v3/%s", name, ProviderDomain, APIKeyPlaceholder),
	}
}

// URL returns the request URL for the given API key.
func (e NetworkEndpoint) URL(apiKey string) string {
	return strings.ReplaceAll(e.URLTemplate, APIKeyPlaceholder, apiKey)
}

// ExceptionRule overrides the default classification of an error code on one network, and
// optionally only for one method.
type ExceptionRule struct {
	Network string
	Method  string
	Code    int
	Outcome classify.Outcome
}

func (r ExceptionRule) String() string {
	method := r.Method
	if method == AnyMethod {
		method = "*"
	}
	return fmt.Sprintf("%s, %s, %d -> %s", r.Network, method, r.Code, r.Outcome)
}

type UnknownNetworkError struct {
	Name string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("network %q is not known", e.Name)
}

type ruleKey struct {
	network string
	method  string
	code    int
}

// Registry maps network names to endpoints and exception rules. It is built once at startup and
// only read afterward; the read methods are safe for concurrent use.
//
// At most one rule exists per (network, method, code) key: AddRule rejects a second one. Lookup
// tries the exact method before the wildcard, so a method-specific rule takes precedence over a
// rule for the same network and code that applies to every method.
type Registry struct {
	endpoints map[string]NetworkEndpoint
	names     []string
	rules     map[ruleKey]classify.Outcome
}

func New() *Registry {
	return &Registry{
		endpoints: make(map[string]NetworkEndpoint),
		rules:     make(map[ruleKey]classify.Outcome),
	}
}

// AddNetwork registers an endpoint. Names must be unique.
func (r *Registry) AddNetwork(e NetworkEndpoint) error {
	if err := validateEndpoint(e); err != nil {
		return err
	}
	if _, ok := r.endpoints[e.Name]; ok {
		return fmt.Errorf("network %q is already registered", e.Name)
	}
	r.endpoints[e.Name] = e
	r.names = append(r.names, e.Name)
	return nil
}

func validateEndpoint(e NetworkEndpoint) error {
	if e.Name == "" {
		return fmt.Errorf("network name must not be empty")
	}
	if !strings.Contains(e.URLTemplate, APIKeyPlaceholder) {
		return fmt.Errorf("URL template for %q does not contain %s", e.Name, APIKeyPlaceholder)
	}
	return nil
}

// AddRule registers an exception rule for an already registered network.
//
// Only outcomes that a JSON-RPC error body can legitimately stand for are allowed: OK,
// EmptyResult, NotSupported and UnknownError. A rule for every method cannot resolve to OK or
// EmptyResult, so a deliberately malformed request is never reported as a success by a wildcard.
func (r *Registry) AddRule(rule ExceptionRule) error {
	if _, ok := r.endpoints[rule.Network]; !ok {
		return &UnknownNetworkError{Name: rule.Network}
	}
	switch rule.Outcome.Kind {
	case classify.OK, classify.EmptyResult:
		if rule.Method == AnyMethod {
			return fmt.Errorf("rule %s: a rule for every method cannot resolve to %s", rule, rule.Outcome.Kind)
		}
	case classify.NotSupported, classify.UnknownError:
	default:
		return fmt.Errorf("rule %s: outcome %s cannot come from a JSON-RPC error", rule, rule.Outcome.Kind)
	}
	key := ruleKey{network: rule.Network, method: rule.Method, code: rule.Code}
	if existing, ok := r.rules[key]; ok {
		return fmt.Errorf("rule %s conflicts with existing rule resolving to %s", rule, existing)
	}
	r.rules[key] = rule.Outcome.WithStatus(0)
	return nil
}

// Endpoint returns the endpoint for a network name.
func (r *Registry) Endpoint(name string) (NetworkEndpoint, error) {
	e, ok := r.endpoints[name]
	if !ok {
		return NetworkEndpoint{}, &UnknownNetworkError{Name: name}
	}
	return e, nil
}

// Endpoints resolves a list of names in order. It fails on the first unknown name, before the
// caller has sent anything.
func (r *Registry) Endpoints(names []string) ([]NetworkEndpoint, error) {
	ret := make([]NetworkEndpoint, 0, len(names))
	for _, name := range names {
		e, err := r.Endpoint(name)
		if err != nil {
			return nil, err
		}
		ret = append(ret, e)
	}
	return ret, nil
}

// Validate checks that every name is registered.
func (r *Registry) Validate(names []string) error {
	_, err := r.Endpoints(names)
	return err
}

// Networks returns all registered names in registration order.
func (r *Registry) Networks() []string {
	return append([]string(nil), r.names...)
}

// Rules returns the exception rules registered for a network, sorted by method and then code.
func (r *Registry) Rules(network string) []ExceptionRule {
	var ret []ExceptionRule
	for k, o := range r.rules {
		if k.network == network {
			ret = append(ret, ExceptionRule{Network: k.network, Method: k.method, Code: k.code, Outcome: o})
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Method != ret[j].Method {
			return ret[i].Method < ret[j].Method
		}
		return ret[i].Code < ret[j].Code
	})
	return ret
}

// Lookup implements classify.RuleLookup.
func (r *Registry) Lookup(network, method string, code int) (classify.Outcome, bool) {
	if method != AnyMethod {
		if o, ok := r.rules[ruleKey{network: network, method: method, code: code}]; ok {
			return o, true
		}
	}
	o, ok := r.rules[ruleKey{network: network, method: AnyMethod, code: code}]
	return o, ok
}
