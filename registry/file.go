package registry

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
)

// File is the YAML document accepted by LoadFile:
//
//	networks:
//	  - name: scroll-sepolia
//	  - name: local
//	    url: http://localhost:8545/{apiKey}
//	exceptions:
//	  - network: scroll-sepolia
//	    method: eth_getProof
//	    code: -32000
//	    outcome: NotSupported
//
// A network without a url gets the default provider URL. A network that is already registered
// keeps its exception rules but takes the new url, if one is given. An exception without a
// method applies to every method.
type File struct {
	Networks   []FileNetwork   `yaml:"networks"`
	Exceptions []FileException `yaml:"exceptions"`
}

type FileNetwork struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type FileException struct {
	Network string `yaml:"network"`
	Method  string `yaml:"method"`
	Code    *int   `yaml:"code"`
	Outcome string `yaml:"outcome"`
}

// LoadFile reads a YAML registry file and applies it to r.
func (r *Registry) LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read registry file")
	}
	if err := r.Apply(data); err != nil {
		return errors.Wrapf(err, "registry file %s", path)
	}
	return nil
}

// Apply parses a YAML registry document and adds its networks and rules to r.
func (r *Registry) Apply(data []byte) error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.Wrap(err, "invalid YAML")
	}
	for i, n := range f.Networks {
		if n.Name == "" {
			return errors.Errorf("networks[%d]: missing name", i)
		}
		e := ProviderEndpoint(n.Name)
		if n.URL != "" {
			e.URLTemplate = n.URL
		}
		if _, exists := r.endpoints[n.Name]; exists {
			if n.URL == "" {
				continue
			}
			if err := r.replaceEndpoint(e); err != nil {
				return errors.Wrapf(err, "networks[%d]", i)
			}
			continue
		}
		if err := r.AddNetwork(e); err != nil {
			return errors.Wrapf(err, "networks[%d]", i)
		}
	}
	for i, x := range f.Exceptions {
		if x.Code == nil {
			return errors.Errorf("exceptions[%d]: missing code", i)
		}
		kind, err := classify.ParseKind(x.Outcome)
		if err != nil {
			return errors.Wrapf(err, "exceptions[%d]", i)
		}
		outcome := classify.Outcome{Kind: kind}
		if kind == classify.NotSupported || kind == classify.UnknownError {
			outcome.Code = *x.Code
		}
		rule := ExceptionRule{Network: x.Network, Method: x.Method, Code: *x.Code, Outcome: outcome}
		if err := r.AddRule(rule); err != nil {
			return errors.Wrapf(err, "exceptions[%d]", i)
		}
	}
	return nil
}

func (r *Registry) replaceEndpoint(e NetworkEndpoint) error {
	if err := validateEndpoint(e); err != nil {
		return err
	}
	r.endpoints[e.Name] = e
	return nil
}
