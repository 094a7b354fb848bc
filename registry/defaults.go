package registry

import (
	"github.com/rpcmatrix/jsonrpc-contract-tests/classify"
	"github.com/rpcmatrix/jsonrpc-contract-tests/rpcdef"
)

var knownNetworks = []string{
	"mainnet",
	"sepolia",
	"holesky",
	"linea-sepolia",
	"polygon-amoy",
	"base-sepolia",
	"blast-sepolia",
	"optimism-sepolia",
	"arbitrum-sepolia",
	"palm-testnet",
	"avalanche-fuji",
	"starknet-sepolia",
	"celo-alfajores",
	"bnbsmartchain-testnet",
	"base-goerli",
}

var defaultRules = []ExceptionRule{
	// Palm reports an unknown block as an invalid request; other networks answer null.
	{Network: "palm-testnet", Method: "eth_getBlockByHash", Code: rpcdef.CodeInvalidRequest, Outcome: classify.Outcome{Kind: classify.OK}},
	{Network: "palm-testnet", Method: "eth_getBlockByNumber", Code: rpcdef.CodeInvalidRequest, Outcome: classify.Outcome{Kind: classify.OK}},
	// Celo uses the generic server error for "not implemented".
	{Network: "celo-alfajores", Code: rpcdef.CodeServerError, Outcome: classify.Unsupported(rpcdef.CodeServerError)},
	// Base uses invalid params for "not found".
	{Network: "base-goerli", Code: rpcdef.CodeInvalidParams, Outcome: classify.Unsupported(rpcdef.CodeInvalidParams)},
}

var defaultMethodSurveyNetworks = []string{
	"sepolia",
	"holesky",
	"linea-sepolia",
	"polygon-amoy",
	"base-sepolia",
	"blast-sepolia",
	// "bnbsmartchain-testnet" is left out: the usual project keys do not have access to it.
	"optimism-sepolia",
	"arbitrum-sepolia",
	"palm-testnet",
	"avalanche-fuji",
	"starknet-sepolia",
	"celo-alfajores",
}

var defaultErrorSurveyNetworks = []string{
	"mainnet",
	"sepolia",
	"holesky",
	"polygon-amoy",
	"arbitrum-sepolia",
	"palm-testnet",
	"avalanche-fuji",
	// "starknet-sepolia" is left out: it has no web3_clientVersion.
	"celo-alfajores",
}

// Default returns a new registry containing every known provider network and the built-in
// exception rules.
func Default() *Registry {
	r := New()
	for _, name := range knownNetworks {
		if err := r.AddNetwork(ProviderEndpoint(name)); err != nil {
			panic(err) // the tables above are inconsistent
		}
	}
	for _, rule := range defaultRules {
		if err := r.AddRule(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// DefaultMethodSurveyNetworks returns the networks the method survey runs against when none are
// specified, in column order.
func DefaultMethodSurveyNetworks() []string {
	return append([]string(nil), defaultMethodSurveyNetworks...)
}

// DefaultErrorSurveyNetworks returns the networks the error survey runs against when none are
// specified, in column order.
func DefaultErrorSurveyNetworks() []string {
	return append([]string(nil), defaultErrorSurveyNetworks...)
}
