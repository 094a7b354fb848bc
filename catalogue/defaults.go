package catalogue

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	blockHash = "0xb3b20624f8f0f86eb50dd04688409e5cea4bd02d700bf6e79e9384d47d6a5a35"
	txHash    = "0xbb3a336e3f823ec18197f1e13ee875700f08f03e2cab75f0d0b118dabb44cba0"
	account   = "0xc94770007dda54cF92009BFF0dE90c06F603a09f"
	callData  = "0xd46e8dd67c5d32be8d46e8dd67c5d32be8058bb8eb970870f072445675058bb8eb970870f072445675"
)

// DefaultMethods returns the method survey catalogue. signerAccount is used as the sender of
// eth_call; it is normally taken from the SIGNER_ACCOUNT environment variable.
func DefaultMethods(signerAccount string) Methods {
	callObject := ldvalue.ObjectBuild().
		Set("from", ldvalue.String(signerAccount)).
		Set("to", ldvalue.String("0xd46e8dd67c5d32be8058bb8eb970870f07244567")).
		Set("gas", ldvalue.String("0x76c0")).
		Set("gasPrice", ldvalue.String("0x9184e72a000")).
		Set("value", ldvalue.String("0x9184e72a")).
		Set("data", ldvalue.String(callData)).
		Build()

	return Methods{
		{Method: "eth_getBlockReceipts", Params: params(`["latest"]`)},
		{Method: "eth_accounts", Params: params(`[]`)},
		{Method: "eth_blockNumber", Params: params(`[]`)},
		// Fails with "insufficient funds for gas * price + value" unless the signer is funded.
		{Method: "eth_call", Params: []ldvalue.Value{callObject, ldvalue.String("latest")}, Problematic: true},
		{Method: "eth_chainId", Params: params(`[]`)},
		{Method: "eth_createAccessList", Params: params(`[
			{"from": "0xaeA8F8f781326bfE6A7683C2BD48Dd6AA4d3Ba63", "data": "0x608060806080608155"}, "pending"]`),
			Problematic: true},
		{Method: "eth_estimateGas", Params: params(`[{"from": "0xb60e8dd61c5d32be8058bb8eb970870f07233155",
			"to": "0xd46e8dd67c5d32be8058bb8eb970870f07244567", "gas": "0x76c0", "gasPrice": "0x9184e72a000",
			"value": "0x9184e72a", "data": "` + callData + `"}]`),
			Problematic: true},
		{Method: "eth_feeHistory", Params: params(`["0x5", "latest", [20, 30]]`)},
		{Method: "eth_gasPrice", Params: params(`[]`)},
		{Method: "eth_getBalance", Params: params(`["` + account + `", "latest"]`)},
		{Method: "eth_getBlockByHash", Params: params(`["` + blockHash + `", false]`)},
		{Method: "eth_getBlockByNumber", Params: params(`["latest", false]`)},
		{Method: "eth_getBlockTransactionCountByHash", Params: params(`["` + blockHash + `"]`)},
		{Method: "eth_getBlockTransactionCountByNumber", Params: params(`["latest"]`)},
		{Method: "eth_getCode", Params: params(`["0x06012c8cf97bead5deae237070f9587f8e7a266d", "latest"]`)},
		{Method: "eth_getLogs", Params: params(`[{"topics": ["0x241ea03ca20251805084d27d4440371c34a0b85ff108f6bb5611248f73818b80"]}]`)},
		{Method: "eth_getProof", Params: params(`["0x7F0d15C7FAae65896648C8273B6d7E43f58Fa842",
			["0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421"], "latest"]`)},
		{Method: "eth_getStorageAt", Params: params(`["0x295a70b2de5e3953354a6a8344e616ed314d7251",
			"0x6661e9d6d8b923d5bbaab1b96e1dd51ff6ea2a93520fdc9eb75d059238b8c5e9", "latest"]`)},
		{Method: "eth_getTransactionByBlockHashAndIndex", Params: params(`["` + blockHash + `", "0x0"]`)},
		{Method: "eth_getTransactionByBlockNumberAndIndex", Params: params(`["0x5BAD55", "0x0"]`)},
		{Method: "eth_getTransactionByHash", Params: params(`["` + txHash + `"]`)},
		{Method: "eth_getTransactionCount", Params: params(`["` + account + `", "latest"]`)},
		{Method: "eth_getTransactionReceipt", Params: params(`["` + txHash + `"]`)},
		{Method: "eth_getUncleByBlockHashAndIndex", Params: params(`["` + blockHash + `", "0x0"]`)},
		{Method: "eth_getUncleByBlockNumberAndIndex", Params: params(`["0x29c", "0x0"]`)},
		{Method: "eth_getUncleCountByBlockHash", Params: params(`["` + blockHash + `"]`)},
		{Method: "eth_getUncleCountByBlockNumber", Params: params(`["0x5bad55"]`)},
		{Method: "eth_getWork", Params: params(`[]`)},
		{Method: "eth_hashrate", Params: params(`[]`)},
		{Method: "eth_maxPriorityFeePerGas", Params: params(`[]`)},
		{Method: "eth_mining", Params: params(`[]`)},
		{Method: "eth_protocolVersion", Params: params(`[]`)},
		// Fails with "nonce too low" once the sample transaction has been mined anywhere.
		{Method: "eth_sendRawTransaction", Params: params(`["0xf869018203e882520894f17f52151ebef6c7334fad080c5704d77216b732881bc16d674ec80000801ba02da1c48b670996dcb1f447ef9ef00b33033c48a4fe938f420bec3e56bfd24071a062e0aa78a81bf0290afbc3a9d8e9a068e6d74caa66c5e0fa8a46deaae96b0833"]`),
			Problematic: true},
		{Method: "eth_submitWork", Params: params(`["0x0000000000000001",
			"0x1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
			"0xD1FE5700000000000000000000000000D1FE5700000000000000000000000000"]`)},
		{Method: "eth_syncing", Params: params(`[]`)},
		{Method: "eth_newFilter", Params: params(`[{"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"]}]`)},
		{Method: "net_listening", Params: params(`[]`)},
		{Method: "net_peerCount", Params: params(`[]`)},
		{Method: "net_version", Params: params(`[]`)},
		{Method: "trace_block", Params: params(`["0x6"]`)},
		{Method: "debug_traceBlockByNumber", Params: params(`["0x4d0c", {"tracer": "callTracer"}]`)},
		{Method: "web3_clientVersion", Params: params(`[]`)},
	}
}

// DefaultErrorCases returns the error survey catalogue. The first entry is a valid request, as a
// baseline for the rest.
func DefaultErrorCases() ErrorCases {
	return ErrorCases{
		{"No error", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["latest", false], "id": 1}`},
		{"extra comma", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber",, "params": ["latest", false], "id": 1}`},
		{"missing id", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["latest", false]}`},
		{"non-numeric id", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["latest", false], "id": wrong}`},
		{"method miss-spelled", `{"jsonrpc": "2.0", "method": "eth_getBlockByNum", "params": ["latest", false], "id": 1}`},
		{"extra param", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["latest", false, "extra"], "id": 1}`},
		{"missing param", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["latest"], "id": 1}`},
		{"missing 0x", `{"jsonrpc": "2.0", "method": "eth_getBlockByNumber", "params": ["5BAD55", false], "id": 1}`},
		{"unsupported method", `{"jsonrpc":"2.0","method":"eth_newFilter","params":[{"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"]}],"id":1}`},
		{"JSONRPC version", `{"jsonrpc": "0.1", "method": "eth_getBlockByNumber", "params": ["latest", false], "id": 1}`},
	}
}
