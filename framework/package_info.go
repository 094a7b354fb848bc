// Package framework contains low-level infrastructure shared by both survey commands that is not
// specific to JSON-RPC: the Printf-style Logger abstraction with its null, prefixing and capturing
// implementations, and the command-line filter values used to select catalogue entries.
//
// The domain-specific code lives elsewhere: the catalogue and registry packages hold the static
// tables, dispatch and classify turn one request into one Outcome, and matrix drives the run.
package framework
