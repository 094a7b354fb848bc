package main

import (
	"os"

	"github.com/rpcmatrix/jsonrpc-contract-tests/surveys"
)

func main() {
	os.Exit(surveys.Main(surveys.MethodSurvey, os.Args, os.Stdout, os.Stderr))
}
