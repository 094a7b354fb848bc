// Package surveys contains the command-line front end shared by the two survey commands: the
// method survey, which asks every network whether it supports each method, and the error survey,
// which sends malformed requests and tabulates the errors that come back.
//
// Everything that actually probes and classifies lives in the lower-level packages; this package
// only parses parameters, loads credentials, wires the pieces together and reports on the console.
package surveys
