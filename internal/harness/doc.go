// Package harness executes YAML-defined proofing scenarios.
//
// A scenario is one document, optional configuration, and a flow of
// scan/accept/reject steps with expectations. The harness runs the flow
// against an in-memory TextDocument, checks each step's expectation, and
// captures a trace of queue states that golden tests compare byte-for-byte.
//
// Scenario files live in testdata/scenarios, golden traces in
// testdata/golden. Regenerate golden files with:
//
//	go test ./internal/harness -update
package harness
