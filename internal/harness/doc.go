// Package harness validates a program under test against JSON fixtures.
//
// The harness loads a runner config and an ordered case list, spawns the
// configured command once per case, and compares the JSON the program prints
// with the expected value. The first failure stops the run.
//
// # Runner Config
//
// The runner config names the command and its working directory:
//
//	command: python3 main.py
//	workdir: ../
//	timeout: 10s
//
// The same document may be written as JSON or CUE. Every format is checked
// against the #Runner schema embedded in this package.
//
// # Cases
//
// Cases are an array of objects in file order:
//
//	[
//	  {"input": {"coins": [1, 2, 5], "amount": 11}, "output": {"minCoins": 3}},
//	  {"input": {"coins": [2], "amount": 3}, "output": {"minCoins": -1}}
//	]
//
// YAML sequences with the same keys are accepted too.
//
// # Comparison
//
// Output is compared as canonical JSON text (see package jsontext), not as
// abstract values. {"b":2,"a":1} does not match {"a":1,"b":2}, and 1.0 does
// not match 1.
//
// # Failure Kinds
//
// Each case either passes or fails with one of:
//
//   - SpawnError: the command could not be started
//   - Timeout: the optional per-case timeout elapsed
//   - NonZeroExit: the program exited with a non-zero status
//   - InvalidOutput: stdout is not a single JSON value
//   - Mismatch: stdout differs textually from the expected value
//   - Interrupted: the run's context was cancelled (SIGINT/SIGTERM)
//
// Loading failures are ConfigLoadError and CaseLoadError; they abort before
// any process is started.
package harness
