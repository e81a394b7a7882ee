// Package procrun spawns the program under test for a single case.
//
// A Runner starts one child process per call, writes the canonical JSON text
// of the input to its stdin, closes stdin, and collects stdout and stderr
// separately until the process exits. os/exec copies stdin and drains both
// output pipes in their own goroutines, so a child that fills its stdout
// buffer before reading all of stdin cannot stall the harness.
//
// No timeout is applied unless Runner.Timeout is set or the caller's
// context carries a deadline.
package procrun
