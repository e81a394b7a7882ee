package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/casecheck/internal/jsontext"
	"github.com/roach88/casecheck/internal/procrun"
)

// Response is one scripted reply of a FakeRunner.
type Response struct {
	Outcome *procrun.Outcome
	Err     error
}

// Stdout is a shorthand for a successful response printing out.
func Stdout(out string) Response {
	return Response{Outcome: &procrun.Outcome{Stdout: []byte(out)}}
}

// Exit is a shorthand for a response exiting with code and stderr.
func Exit(code int, stderr string) Response {
	return Response{Outcome: &procrun.Outcome{ExitCode: code, Stderr: []byte(stderr)}}
}

// FakeRunner replays scripted responses in order and records every input
// it receives. It stands in for a real process in orchestrator tests.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FakeRunner struct {
	mu        sync.Mutex
	responses []Response
	inputs    []string
}

// NewFakeRunner creates a runner that answers with responses in order.
func NewFakeRunner(responses ...Response) *FakeRunner {
	return &FakeRunner{responses: responses}
}

// Run returns the next scripted response.
//
// Panics if all responses have been consumed. This catches a harness that
// runs more cases than the test expects.
func (f *FakeRunner) Run(ctx context.Context, input jsontext.Value) (*procrun.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.inputs) >= len(f.responses) {
		panic(fmt.Sprintf("FakeRunner: call %d exceeds %d scripted responses", len(f.inputs)+1, len(f.responses)))
	}
	f.inputs = append(f.inputs, jsontext.Text(input))
	resp := f.responses[len(f.inputs)-1]
	return resp.Outcome, resp.Err
}

// Calls returns the number of Run invocations so far.
func (f *FakeRunner) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

// Inputs returns the canonical text of every input received, in order.
func (f *FakeRunner) Inputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}
