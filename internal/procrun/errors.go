package procrun

import (
	"fmt"
	"strings"
	"time"
)

// SpawnError reports that the child process could not be started:
// executable not found, permission denied, or an invalid working directory.
// No outcome exists when this error is returned.
type SpawnError struct {
	Command []string
	Dir     string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q in %s: %v", strings.Join(e.Command, " "), e.Dir, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the child was killed because the context
// deadline passed. Outcome holds whatever was captured before the kill.
type TimeoutError struct {
	After   time.Duration
	Outcome *Outcome
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("process did not exit within %s", e.After)
}
