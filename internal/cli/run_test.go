package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/casecheck/internal/harness"
	"github.com/roach88/casecheck/internal/testutil"
)

func TestRun_EchoPasses(t *testing.T) {
	requireCat(t)
	_, configPath, casesPath := testutil.Project(t, "command: cat\n", `[{"input":{"x":1},"output":{"x":1}}]`)

	stdout, stderr, err := execute(t, "--config", configPath, "--cases", casesPath)
	requireNoErrorExit(t, err, stderr)
	assert.Equal(t, "1 of 1 passed\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_EchoMismatchFails(t *testing.T) {
	requireCat(t)
	_, configPath, casesPath := testutil.Project(t, "command: cat\n", `[{"input":{"x":1},"output":{"x":2}}]`)

	stdout, stderr, err := execute(t, "run", "--config", configPath, "--cases", casesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Empty(t, stdout)
	assert.Equal(t, "case #1 failed: expected={\"x\":2}, actual={\"x\":1}\n", stderr)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	requireCat(t)
	dir := t.TempDir()
	configPath := testutil.WriteFile(t, dir, "runner.yml", "command: cat\n")
	casesPath := testutil.WriteFile(t, dir, "cases.yaml", `
- {input: 1, output: 1}
- {input: {b: 1, a: 2}, output: {a: 2, b: 1}}
- {input: 3, output: 3}
`)
	dbPath := filepath.Join(dir, "history.db")

	_, stderr, err := execute(t, "--config", configPath, "--cases", casesPath, "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, "case #2 failed: expected={\"a\":2,\"b\":1}, actual={\"b\":1,\"a\":2}\n", stderr)

	runs := listRuns(t, dbPath)
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Passed)
	assert.Equal(t, 3, runs[0].Total)
	assert.Equal(t, 2, runs[0].FailedIndex)
	assert.Equal(t, harness.KindMismatch, runs[0].FailureKind)
}

func TestRun_PortugueseOutput(t *testing.T) {
	requireCat(t)
	_, configPath, casesPath := testutil.Project(t, "command: cat\n", `[{"input":[1],"output":[1]},{"input":[2],"output":[2]}]`)

	stdout, stderr, err := execute(t, "--lang", "pt-BR", "--config", configPath, "--cases", casesPath)
	requireNoErrorExit(t, err, stderr)
	assert.Equal(t, "Todos os 2 casos passaram.\n", stdout)
}

func TestRun_NonZeroExit(t *testing.T) {
	requireCat(t)
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "fail.sh", "cat >/dev/null\necho nope >&2\nexit 3\n")
	configPath := testutil.WriteFile(t, dir, "runner.yml", "command: sh fail.sh\nworkdir: "+dir+"\n")
	casesPath := testutil.WriteFile(t, dir, "cases.json", `[{"input":1,"output":1}]`)

	_, stderr, err := execute(t, "--config", configPath, "--cases", casesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "case #1 error: process exited with code 3. stderr: nope\n\n", stderr)
}

func TestRun_JSONOutput(t *testing.T) {
	requireCat(t)
	_, configPath, casesPath := testutil.Project(t, "command: cat\n", `[{"input":"a","output":"a"},{"input":"b","output":"c"}]`)

	stdout, _, err := execute(t, "--format", "json", "--config", configPath, "--cases", casesPath)
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		RunID  string `json:"run_id"`
		Data   struct {
			OK       bool `json:"ok"`
			Passed   int  `json:"passed"`
			Executed int  `json:"executed"`
			Failure  struct {
				Index    int    `json:"index"`
				Kind     string `json:"kind"`
				Expected string `json:"expected"`
				Actual   string `json:"actual"`
			} `json:"failure"`
		} `json:"data"`
		Error *CLIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.RunID)
	assert.False(t, resp.Data.OK)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 2, resp.Data.Executed)
	assert.Equal(t, 2, resp.Data.Failure.Index)
	assert.Equal(t, harness.KindMismatch, resp.Data.Failure.Kind)
	assert.Equal(t, `"c"`, resp.Data.Failure.Expected)
	assert.Equal(t, `"b"`, resp.Data.Failure.Actual)
	require.NotNil(t, resp.Error)
	assert.Equal(t, harness.ErrCodeMismatch, resp.Error.Code)
}

func TestRun_CommandFlagWithoutConfig(t *testing.T) {
	requireCat(t)
	dir := t.TempDir()
	casesPath := testutil.WriteFile(t, dir, "cases.json", `[]`)

	stdout, stderr, err := execute(t, "--command", "cat", "--cases", casesPath)
	requireNoErrorExit(t, err, stderr)
	assert.Equal(t, "0 of 0 passed\n", stdout)
}

func TestRun_CommandFlagOverridesConfig(t *testing.T) {
	requireCat(t)
	_, configPath, casesPath := testutil.Project(t, "command: definitely-not-a-real-program\n", `[{"input":1,"output":1}]`)

	stdout, stderr, err := execute(t, "--config", configPath, "--cases", casesPath, "--command", "cat")
	requireNoErrorExit(t, err, stderr)
	assert.Equal(t, "1 of 1 passed\n", stdout)
}

func TestRun_SpawnError(t *testing.T) {
	_, configPath, casesPath := testutil.Project(t, "command: definitely-not-a-real-program\n", `[{"input":1,"output":1},{"input":2,"output":2}]`)

	_, stderr, err := execute(t, "--config", configPath, "--cases", casesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "case #1 error: ")
	assert.Contains(t, stderr, "definitely-not-a-real-program")
}

func TestRun_LoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		cases    string
		wantCode string
	}{
		{"bad config", "comand: cat\n", `[]`, harness.ErrCodeConfig},
		{"empty command", "command: \"\"\n", `[]`, harness.ErrCodeConfig},
		{"bad cases", "command: cat\n", `{"input":1}`, harness.ErrCodeCases},
		{"missing output", "command: cat\n", `[{"input":1}]`, harness.ErrCodeCases},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configPath, casesPath := testutil.Project(t, tt.config, tt.cases)

			stdout, stderr, err := execute(t, "--config", configPath, "--cases", casesPath)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestRun_MissingDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	casesPath := testutil.WriteFile(t, dir, "cases.json", `[]`)

	_, stderr, err := execute(t, "--config", filepath.Join(dir, "runner.yml"), "--cases", casesPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_CONFIG]: failed to load runner config")
}
