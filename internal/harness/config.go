package harness

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed runner_schema.cue
var runnerSchema string

// DefaultConfigPath is where the runner config is looked up when no path is given.
const DefaultConfigPath = "runner.yml"

// RunnerConfig is the validated runner configuration. Immutable once loaded.
type RunnerConfig struct {
	// Command is the whitespace-delimited command line of the program under test.
	Command string

	// Workdir is the absolute working directory of the program under test.
	Workdir string

	// Timeout bounds each case when positive. Zero means no limit.
	Timeout time.Duration

	// Source is the config file the values came from, empty when none was read.
	Source string
}

// ConfigDocument is the on-disk shape of the runner config, before validation.
type ConfigDocument struct {
	Command string `yaml:"command" json:"command"`
	Workdir string `yaml:"workdir" json:"workdir"`
	Timeout string `yaml:"timeout" json:"timeout"`
}

// LoadConfig reads, validates, and resolves the runner config at path.
// All failures are returned as *LoadError with Code ErrCodeConfig.
func LoadConfig(path string) (*RunnerConfig, error) {
	doc, err := ReadConfigDocument(path)
	if err != nil {
		return nil, err
	}
	cfg, err := doc.Resolve()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Path: path, Err: err}
	}
	cfg.Source = path
	return cfg, nil
}

// ReadConfigDocument decodes the config file at path without validating it.
// The format follows the extension: .yml/.yaml, .json, or .cue.
func ReadConfigDocument(path string) (*ConfigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Path: path, Err: err}
	}

	var doc *ConfigDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		doc, err = decodeConfigYAML(data)
	case ".json":
		doc, err = decodeConfigJSON(data)
	case ".cue":
		doc, err = decodeConfigCUE(data, path)
	default:
		err = fmt.Errorf("unsupported config format %q (want .yml, .yaml, .json, or .cue)", ext)
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeConfig, Path: path, Err: err}
	}
	return doc, nil
}

// Resolve validates the document against the #Runner schema and produces a
// RunnerConfig. Workdir defaults to "." and is made absolute against the
// current directory.
func (d *ConfigDocument) Resolve() (*RunnerConfig, error) {
	if err := validateRunnerSchema(d); err != nil {
		return nil, err
	}

	var timeout time.Duration
	if d.Timeout != "" {
		var err error
		timeout, err = time.ParseDuration(d.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
	}

	workdir := d.Workdir
	if workdir == "" {
		workdir = "."
	}
	abs, err := filepath.Abs(workdir)
	if err != nil {
		return nil, fmt.Errorf("workdir: %w", err)
	}

	return &RunnerConfig{
		Command: strings.TrimSpace(d.Command),
		Workdir: abs,
		Timeout: timeout,
	}, nil
}

func decodeConfigYAML(data []byte) (*ConfigDocument, error) {
	var doc ConfigDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject typos like "comand:"
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("document is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

func decodeConfigJSON(data []byte) (*ConfigDocument, error) {
	var doc ConfigDocument
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &doc, nil
}

func decodeConfigCUE(data []byte, path string) (*ConfigDocument, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %s", flattenCUEError(err))
	}

	runner, err := runnerDefinition(ctx)
	if err != nil {
		return nil, err
	}
	unified := runner.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("schema violation: %s", flattenCUEError(err))
	}

	var doc ConfigDocument
	if err := unified.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %s", flattenCUEError(err))
	}
	return &doc, nil
}

// validateRunnerSchema unifies the document with #Runner. The definition is
// closed, so it also rejects fields the schema does not declare.
func validateRunnerSchema(d *ConfigDocument) error {
	ctx := cuecontext.New()
	runner, err := runnerDefinition(ctx)
	if err != nil {
		return err
	}

	fields := map[string]any{"command": d.Command}
	if d.Workdir != "" {
		fields["workdir"] = d.Workdir
	}
	if d.Timeout != "" {
		fields["timeout"] = d.Timeout
	}

	unified := runner.Unify(ctx.Encode(fields))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", flattenCUEError(err))
	}
	return nil
}

func runnerDefinition(ctx *cue.Context) (cue.Value, error) {
	schema := ctx.CompileString(runnerSchema, cue.Filename("runner_schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid embedded schema: %w", err)
	}
	return schema.LookupPath(cue.ParsePath("#Runner")), nil
}

// flattenCUEError joins every error in a CUE error list into one line.
func flattenCUEError(err error) string {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		if path := e.Path(); len(path) > 0 {
			msg = strings.Join(path, ".") + ": " + msg
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
