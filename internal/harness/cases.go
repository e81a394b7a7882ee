package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/casecheck/internal/jsontext"
)

// DefaultCasesPath is where the case list is looked up when no path is given.
const DefaultCasesPath = "tests/cases.json"

// LoadCases reads the ordered case list at path.
// .json files hold a JSON array; .yml/.yaml files hold a YAML sequence.
// All failures are returned as *LoadError with Code ErrCodeCases.
func LoadCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCases, Path: path, Err: err}
	}

	cases, err := ParseCases(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCases, Path: path, Err: err}
	}
	return cases, nil
}

// ParseCases decodes a case list. ext selects the format and is one of
// ".json", ".yml", or ".yaml".
func ParseCases(data []byte, ext string) ([]TestCase, error) {
	var (
		doc jsontext.Value
		err error
	)
	switch ext {
	case ".json":
		doc, err = jsontext.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yml", ".yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if node.Kind == 0 {
			return nil, fmt.Errorf("document is empty")
		}
		doc, err = jsontext.FromYAML(&node)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported cases format %q (want .json, .yml, or .yaml)", ext)
	}

	return casesFromValue(doc)
}

func casesFromValue(doc jsontext.Value) ([]TestCase, error) {
	list, ok := doc.(jsontext.Array)
	if !ok {
		return nil, fmt.Errorf("cases must be an array, got %s", kindOf(doc))
	}

	cases := make([]TestCase, 0, len(list))
	for i, elem := range list {
		tc, err := caseFromValue(elem)
		if err != nil {
			return nil, fmt.Errorf("case #%d: %w", i+1, err)
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

func caseFromValue(v jsontext.Value) (TestCase, error) {
	obj, ok := v.(jsontext.Object)
	if !ok {
		return TestCase{}, fmt.Errorf("must be an object, got %s", kindOf(v))
	}

	// Other keys such as "name" or "note" are ignored.
	input, ok := obj.Get("input")
	if !ok {
		return TestCase{}, fmt.Errorf("input is required")
	}
	output, ok := obj.Get("output")
	if !ok {
		return TestCase{}, fmt.Errorf("output is required")
	}

	return TestCase{Input: input, Output: output}, nil
}

func kindOf(v jsontext.Value) string {
	switch v.(type) {
	case jsontext.Null:
		return "null"
	case jsontext.Bool:
		return "boolean"
	case jsontext.Number:
		return "number"
	case jsontext.String:
		return "string"
	case jsontext.Array:
		return "array"
	case jsontext.Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
