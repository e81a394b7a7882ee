package jsontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeYAML(t *testing.T, src string) Value {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	v, err := FromYAML(&node)
	require.NoError(t, err)
	return v
}

func TestFromYAMLPreservesOrder(t *testing.T) {
	v := decodeYAML(t, "b: 2\na: 1\nnested:\n  z: true\n  y: null\n")
	assert.Equal(t, `{"b":2,"a":1,"nested":{"z":true,"y":null}}`, Text(v))
}

func TestFromYAMLScalars(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"int", "7", "7"},
		{"hex int", "0x1F", "31"},
		{"float", "2.50", "2.50"},
		{"leading dot float", ".5", "0.5"},
		{"bool", "yes_not_bool: true", `{"yes_not_bool":true}`},
		{"null tilde", "~", "null"},
		{"quoted number stays string", `"11"`, `"11"`},
		{"plain string", "hello", `"hello"`},
		{"sequence", "[1, two, 3.0]", `[1,"two",3.0]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(decodeYAML(t, tt.src)))
		})
	}
}

func TestFromYAMLAlias(t *testing.T) {
	v := decodeYAML(t, "base: &b {coins: [1, 2]}\ncopy: *b\n")
	assert.Equal(t, `{"base":{"coins":[1,2]},"copy":{"coins":[1,2]}}`, Text(v))
}

func TestFromYAMLRejectsNonJSONValues(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("x: .nan\n"), &node))
	_, err := FromYAML(&node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JSON representation")

	_, err = FromYAML(nil)
	require.Error(t, err)
}

func TestFromYAMLComplexKey(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("? [a, b]\n: 1\n"), &node))
	_, err := FromYAML(&node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping keys must be scalars")
}
