package jsontext

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromYAML converts a decoded YAML node into a Value.
// Mapping order is preserved. Scalars map by their resolved tag; an int or
// float scalar that is already a valid JSON number literal is kept verbatim.
func FromYAML(node *yaml.Node) (Value, error) {
	if node == nil {
		return nil, fmt.Errorf("nil YAML node")
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}
		return FromYAML(node.Content[0])
	case yaml.AliasNode:
		return FromYAML(node.Alias)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(node.Content))
		for i, child := range node.Content {
			v, err := FromYAML(child)
			if err != nil {
				return nil, fmt.Errorf("line %d: array[%d]: %w", child.Line, i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := make(Object, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := FromYAML(val)
			if err != nil {
				return nil, fmt.Errorf("line %d: object[%q]: %w", val.Line, key.Value, err)
			}
			obj = append(obj, Member{Key: key.Value, Value: v})
		}
		return obj, nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		if isNumberLiteral(node.Value) {
			return Number(node.Value), nil
		}
		var n int64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return Number(strconv.FormatInt(n, 10)), nil
	case "!!float":
		if isNumberLiteral(node.Value) {
			return Number(node.Value), nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("line %d: %q has no JSON representation", node.Line, node.Value)
		}
		return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their raw text.
		return String(node.Value), nil
	}
}
