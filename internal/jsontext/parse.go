package jsontext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes exactly one JSON value from data.
// Leading and trailing whitespace is allowed; any other trailing data is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unexpected end of JSON input")
		}
		return nil, err
	}

	v, err := parseValue(dec, tok)
	if err != nil {
		return nil, err
	}

	// Token rejects anything that is not the start of another value,
	// so a second call must hit EOF.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return nil, err
	}

	return v, nil
}

func parseValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q at offset %d", rune(t), dec.InputOffset())
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func parseArray(dec *json.Decoder) (Value, error) {
	arr := Array{}
	for {
		tok, err := nextToken(dec)
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		elem, err := parseValue(dec, tok)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
		}
		arr = append(arr, elem)
	}
}

// parseObject collapses repeated keys: the last value wins and keeps the
// position of the first occurrence.
func parseObject(dec *json.Decoder) (Value, error) {
	obj := Object{}
	seen := map[string]int{}
	for {
		tok, err := nextToken(dec)
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %T", tok)
		}

		tok, err = nextToken(dec)
		if err != nil {
			return nil, err
		}
		val, err := parseValue(dec, tok)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", key, err)
		}
		if i, dup := seen[key]; dup {
			obj[i].Value = val
			continue
		}
		seen[key] = len(obj)
		obj = append(obj, Member{Key: key, Value: val})
	}
}

func nextToken(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected end of JSON input")
	}
	return tok, err
}
