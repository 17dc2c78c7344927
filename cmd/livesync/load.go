package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadDocument reads a YAML (or JSON) file whose top level is a mapping.
func loadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDocument(data)
}

func parseDocument(data []byte) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if raw == nil {
		return map[string]any{}, nil
	}
	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be a mapping, got %T", raw)
	}
	return doc, nil
}

// normalize turns the generic values produced by the YAML decoder into the
// snapshot model: mappings with non-string keys get their keys formatted.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, elem := range x {
			x[k] = normalize(elem)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[fmt.Sprint(k)] = normalize(elem)
		}
		return out
	case []any:
		for i, elem := range x {
			x[i] = normalize(elem)
		}
		return x
	default:
		return v
	}
}
