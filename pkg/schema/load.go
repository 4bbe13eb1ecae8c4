package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a schema file, picks the format from the extension (.json,
// .yaml, .yml), normalizes names, and validates the result. An empty
// schema is an error: the caller has nothing to validate against and
// should abort before touching any data tape.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %q: %w", path, err)
	}

	var raw Schema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse schema file %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse schema file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema file extension %q (want .json, .yaml or .yml)", ext)
	}

	return FromRaw(raw)
}

// FromRaw normalizes and validates a schema built in memory. It is the
// same path Load takes after unmarshalling, exposed for callers that
// source the schema elsewhere.
func FromRaw(raw Schema) (Schema, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("schema is empty")
	}

	s, err := normalize(raw)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return s, nil
}
