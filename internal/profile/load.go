package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a profile from a YAML or JSON file. Files ending in .json are
// decoded as JSON; everything else as YAML.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	p, err := Parse(data, format)
	if err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a profile document in the given format ("json" or "yaml").
func Parse(data []byte, format string) (Profile, error) {
	var m map[string]any
	switch format {
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return Profile{}, err
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Profile{}, err
		}
	default:
		return Profile{}, fmt.Errorf("unsupported profile format %q", format)
	}
	return FromMap(m), nil
}
