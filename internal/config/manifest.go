package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// AllowListPath is the gjson path of the allow list inside a package manifest
const AllowListPath = "extra.violinist.allow_list"

// Manifest is a package manifest (composer.json) carrying project settings
// under its "extra" section.
type Manifest struct {
	data []byte
}

// LoadManifest reads a package manifest from disk
func LoadManifest(path string) (*Manifest, error) {
	realPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(realPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return ParseManifest(data)
}

// ParseManifest wraps raw manifest JSON. The document must be a JSON object.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manifest is not valid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("manifest must be a JSON object")
	}
	return &Manifest{data: data}, nil
}

// Name returns the package name declared by the manifest, if any
func (m *Manifest) Name() string {
	return gjson.GetBytes(m.data, "name").String()
}

// GetAllowList returns the patterns under extra.violinist.allow_list.
//
// A missing or null value is an empty allow list. A value that is not an
// array, or an array holding anything but strings, is an error.
func (m *Manifest) GetAllowList() ([]string, error) {
	result := gjson.GetBytes(m.data, AllowListPath)
	if !result.Exists() || result.Type == gjson.Null {
		return []string{}, nil
	}

	if !result.IsArray() {
		return nil, fmt.Errorf("%s: %w", AllowListPath, ErrAllowListNotList)
	}

	entries := result.Array()
	patterns := make([]string, 0, len(entries))
	for i, entry := range entries {
		if entry.Type != gjson.String {
			return nil, fmt.Errorf("%s[%d]: %w", AllowListPath, i, ErrAllowListNotString)
		}
		patterns = append(patterns, entry.String())
	}

	return patterns, nil
}
