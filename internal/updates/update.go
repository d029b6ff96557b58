// Package updates models the candidate package updates that flow through the
// dependency update pipeline.
package updates

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/violinist-dev/allowlist-handler/internal/filtering"
	"github.com/violinist-dev/allowlist-handler/internal/versions"
)

// Update is one entry of "composer outdated --format=json". An entry decoded
// from JSON keeps its original bytes and encodes back to them, so fields
// without a struct field here, such as "abandoned", survive filtering.
type Update struct {
	Name         string `json:"name,omitempty"`
	Version      string `json:"version,omitempty"`
	Latest       string `json:"latest,omitempty"`
	LatestStatus string `json:"latest-status,omitempty"`
	Description  string `json:"description,omitempty"`
	Homepage     string `json:"homepage,omitempty"`

	raw json.RawMessage
}

var (
	_ filtering.Item   = Update{}
	_ json.Marshaler   = Update{}
	_ json.Unmarshaler = (*Update)(nil)
)

// updateFields is Update without its JSON methods.
type updateFields Update

// UnmarshalJSON decodes the known fields and keeps a copy of data.
func (u *Update) UnmarshalJSON(data []byte) error {
	var fields updateFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*u = Update(fields)
	u.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original record when there is one, and the known
// fields otherwise.
func (u Update) MarshalJSON() ([]byte, error) {
	if u.raw != nil {
		return u.raw, nil
	}
	return json.Marshal(updateFields(u))
}

// Raw returns the record exactly as it was decoded, or nil for an Update
// built in code.
func (u Update) Raw() json.RawMessage {
	return u.raw
}

// GetName returns the package name, or "" when the entry has none.
func (u Update) GetName() string {
	return u.Name
}

// IsOutdated reports whether the latest version is newer than the installed one.
func (u Update) IsOutdated() bool {
	return versions.IsNewerVersion(u.Latest, u.Version)
}

type outdatedReport struct {
	Installed []Update `json:"installed"`
}

// ParseOutdated decodes the output of "composer outdated --format=json".
// Both the {"installed": [...]} envelope and a bare array are accepted.
func ParseOutdated(data []byte) ([]Update, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []Update{}, nil
	}

	if trimmed[0] == '[' {
		var list []Update
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to parse update list: %w", err)
		}
		return list, nil
	}

	var report outdatedReport
	if err := json.Unmarshal(trimmed, &report); err != nil {
		return nil, fmt.Errorf("failed to parse outdated report: %w", err)
	}
	if report.Installed == nil {
		return []Update{}, nil
	}
	return report.Installed, nil
}

// OnlyOutdated returns the updates whose latest version is newer than the
// installed one, preserving order.
func OnlyOutdated(list []Update) []Update {
	outdated := make([]Update, 0, len(list))
	for _, u := range list {
		if u.IsOutdated() {
			outdated = append(outdated, u)
		}
	}
	return outdated
}
