package filtering

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/violinist-dev/allowlist-handler/internal/config"
)

// Item is a candidate update identified by an optional package name.
// An empty name means the item has no usable name.
type Item interface {
	GetName() string
}

// AllowList keeps only the items whose name matches at least one pattern.
// The pattern list is fixed at construction.
type AllowList struct {
	patterns   []string
	nameFilter NameFilter
	logger     Logger
}

// NewAllowList creates an AllowList from a raw pattern list, stored verbatim.
func NewAllowList(patterns []string) *AllowList {
	return &AllowList{
		patterns:   patterns,
		nameFilter: NewDefaultNameFilter(),
		logger:     NewNoopLogger(),
	}
}

// NewAllowListFromConfig creates an AllowList from the allow list held by src.
// Construction never fails: when src is nil or cannot produce a list, the
// AllowList is empty and passes every item through.
func NewAllowListFromConfig(src config.AllowListSource) *AllowList {
	if src == nil {
		return NewAllowList(nil)
	}

	patterns, err := src.GetAllowList()
	if err != nil {
		slog.Debug("Allow list unavailable, using an empty list", "error", err)
		return NewAllowList(nil)
	}

	return NewAllowList(patterns)
}

// SetLogger attaches the logger that receives removal messages.
// A nil logger restores the no-op default.
func (a *AllowList) SetLogger(logger Logger) {
	if logger == nil {
		logger = NewNoopLogger()
	}
	a.logger = logger
}

// Patterns returns a copy of the configured patterns.
func (a *AllowList) Patterns() []string {
	return append([]string(nil), a.patterns...)
}

// IsEmpty reports whether the allow list has no patterns, in which case it
// does not filter anything.
func (a *AllowList) IsEmpty() bool {
	return len(a.patterns) == 0
}

// Allows reports whether name matches at least one pattern.
func (a *AllowList) Allows(name string) bool {
	included, _ := a.nameFilter.ShouldInclude(name, a.patterns)
	return included
}

// ApplyToItems returns the items whose name matches the allow list, in their
// original order. With an empty allow list, items is returned unchanged.
func (a *AllowList) ApplyToItems(items []Item) []Item {
	return Apply(a, items)
}

// Apply is ApplyToItems for a slice of any concrete item type.
//
// Items without a name are dropped silently. Named items that match no
// pattern are dropped and reported to the allow list's logger.
func Apply[T Item](a *AllowList, items []T) []T {
	if a.IsEmpty() {
		return items
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		name := itemName(item)
		if name == "" {
			continue
		}

		if included, _ := a.nameFilter.ShouldInclude(name, a.patterns); included {
			kept = append(kept, item)
			continue
		}

		a.logger.Info(fmt.Sprintf("Removing %s because it has no match in the allow list", name))
	}

	return kept
}

// itemName returns the name of item, or "" when item is nil, including a nil
// pointer held in the interface.
func itemName(item Item) string {
	if item == nil {
		return ""
	}
	if v := reflect.ValueOf(item); v.Kind() == reflect.Pointer && v.IsNil() {
		return ""
	}
	return item.GetName()
}
