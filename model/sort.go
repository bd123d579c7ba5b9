package model

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the column views are ordered by.
type SortKey string

const (
	SortBySource SortKey = "source"
	SortByTarget SortKey = "target"
	SortByLabel  SortKey = "label"
)

// ParseSortKey converts user input into a SortKey. Empty input yields "".
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(value))); key {
	case "", SortBySource, SortByTarget, SortByLabel:
		return key, nil
	default:
		return "", fmt.Errorf("unsupported sort key: %q", value)
	}
}

// SortViews orders views in place. Data-source columns compare by name,
// ignoring case; ties keep server order. An empty key leaves the slice as is.
func SortViews(views []*View, key SortKey) {
	var value func(v *View) string
	switch key {
	case SortBySource:
		value = func(v *View) string { return v.Source.Name }
	case SortByTarget:
		value = func(v *View) string { return v.Target.Name }
	case SortByLabel:
		value = func(v *View) string { return v.Label }
	default:
		return
	}
	sort.SliceStable(views, func(i, j int) bool {
		return strings.ToLower(value(views[i])) < strings.ToLower(value(views[j]))
	})
}
