package store

import (
	"time"

	"github.com/viant/correlations/model"
)

// State is a consistent snapshot of the store.
type State struct {
	// Correlations is nil until the first successful reload.
	Correlations []*model.View
	// Loading is true while at least one reload is in flight.
	Loading bool
	// Error holds the failure of the latest applied reload, if any.
	Error error
	// Loaded reports that Correlations reflects a server response.
	Loaded bool
	// Sequence identifies the reload that produced the current state.
	Sequence  uint64
	UpdatedAt time.Time
}

// clone copies the list and its views; data-source descriptors stay shared
// with the registry.
func (s *State) clone() State {
	ret := *s
	if s.Correlations != nil {
		ret.Correlations = make([]*model.View, len(s.Correlations))
		for i, view := range s.Correlations {
			copied := *view
			ret.Correlations[i] = &copied
		}
	}
	return ret
}
