// Package projection turns raw correlations into views by resolving both data
// sources against a registry. Projection is a pure function of its inputs.
package projection

import (
	"fmt"
	"strings"

	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/registry"
)

// Policy decides what happens to a correlation whose data source is unknown.
type Policy string

const (
	// Strict fails the whole projection with a *ResolutionError.
	Strict Policy = "strict"
	// Drop omits the correlation and reports it through Result.Dropped.
	Drop Policy = "drop"
)

// ParsePolicy converts configuration input; empty input yields Strict.
func ParsePolicy(value string) (Policy, error) {
	switch policy := Policy(strings.ToLower(strings.TrimSpace(value))); policy {
	case "":
		return Strict, nil
	case Strict, Drop:
		return policy, nil
	default:
		return "", fmt.Errorf("unsupported resolution policy: %q", value)
	}
}

// Result holds projected views and, under Drop, the gaps that were skipped.
type Result struct {
	Views   []*model.View
	Dropped []*ResolutionError
}

// Project resolves every correlation. The returned Views slice is non-nil
// even when empty, and keeps input order.
func Project(correlations []*model.Correlation, resolver registry.Resolver, policy Policy) (*Result, error) {
	ret := &Result{Views: make([]*model.View, 0, len(correlations))}
	for i, correlation := range correlations {
		if correlation == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNilCorrelation)
		}
		view, err := One(correlation, resolver)
		if err == nil {
			ret.Views = append(ret.Views, view)
			continue
		}
		if policy != Drop {
			return nil, err
		}
		ret.Dropped = append(ret.Dropped, err.(*ResolutionError))
	}
	return ret, nil
}

// One resolves a single correlation.
func One(correlation *model.Correlation, resolver registry.Resolver) (*model.View, error) {
	if correlation == nil {
		return nil, ErrNilCorrelation
	}
	source, ok := resolver.Resolve(correlation.SourceUID)
	if !ok || source == nil {
		return nil, &ResolutionError{CorrelationUID: correlation.UID, DataSourceUID: correlation.SourceUID, Role: RoleSource}
	}
	target, ok := resolver.Resolve(correlation.TargetUID)
	if !ok || target == nil {
		return nil, &ResolutionError{CorrelationUID: correlation.UID, DataSourceUID: correlation.TargetUID, Role: RoleTarget}
	}
	return &model.View{
		UID:         correlation.UID,
		Label:       correlation.Label,
		Description: correlation.Description,
		Source:      source,
		Target:      target,
	}, nil
}
