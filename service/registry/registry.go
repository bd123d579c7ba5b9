// Package registry defines how correlations look up data-source descriptors.
// The registry is an explicit collaborator: stores and projections receive a
// Resolver instead of reaching for a process-wide singleton.
package registry

import "github.com/viant/correlations/model"

// Resolver looks up a data-source descriptor by UID.
type Resolver interface {
	Resolve(uid string) (*model.DataSource, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(uid string) (*model.DataSource, bool)

func (f ResolverFunc) Resolve(uid string) (*model.DataSource, bool) { return f(uid) }

// Static returns a Resolver over a fixed set of descriptors.
func Static(dataSources ...*model.DataSource) Resolver {
	byUID := make(map[string]*model.DataSource, len(dataSources))
	for _, ds := range dataSources {
		byUID[ds.UID] = ds
	}
	return ResolverFunc(func(uid string) (*model.DataSource, bool) {
		ds, ok := byUID[uid]
		return ds, ok
	})
}
