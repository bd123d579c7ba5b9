package memory

import (
	"context"

	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/dao"
	"github.com/viant/correlations/service/dao/store"
	"github.com/viant/correlations/service/registry"
)

// Registry is a thread-safe in-memory data-source registry.
type Registry struct {
	dataSources *store.MemoryStore[string, model.DataSource]
}

var _ registry.Resolver = (*Registry)(nil)

// Register adds or replaces descriptors.
func (r *Registry) Register(ctx context.Context, dataSources ...*model.DataSource) error {
	for _, ds := range dataSources {
		if err := r.dataSources.Save(ctx, ds); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes a descriptor.
func (r *Registry) Remove(ctx context.Context, uid string) error {
	return r.dataSources.Delete(ctx, uid)
}

// Resolve returns a copy of the descriptor registered under uid.
func (r *Registry) Resolve(uid string) (*model.DataSource, bool) {
	ds, err := r.dataSources.Load(context.Background(), uid)
	if err != nil {
		return nil, false
	}
	return ds, true
}

// List returns descriptors in registration order, optionally filtered by
// "Type" or "UID" parameters.
func (r *Registry) List(ctx context.Context, parameters ...*dao.Parameter) ([]*model.DataSource, error) {
	return r.dataSources.List(ctx, parameters...)
}

func field(ds *model.DataSource, name string) (string, bool) {
	switch name {
	case "UID":
		return ds.UID, true
	case "Type":
		return ds.Type, true
	case "Name":
		return ds.Name, true
	}
	return "", false
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		dataSources: store.NewMemoryStore[string, model.DataSource](
			func(ds *model.DataSource) string { return ds.UID },
			store.WithField[string, model.DataSource](field),
		),
	}
}
