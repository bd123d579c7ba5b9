package fs

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/correlations/model"
	"github.com/viant/correlations/service/meta"
	"github.com/viant/correlations/service/registry/memory"
)

// File is a data-source provisioning document:
//
//	apiVersion: 1
//	datasources:
//	  - uid: loki
//	    name: Loki
//	    type: loki
//	    readOnly: true
type File struct {
	APIVersion  int                 `json:"apiVersion" yaml:"apiVersion"`
	DataSources []*model.DataSource `json:"datasources" yaml:"datasources"`
}

// Loader reads provisioning documents from any afs location.
type Loader struct {
	meta *meta.Service
}

// Load returns the descriptors declared at URL.
func (l *Loader) Load(ctx context.Context, URL string) ([]*model.DataSource, error) {
	var file File
	if err := l.meta.Load(ctx, URL, &file); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(file.DataSources))
	for i, ds := range file.DataSources {
		if ds == nil || ds.UID == "" {
			return nil, fmt.Errorf("%s: datasource #%d: missing uid", URL, i)
		}
		if seen[ds.UID] {
			return nil, fmt.Errorf("%s: duplicate datasource uid %q", URL, ds.UID)
		}
		seen[ds.UID] = true
	}
	return file.DataSources, nil
}

// LoadRegistry builds an in-memory registry from the documents at URLs.
func (l *Loader) LoadRegistry(ctx context.Context, URLs ...string) (*memory.Registry, error) {
	ret := memory.New()
	for _, URL := range URLs {
		dataSources, err := l.Load(ctx, URL)
		if err != nil {
			return nil, err
		}
		if err = ret.Register(ctx, dataSources...); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// New creates a loader resolving relative URLs against baseURL.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Loader {
	return &Loader{meta: meta.New(fs, baseURL, options...)}
}
