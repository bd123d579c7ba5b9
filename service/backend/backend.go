package backend

import (
	"context"
	"net/url"
)

// Service issues JSON requests against resource paths. body is encoded as the
// request payload; out, when non-nil, receives the decoded response.
type Service interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

const (
	// CorrelationsPath lists correlations across all data sources.
	CorrelationsPath = "/api/datasources/correlations"
	dataSourcesPath  = "/api/datasources/uid/"
	correlationsPart = "/correlations"
)

// SourceCorrelationsPath returns the collection of correlations owned by a
// source data source.
func SourceCorrelationsPath(sourceUID string) string {
	return dataSourcesPath + url.PathEscape(sourceUID) + correlationsPart
}

// CorrelationPath returns the resource of a single correlation.
func CorrelationPath(sourceUID, uid string) string {
	return SourceCorrelationsPath(sourceUID) + "/" + url.PathEscape(uid)
}
