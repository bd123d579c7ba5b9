// Package idgen generates correlation UIDs for in-process backends so that
// tests can stub them. Callers must treat identifiers as opaque strings.
package idgen
