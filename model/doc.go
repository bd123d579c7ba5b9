// Package model contains the in-memory representation of correlations, the
// data-source descriptors they link and the resolved views handed to
// presentation code.
//
// Correlation mirrors the wire format of the remote collection resource.
// View is a derived projection: it is rebuilt from the raw list and a
// registry snapshot every time the list changes and is never persisted.
package model
