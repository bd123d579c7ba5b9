package model

// DataSource describes an external queryable backend. Descriptors are owned
// by a registry outside this module; correlations only reference them by UID.
type DataSource struct {
	UID      string         `json:"uid" yaml:"uid"`
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type" yaml:"type"`
	ReadOnly bool           `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	Meta     DataSourceMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// DataSourceMeta carries plugin presentation metadata.
type DataSourceMeta struct {
	Info DataSourceInfo `json:"info,omitempty" yaml:"info,omitempty"`
}

// DataSourceInfo holds plugin logos.
type DataSourceInfo struct {
	Logos Logos `json:"logos,omitempty" yaml:"logos,omitempty"`
}

// Logos lists logo URLs by size.
type Logos struct {
	Small string `json:"small,omitempty" yaml:"small,omitempty"`
	Large string `json:"large,omitempty" yaml:"large,omitempty"`
}
