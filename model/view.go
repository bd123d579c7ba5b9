package model

// View is a correlation with its source and target UIDs replaced by the full
// data-source descriptors. Source and Target are never nil for views built by
// the projection package.
type View struct {
	UID         string      `json:"uid" yaml:"uid"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Source      *DataSource `json:"source" yaml:"source"`
	Target      *DataSource `json:"target" yaml:"target"`
}

// RowID returns an identifier unique across sources.
func (v *View) RowID() string {
	return v.Source.UID + "-" + v.UID
}

// ReadOnly reports whether the correlation belongs to a provisioned, read-only
// source and therefore cannot be edited or deleted.
func (v *View) ReadOnly() bool {
	return v.Source != nil && v.Source.ReadOnly
}

// Ref returns the reference addressing the underlying correlation.
func (v *View) Ref() Ref {
	return Ref{SourceUID: v.Source.UID, UID: v.UID}
}
