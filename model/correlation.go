package model

// Correlation represents a declared relationship linking a source data source
// to a target data source. The UID is assigned by the server and never
// changes after creation.
type Correlation struct {
	UID         string `json:"uid" yaml:"uid"`
	SourceUID   string `json:"sourceUID" yaml:"sourceUID"`
	TargetUID   string `json:"targetUID" yaml:"targetUID"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Ref returns the reference addressing this correlation on the server.
func (c *Correlation) Ref() Ref {
	return Ref{SourceUID: c.SourceUID, UID: c.UID}
}

// NewCorrelation describes a correlation that has not been created yet.
type NewCorrelation struct {
	SourceUID   string `json:"sourceUID" yaml:"sourceUID"`
	TargetUID   string `json:"targetUID" yaml:"targetUID"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Validate checks that both ends of the link are set.
func (c *NewCorrelation) Validate() error {
	if c.SourceUID == "" {
		return ErrMissingSourceUID
	}
	if c.TargetUID == "" {
		return ErrMissingTargetUID
	}
	return nil
}

// Body returns the POST payload; the source uid travels in the path.
func (c *NewCorrelation) Body() *CreateBody {
	return &CreateBody{TargetUID: c.TargetUID, Label: c.Label, Description: c.Description}
}

// CreateBody is the POST request payload.
type CreateBody struct {
	TargetUID   string `json:"targetUID"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateCorrelation describes a change to an existing correlation. The target
// of a correlation cannot be changed. A nil Label or Description is left
// untouched by the server; an empty one clears the field.
type UpdateCorrelation struct {
	UID         string  `json:"uid" yaml:"uid"`
	SourceUID   string  `json:"sourceUID" yaml:"sourceUID"`
	Label       *string `json:"label,omitempty" yaml:"label,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// WithLabel sets the label, "" clears it.
func (c *UpdateCorrelation) WithLabel(label string) *UpdateCorrelation {
	c.Label = &label
	return c
}

// WithDescription sets the description, "" clears it.
func (c *UpdateCorrelation) WithDescription(description string) *UpdateCorrelation {
	c.Description = &description
	return c
}

// Validate checks that the correlation can be addressed.
func (c *UpdateCorrelation) Validate() error {
	return c.Ref().Validate()
}

// Ref returns the addressed correlation.
func (c *UpdateCorrelation) Ref() Ref {
	return Ref{SourceUID: c.SourceUID, UID: c.UID}
}

// Body returns the PATCH payload; uid and source uid travel in the path.
func (c *UpdateCorrelation) Body() *UpdateBody {
	return &UpdateBody{Label: c.Label, Description: c.Description}
}

// UpdateBody is the PATCH request payload; only set fields are sent.
type UpdateBody struct {
	Label       *string `json:"label,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Ref addresses a single correlation under its source data source.
type Ref struct {
	SourceUID string `json:"sourceUID" yaml:"sourceUID"`
	UID       string `json:"uid" yaml:"uid"`
}

// Validate checks that both path parameters are present.
func (r Ref) Validate() error {
	if r.SourceUID == "" {
		return ErrMissingSourceUID
	}
	if r.UID == "" {
		return ErrMissingUID
	}
	return nil
}
