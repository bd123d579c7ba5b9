package model

import "errors"

// Validation errors returned before any request is issued.
var (
	ErrMissingUID       = errors.New("model: missing correlation uid")
	ErrMissingSourceUID = errors.New("model: missing source data source uid")
	ErrMissingTargetUID = errors.New("model: missing target data source uid")
)
