package correlations

import "errors"

// ErrReadOnly is returned by mutations when the service is read-only.
var ErrReadOnly = errors.New("correlations: read-only")
