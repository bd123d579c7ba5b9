package projection

import (
	"errors"
	"fmt"
)

// ErrNilCorrelation reports a null entry in a server response. It fails the
// projection under every policy.
var ErrNilCorrelation = errors.New("projection: nil correlation")

// Role names the end of a correlation that failed to resolve.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// ResolutionError reports a correlation referencing a data source the
// registry does not know.
type ResolutionError struct {
	CorrelationUID string
	DataSourceUID  string
	Role           Role
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("correlation %q: %s data source %q not found", e.CorrelationUID, e.Role, e.DataSourceUID)
}
