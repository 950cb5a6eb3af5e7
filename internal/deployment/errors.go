package deployment

import "fmt"

// ApplyError reports that the external orchestration platform rejected or
// failed a deployment registration. The underlying platform error is
// preserved and reachable via errors.Unwrap.
type ApplyError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("failed to apply deployment %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying platform error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}
