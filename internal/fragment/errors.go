package fragment

import "fmt"

// InvalidConfigurationError reports that a single annotation's parameters are
// malformed or missing. It is raised at attach time, before any composition
// happens, and is local to the annotation that produced it.
type InvalidConfigurationError struct {
	Category Category
	Field    string
	Reason   string
}

// Error implements the error interface.
func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s configuration: field %q %s", e.Category, e.Field, e.Reason)
}
