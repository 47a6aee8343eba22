package platform

import (
	"fmt"

	"github.com/jonathan/autofill-core/internal/selectors"
)

// ConfigurationError means the registry cannot serve any page, typically
// because no generic factory was registered.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("platform configuration error: %s", e.Message)
}

// NotFoundError is returned when an adapter is requested by id and no
// factory exists for it.
type NotFoundError struct {
	Platform selectors.PlatformID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no adapter registered for platform %q", e.Platform)
}
