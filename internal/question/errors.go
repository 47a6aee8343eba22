package question

import "fmt"

// ValidationError reports raw question data that cannot be canonicalized.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid question: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid question: %s", e.Message)
}
