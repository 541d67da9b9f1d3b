package astro

import "fmt"

// IncompletePositionDataError indicates that a required graha or ascendant
// position is missing or malformed. It is raised before any grid is built and
// is fatal for the whole calculation.
type IncompletePositionDataError struct {
	Message string
}

// Error returns the error message string.
func (e *IncompletePositionDataError) Error() string {
	return e.Message
}

// NewIncompletePositionDataError creates a new IncompletePositionDataError
// with a formatted message.
func NewIncompletePositionDataError(format string, args ...interface{}) error {
	return &IncompletePositionDataError{
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidGrahaError indicates an identifier outside the seven recognized
// grahas. It is fatal only for the lookup that raised it.
type InvalidGrahaError struct {
	Name string
}

// Error returns the error message string.
func (e *InvalidGrahaError) Error() string {
	return fmt.Sprintf("unrecognized graha: %s", e.Name)
}

// NewInvalidGrahaError creates a new InvalidGrahaError for the given name.
func NewInvalidGrahaError(name string) error {
	return &InvalidGrahaError{Name: name}
}
