package layout

import "fmt"

// InputError is returned when the fitter is handed a document it cannot read at all.
// Missing optional fields never produce it.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout input error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("layout input error: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}
