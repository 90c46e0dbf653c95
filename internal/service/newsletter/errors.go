package newsletter

import "fmt"

// DispatchError reports a failed send during fan-out, carrying the
// recipient so operators know where delivery stopped.
type DispatchError struct {
	Recipient string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to send newsletter issue to %s", e.Recipient)
}

func (e *DispatchError) Unwrap() error { return e.Err }
