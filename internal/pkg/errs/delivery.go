package errs

import (
	"errors"
	"fmt"
)

var ErrDeliveryFailed = errors.New("delivery failed")

// DeliveryError wraps a failed outbound message. It is always handled at the
// notification, broadcast or sweep boundary and never aborts a mutation.
type DeliveryError struct {
	Recipient any
	Cause     error
}

func NewDeliveryError(recipient any, cause error) *DeliveryError {
	return &DeliveryError{Recipient: recipient, Cause: cause}
}

func (e *DeliveryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: recipient %s (cause: %v)", ErrDeliveryFailed, sanitize(e.Recipient), e.Cause)
	}
	return fmt.Sprintf("%s: recipient %s", ErrDeliveryFailed, sanitize(e.Recipient))
}

func (e *DeliveryError) Unwrap() error {
	return ErrDeliveryFailed
}
