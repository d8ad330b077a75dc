package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Delivery & third-party errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrDeliveryFailed     = errors.New("delivery failed")
)

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured", service),
	}
}

// NewDeliveryError reports that a message could not be handed to an external handler
func NewDeliveryError(what string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrDeliveryFailed,
		Details:    fmt.Sprintf("Could not deliver %s", what),
		Cause:      cause,
	}
}

func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsDeliveryError(err error) bool {
	return errors.Is(err, ErrDeliveryFailed)
}
