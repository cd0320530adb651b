package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for transport-level failures. Handlers map these to
// 504 and 502 respectively.
var (
	ErrTimeout     = errors.New("upstream request timed out")
	ErrUnreachable = errors.New("upstream unreachable")
)

// StatusError is returned when the upstream answered with a non-2xx
// status. Code and Body are propagated to the caller as-is.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// classify sorts a transport error from http.Client.Do into the
// timeout/unreachable taxonomy, keeping the cause in the message.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
