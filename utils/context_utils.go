package utils

import "golang.org/x/net/context"

// CheckContextDone polls a provided context in a non-blocking fashion and returns a boolean indicating whether it
// has been cancelled or timed out.
func CheckContextDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
