package main

import (
	"context"
	"errors"

	"github.com/fwojciec/movies"
)

// errorMessage returns the message shown to the user for err. Cancellation
// and deadlines are reported as such instead of as internal errors.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return movies.ErrorMessage(err)
	}
}
