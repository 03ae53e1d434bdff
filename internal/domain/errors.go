package domain

import "errors"

// Error taxonomy for the command pipeline. Callers distinguish "nothing
// happened, same input is safe to retry" (validation/state) from "retry
// shortly" (network) from "impossible given elapsed time" (timing).
var (
	// ErrValidation indicates malformed or out-of-range command parameters.
	// The command was never executed.
	ErrValidation = errors.New("invalid command parameters")

	// ErrNetwork indicates the generation or weather backend was unreachable
	// or timed out. The previously accepted plan is untouched; retryable.
	ErrNetwork = errors.New("backend unreachable")

	// ErrSchema indicates the generation backend returned a reply missing
	// required structural fields. Fatal for that request; no partial apply.
	ErrSchema = errors.New("malformed generation reply")

	// ErrState indicates a confirm/cancel referenced an unknown or expired
	// pending action. No side effect occurred.
	ErrState = errors.New("no pending action")

	// ErrTiming indicates the command targets a time slot that has already
	// elapsed in the plan owner's local timezone.
	ErrTiming = errors.New("time slot already elapsed")
)

// Retryable reports whether err represents a transient backend failure the
// caller should retry shortly.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
