package domain

import "errors"

// Failure taxonomy for the relay core. External-call failures are converted
// to one of these at the boundary of the component that made the call; raw
// transport errors never cross back into the services.
var (
	// ErrInvalidSignal rejects a malformed or incomplete inbound signal.
	ErrInvalidSignal = errors.New("invalid signal")

	// ErrSessionNotFound means an interaction referenced an unknown or
	// evicted session. Surfaced to the end user as "session expired".
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateSession means a session key was reused. Integration bug.
	ErrDuplicateSession = errors.New("duplicate session")

	// ErrInvalidTransition rejects a detail-to-detail hop. Benign race
	// (two quick taps on stale buttons), swallowed from the user's side.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrContentProvider covers timeouts, non-2xx responses and malformed
	// payloads from chart/news/calendar services.
	ErrContentProvider = errors.New("content provider failure")

	// ErrDelivery covers messaging gateway send/edit rejections.
	ErrDelivery = errors.New("delivery failure")
)
