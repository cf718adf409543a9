package hotfolder

import "errors"

var (
	// ErrWatchCreation is returned when the OS-level watch cannot be installed.
	ErrWatchCreation = errors.New("watch creation failed")
	// ErrDuplicateID is returned by StartWatching under the reject policy.
	ErrDuplicateID = errors.New("hot folder already watched")
	// ErrInvalidConfig marks a config that failed validation.
	ErrInvalidConfig = errors.New("invalid hot folder config")
	// ErrForwarding marks a failed submission or publish. It is logged and counted, never returned to callers.
	ErrForwarding = errors.New("forwarding failed")
	// ErrStaleEvent marks a settled event that arrived after its session was stopped.
	ErrStaleEvent = errors.New("stale event")
	// ErrRegistryClosed is returned when starting a session after Close.
	ErrRegistryClosed = errors.New("registry closed")
)
