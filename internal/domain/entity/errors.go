package entity

import "errors"

// Browser-session failure classes. Session operations wrap these so callers
// can classify with errors.Is without depending on engine error types.
var (
	// ErrPrecondition: the session is not in the state the operation requires.
	ErrPrecondition = errors.New("session precondition failed")
	// ErrLaunch: the browser engine could not be spawned or connected to.
	ErrLaunch = errors.New("browser launch failed")
	// ErrNavigation: the target could not be reached or did not quiesce in time.
	ErrNavigation = errors.New("navigation failed")
	// ErrInteraction: an expected page element was absent or rejected the interaction.
	ErrInteraction = errors.New("page interaction failed")
	// ErrExtraction: no extractable content was found on a well-reached page.
	ErrExtraction = errors.New("content extraction failed")
)
