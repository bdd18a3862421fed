package entity

// SessionState tracks the lifecycle of the single browser session owned by a
// research run. PageActive implies a launched browser with one open page.
type SessionState string

const (
	SessionUninitialized SessionState = "uninitialized"
	SessionLaunched      SessionState = "launched"
	SessionPageActive    SessionState = "page_active"
	SessionClosed        SessionState = "closed"
)

func (s SessionState) String() string {
	return string(s)
}
