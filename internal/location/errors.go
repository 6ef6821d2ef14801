package location

import "fmt"

// ValidationError reports bad user input during a manual location save. The
// current location is left untouched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GeolocationError reports that device geolocation (or the reverse geocode it
// feeds) failed. It always carries the underlying reason; callers must not
// fall back silently.
type GeolocationError struct {
	Err error
}

func (e *GeolocationError) Error() string {
	return fmt.Sprintf("geolocation failed: %v", e.Err)
}

func (e *GeolocationError) Unwrap() error {
	return e.Err
}

// PersistenceWriteError reports a failed write to one of the location stores.
// Store is "local" or "remote".
type PersistenceWriteError struct {
	Store string
	Err   error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("%s location write failed: %v", e.Store, e.Err)
}

func (e *PersistenceWriteError) Unwrap() error {
	return e.Err
}
