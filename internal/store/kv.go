// Package store holds the two persistence surfaces of the assistant: a small
// key/value store for device-local records (location, contacts, checklist) and
// the saved-location collection mirrored from every location adoption.
package store

// Keys for the device-local key/value store.
const (
	KeyLocation  = "location"
	KeyContacts  = "emergencyContacts"
	KeyChecklist = "emergencyChecklist"
)

// KV is the device-local persistent key/value contract. Values are JSON
// documents; writes are atomic from the caller's perspective.
type KV interface {
	// Get unmarshals the value stored under key into out. The boolean is
	// false when the key has never been written.
	Get(key string, out any) (bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value any) error
}
