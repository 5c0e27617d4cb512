// Package kvstore provides the key-value persistence capability the core
// components write through. Callers treat values as opaque strings; absence
// is not an error.
package kvstore

// Store is implemented by anything that can durably hold string values by key.
type Store interface {
	// Get returns the value for key, and whether the key was present.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}
