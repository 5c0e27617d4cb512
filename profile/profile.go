// Package profile holds the user's display name, persisted independently
// of the contact list.
package profile

import (
	"strings"

	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/logger"
)

const STORAGE_KEY = "user_name"

var logg = logger.NewLogger()

type Store struct {
	kv   kvstore.Store
	name string
}

// NewStore loads the saved display name; absence or a read failure
// defaults to an empty name.
func NewStore(kv kvstore.Store) *Store {
	store := &Store{kv: kv}

	name, ok, err := kv.Get(STORAGE_KEY)
	if err != nil {
		logg.Warnf("unable to read saved name, starting empty: %v", err)
		return store
	}

	if ok {
		store.name = name
	}

	return store
}

func (s *Store) Name() string {
	return s.name
}

// SetName persists the new display name before updating the in-memory copy.
func (s *Store) SetName(name string) error {
	trimmed := strings.TrimSpace(name)

	if err := s.kv.Set(STORAGE_KEY, trimmed); err != nil {
		return err
	}
	s.name = trimmed

	return nil
}
