package contacts

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/lifeline-sos/lifeline/kvstore"
	"github.com/lifeline-sos/lifeline/logger"
	"github.com/lifeline-sos/lifeline/phone"
	"github.com/pkg/errors"
)

// STORAGE_KEY holds the whole contact list as one JSON array; every
// mutation rewrites it in full.
const STORAGE_KEY = "contacts"

const minPhoneDigits = 7

var logg = logger.NewLogger()

// Store owns the ordered list of trusted contacts. Insertion order is
// significant for both display and the recipient list.
type Store struct {
	kv       kvstore.Store
	contacts []Contact
}

// NewStore loads the contact list from storage once. A missing or
// unreadable record yields an empty list, never an error.
func NewStore(kv kvstore.Store) *Store {
	store := &Store{kv: kv}

	raw, ok, err := kv.Get(STORAGE_KEY)
	if err != nil {
		logg.Warnf("unable to read saved contacts, starting empty: %v", err)
		return store
	}

	if !ok {
		return store
	}

	if err := json.Unmarshal([]byte(raw), &store.contacts); err != nil {
		logg.Warnf("saved contacts are corrupt, starting empty: %v", err)
		store.contacts = nil
	}

	return store
}

// Add validates & appends a new contact, then persists the deduplicated
// list. The returned contact is the one that survives for the given phone
// i.e. the pre-existing entry when the new one is dropped as a duplicate.
func (s *Store) Add(name, phoneText string) (Contact, error) {
	trimmedPhone := strings.TrimSpace(phoneText)
	if trimmedPhone == "" {
		return Contact{}, ErrEmptyPhone
	}

	if phone.IsBlocked(trimmedPhone) {
		return Contact{}, ErrBlockedNumber
	}

	if len(phone.Normalize(trimmedPhone)) < minPhoneDigits {
		return Contact{}, ErrTooShort
	}

	contact := Contact{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Phone: trimmedPhone,
	}

	// Dedup key is the raw phone string, NOT the normalized digits. Two
	// entries that differ only in formatting both survive.
	deduped := dedupByRawPhone(append(s.snapshot(), contact))

	if err := s.persist(deduped); err != nil {
		return Contact{}, err
	}
	s.contacts = deduped

	for _, c := range s.contacts {
		if c.Phone == contact.Phone {
			return c, nil
		}
	}

	return contact, nil
}

// Remove filters out the contact with the given id. Removing an unknown
// id is a no-op that still rewrites the (unchanged) list.
func (s *Store) Remove(id string) error {
	remaining := []Contact{}
	for _, c := range s.contacts {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}

	if err := s.persist(remaining); err != nil {
		return err
	}
	s.contacts = remaining

	return nil
}

// List returns the contacts in insertion order.
func (s *Store) List() []Contact {
	return s.snapshot()
}

// RecipientsCSV joins the raw phone fields of all contacts, in store
// order, with commas. Empty store -> empty string.
func (s *Store) RecipientsCSV() string {
	phones := []string{}
	for _, c := range s.contacts {
		phones = append(phones, c.Phone)
	}

	return strings.Join(phones, ",")
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func (s *Store) snapshot() []Contact {
	return append([]Contact{}, s.contacts...)
}

func (s *Store) persist(list []Contact) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "failed to encode contacts")
	}

	return s.kv.Set(STORAGE_KEY, string(raw))
}

func dedupByRawPhone(list []Contact) []Contact {
	seen := map[string]bool{}
	result := []Contact{}

	for _, c := range list {
		if seen[c.Phone] {
			continue
		}
		seen[c.Phone] = true
		result = append(result, c)
	}

	return result
}
