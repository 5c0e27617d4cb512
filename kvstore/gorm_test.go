package kvstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGormStoreRoundTrip(t *testing.T) {
	rootDir := t.TempDir()

	store, err := NewGormStore(rootDir)
	assert.Nil(t, err)

	_, ok, err := store.Get("user_name")
	assert.Nil(t, err)
	assert.False(t, ok)

	assert.Nil(t, store.Set("user_name", "Alex"))
	assert.Nil(t, store.Set("user_name", "Ama"))

	value, ok, err := store.Get("user_name")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ama", value, "Set should replace the previous value")

	// A fresh store over the same directory sees the same data
	reopened, err := NewGormStore(rootDir)
	assert.Nil(t, err)

	value, ok, err = reopened.Get("user_name")
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ama", value)
}
