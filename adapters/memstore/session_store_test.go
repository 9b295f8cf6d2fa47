package memstore

import (
	"testing"
	"time"

	"aeon/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	store := New(time.Hour)

	session := store.Create()
	require.NotEmpty(t, session.Token)

	got, err := store.Get(session.Token)
	require.NoError(t, err)
	assert.Same(t, session, got)
	assert.Equal(t, 1, store.Count())
}

func TestTokensAreUnique(t *testing.T) {
	store := New(time.Hour)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := store.Create().Token
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestGetUnknownToken(t *testing.T) {
	store := New(time.Hour)

	_, err := store.Get("nope")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSessionNotFound, errors.GetCode(err))

	_, err = store.GetActive("nope")
	require.Error(t, err)
	assert.Equal(t, errors.CodeSessionNotFound, errors.GetCode(err))
}

func TestExpiryBoundary(t *testing.T) {
	clock := time.Now().UTC()
	store := NewWithClock(time.Hour, func() time.Time { return clock })

	session := store.Create()

	// Just inside the TTL
	clock = session.CreatedAt.Add(time.Hour - time.Second)
	_, err := store.GetActive(session.Token)
	assert.NoError(t, err)

	// Just past the TTL
	clock = session.CreatedAt.Add(time.Hour + time.Second)
	_, err = store.GetActive(session.Token)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSessionExpired, errors.GetCode(err))

	// The entry itself is retained
	_, err = store.Get(session.Token)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Count())
}

func TestDeleteIdempotent(t *testing.T) {
	store := New(time.Hour)
	session := store.Create()

	store.Delete(session.Token)
	store.Delete(session.Token) // no-op the second time

	_, err := store.Get(session.Token)
	assert.Equal(t, errors.CodeSessionNotFound, errors.GetCode(err))
	assert.Equal(t, 0, store.Count())
}

func TestSnapshot(t *testing.T) {
	store := New(time.Hour)
	store.Create()
	store.Create()

	assert.Len(t, store.Snapshot(), 2)
}
