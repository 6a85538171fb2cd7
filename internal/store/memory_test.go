package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetMissingKey(t *testing.T) {
	s := NewMemory()

	_, err := s.Get(context.Background(), "users")

	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemory_SetAndGet(t *testing.T) {
	s := NewMemory()

	err := s.Set(context.Background(), "users", []byte(`[{"id":"1"}]`))
	require.NoError(t, err)

	value, err := s.Get(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), value)
}

func TestMemory_SetReplaces(t *testing.T) {
	s := NewMemory()

	require.NoError(t, s.Set(context.Background(), "k", []byte("a")))
	require.NoError(t, s.Set(context.Background(), "k", []byte("b")))

	value, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), value)
}

func TestMemory_DeleteIsIdempotent(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Set(context.Background(), "k", []byte("a")))

	require.NoError(t, s.Delete(context.Background(), "k"))
	require.NoError(t, s.Delete(context.Background(), "k"))

	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Set(context.Background(), "k", []byte("abc")))

	value, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	value[0] = 'x'

	again, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestJSONHelpers_RoundTrip(t *testing.T) {
	s := NewMemory()

	type record struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	err := SetJSON(context.Background(), s, "record", record{ID: "1", Name: "A"})
	require.NoError(t, err)

	var out record
	err = GetJSON(context.Background(), s, "record", &out)
	require.NoError(t, err)
	assert.Equal(t, record{ID: "1", Name: "A"}, out)
}

func TestGetJSON_MissingKey(t *testing.T) {
	s := NewMemory()

	var out []string
	err := GetJSON(context.Background(), s, "missing", &out)

	assert.ErrorIs(t, err, ErrKeyNotFound)
}
