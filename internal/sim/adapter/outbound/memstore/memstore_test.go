package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetDataOverwritesAndBumpsVersion(t *testing.T) {
	s := New()

	assert.NoError(t, s.SetData("/roles.json", []byte(`{"a":["n1"]}`), -1))
	assert.NoError(t, s.SetData("/roles.json", []byte(`{"b":["n2"]}`), -1))

	data, ok := s.GetData("/roles.json")
	assert.True(t, ok)
	assert.Equal(t, `{"b":["n2"]}`, string(data))
	assert.Equal(t, int32(2), s.Version("/roles.json"))
}

func TestStore_GetDataUnknownPath(t *testing.T) {
	s := New()
	_, ok := s.GetData("/missing")
	assert.False(t, ok)
	assert.Equal(t, int32(0), s.Version("/missing"))
}

func TestStore_GetDataReturnsCopy(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetData("/p", []byte("abc"), -1))

	data, _ := s.GetData("/p")
	data[0] = 'x'

	again, _ := s.GetData("/p")
	assert.Equal(t, "abc", string(again))
}
