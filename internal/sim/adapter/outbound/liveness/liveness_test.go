package liveness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticSet(t *testing.T) {
	s := New("n1", "n2")

	assert.True(t, s.IsLive("n1"))
	assert.False(t, s.IsLive("n3"))

	s.Add("n3")
	assert.True(t, s.IsLive("n3"))

	s.Remove("n1")
	assert.False(t, s.IsLive("n1"))

	assert.Equal(t, []string{"n2", "n3"}, s.Nodes())
}
