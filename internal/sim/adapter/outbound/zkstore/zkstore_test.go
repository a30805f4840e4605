package zkstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentChain(t *testing.T) {
	assert.Empty(t, parentChain("/roles.json"))
	assert.Equal(t, []string{"/solr"}, parentChain("/solr/roles.json"))
	assert.Equal(t, []string{"/solr", "/solr/configs"}, parentChain("/solr/configs/roles.json"))
}

func TestParentChain_SkipsEmptySegments(t *testing.T) {
	assert.Equal(t, []string{"/a", "/a/b"}, parentChain("//a//b/c"))
}
