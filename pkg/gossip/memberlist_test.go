package gossip

import (
	"testing"

	"github.com/hashicorp/memberlist"
)

func TestMembership_LocalNode(t *testing.T) {
	m := &Membership{conf: &memberlist.Config{Name: "sim-node-1"}}
	if got := m.LocalNode(); got != "sim-node-1" {
		t.Errorf("expected sim-node-1, got %s", got)
	}
}
