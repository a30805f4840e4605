package gossip

import (
	"fmt"
	"io"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/memberlist"
)

// Membership tracks live nodes through memberlist gossip. It satisfies
// the sim's membership port for runs where the live-node set should
// come from a real member list instead of a static harness set.
type Membership struct {
	list *memberlist.Memberlist
	conf *memberlist.Config
}

// Ensure Membership implements the memberlist event hooks.
var _ memberlist.EventDelegate = (*Membership)(nil)

// New creates the local member and starts listening for gossip.
func New(nodeID, bindAddr string, bindPort int) (*Membership, error) {
	config := memberlist.DefaultLANConfig()
	config.Name = nodeID
	config.BindAddr = bindAddr
	config.BindPort = bindPort
	config.AdvertisePort = bindPort

	// memberlist's own log output is noisy; events are logged below.
	config.LogOutput = io.Discard

	m := &Membership{conf: config}
	config.Events = m

	list, err := memberlist.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}
	m.list = list
	return m, nil
}

// Join joins the cluster using seed nodes.
func (m *Membership) Join(seeds []string) error {
	if len(seeds) > 0 {
		if _, err := m.list.Join(seeds); err != nil {
			return fmt.Errorf("failed to join cluster: %w", err)
		}
	}
	return nil
}

// Leave gracefully leaves the cluster and shuts gossip down.
func (m *Membership) Leave() error {
	if err := m.list.Leave(5 * time.Second); err != nil {
		return err
	}
	return m.list.Shutdown()
}

// IsLive reports whether a node of that name is currently a member.
func (m *Membership) IsLive(node string) bool {
	for _, member := range m.list.Members() {
		if member.Name == node {
			return true
		}
	}
	return false
}

// Nodes returns the names of the current members.
func (m *Membership) Nodes() []string {
	members := m.list.Members()
	nodes := make([]string, 0, len(members))
	for _, member := range members {
		nodes = append(nodes, member.Name)
	}
	return nodes
}

// LocalNode returns the local member name.
func (m *Membership) LocalNode() string {
	return m.conf.Name
}

// NotifyJoin is invoked when a node joins.
func (m *Membership) NotifyJoin(node *memberlist.Node) {
	logger.Infow("Node joined", "id", node.Name, "addr", node.Addr.String())
}

// NotifyLeave is invoked when a node leaves or is declared dead.
func (m *Membership) NotifyLeave(node *memberlist.Node) {
	logger.Infow("Node left", "id", node.Name)
}

// NotifyUpdate is invoked when a node's metadata changes.
func (m *Membership) NotifyUpdate(node *memberlist.Node) {
	logger.Debugw("Node updated", "id", node.Name)
}
