package zkstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/go-zookeeper/zk"
)

// Store persists configuration blobs to ZooKeeper. It is the
// production-faithful sink for the role index.
type Store struct {
	conn *zk.Conn
}

// Ensure Store implements port.ConfigStore.
var _ port.ConfigStore = (*Store)(nil)

// Connect dials the ZooKeeper ensemble.
func Connect(servers []string, sessionTimeout time.Duration) (*Store, error) {
	conn, _, err := zk.Connect(servers, sessionTimeout)
	if err != nil {
		return nil, fmt.Errorf("zk connect: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close tears down the ZooKeeper session.
func (s *Store) Close() error {
	s.conn.Close()
	return nil
}

// SetData writes data at path, creating the znode and its parent chain
// on first write. Version -1 overwrites unconditionally; any other
// value is passed through as ZooKeeper's optimistic version check.
func (s *Store) SetData(path string, data []byte, version int32) error {
	exists, _, err := s.conn.Exists(path)
	if err != nil {
		return fmt.Errorf("zk exists %s: %w", path, err)
	}
	if !exists {
		if err := s.ensureParents(path); err != nil {
			return err
		}
		_, err := s.conn.Create(path, data, 0, zk.WorldACL(zk.PermAll))
		if err == nil {
			return nil
		}
		if err != zk.ErrNodeExists {
			return fmt.Errorf("zk create %s: %w", path, err)
		}
		// Lost the creation race; fall through to Set.
	}
	if _, err := s.conn.Set(path, data, version); err != nil {
		return fmt.Errorf("zk set %s: %w", path, err)
	}
	return nil
}

func (s *Store) ensureParents(path string) error {
	for _, parent := range parentChain(path) {
		exists, _, err := s.conn.Exists(parent)
		if err != nil {
			return fmt.Errorf("zk exists %s: %w", parent, err)
		}
		if !exists {
			_, err = s.conn.Create(parent, nil, 0, zk.WorldACL(zk.PermAll))
			if err != nil && err != zk.ErrNodeExists {
				return fmt.Errorf("zk create %s: %w", parent, err)
			}
		}
	}
	return nil
}

// parentChain lists the ancestor znodes that must exist before path
// can be created, shallowest first. A top-level path has no ancestors
// and empty segments from doubled slashes are skipped.
func parentChain(path string) []string {
	parts := strings.Split(path, "/")
	chain := make([]string, 0, len(parts))
	cur := ""
	for _, p := range parts[:len(parts)-1] {
		if p == "" {
			continue
		}
		cur = cur + "/" + p
		chain = append(chain, cur)
	}
	return chain
}
