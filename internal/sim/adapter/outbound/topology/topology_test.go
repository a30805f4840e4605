package topology

import (
	"errors"
	"testing"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
)

func TestAddCollection_PlacesEveryReplicaOnARegisteredNode(t *testing.T) {
	s := New()
	nodes := []string{"n1", "n2", "n3"}
	for _, n := range nodes {
		s.AddNode(n)
	}

	if err := s.AddCollection("c1", 2, 2); err != nil {
		t.Fatalf("AddCollection failed: %v", err)
	}

	registered := map[string]bool{"n1": true, "n2": true, "n3": true}
	total := 0
	shards := map[string]map[string]bool{}
	for _, n := range nodes {
		for _, r := range s.ReplicasOnNode(n) {
			total++
			if !registered[r.Node] {
				t.Fatalf("replica %s placed on unregistered node %s", r.Core, r.Node)
			}
			if r.Collection != "c1" {
				t.Fatalf("unexpected collection %s", r.Collection)
			}
			if shards[r.Shard] == nil {
				shards[r.Shard] = map[string]bool{}
			}
			if shards[r.Shard][r.Node] {
				t.Fatalf("shard %s placed twice on node %s", r.Shard, r.Node)
			}
			shards[r.Shard][r.Node] = true
		}
	}
	if total != 4 {
		t.Fatalf("expected 2 shards x 2 replicas = 4 cores, got %d", total)
	}
	if len(shards) != 2 {
		t.Fatalf("expected 2 shards, got %v", shards)
	}
}

func TestAddCollection_NoNodes(t *testing.T) {
	s := New()
	if err := s.AddCollection("c1", 1, 1); !errors.Is(err, ErrNoNodes) {
		t.Fatalf("expected ErrNoNodes, got %v", err)
	}
}

func TestAddReplica_AndVariableLookup(t *testing.T) {
	s := New()
	err := s.AddReplica(domain.ReplicaInfo{
		Core:       "c1_shard1_core_node1",
		Collection: "c1",
		Shard:      "shard1",
		Node:       "n1",
	})
	if err != nil {
		t.Fatalf("AddReplica failed: %v", err)
	}

	if err := s.SetReplicaVariable("c1_shard1_core_node1", "INDEX.sizeInBytes", 12345); err != nil {
		t.Fatalf("SetReplicaVariable failed: %v", err)
	}

	replicas := s.ReplicasOnNode("n1")
	if len(replicas) != 1 {
		t.Fatalf("expected one replica, got %v", replicas)
	}
	if v, ok := replicas[0].Variable("INDEX.sizeInBytes"); !ok || v != 12345 {
		t.Fatalf("expected variable 12345, got %v (ok=%v)", v, ok)
	}
}

func TestAddReplica_DuplicateCoreRejected(t *testing.T) {
	s := New()
	r := domain.ReplicaInfo{Core: "c", Collection: "c1", Shard: "shard1", Node: "n1"}
	if err := s.AddReplica(r); err != nil {
		t.Fatalf("AddReplica failed: %v", err)
	}
	if err := s.AddReplica(r); !errors.Is(err, ErrCoreExists) {
		t.Fatalf("expected ErrCoreExists, got %v", err)
	}
}

func TestRemoveReplica(t *testing.T) {
	s := New()
	r := domain.ReplicaInfo{Core: "c", Collection: "c1", Shard: "shard1", Node: "n1"}
	if err := s.AddReplica(r); err != nil {
		t.Fatalf("AddReplica failed: %v", err)
	}
	if err := s.RemoveReplica("c"); err != nil {
		t.Fatalf("RemoveReplica failed: %v", err)
	}
	if got := s.ReplicasOnNode("n1"); got != nil {
		t.Fatalf("expected nil after removal, got %v", got)
	}
	if err := s.RemoveReplica("c"); !errors.Is(err, ErrUnknownCore) {
		t.Fatalf("expected ErrUnknownCore, got %v", err)
	}
}

func TestReplicasOnNode_ReturnsCopies(t *testing.T) {
	s := New()
	if err := s.AddReplica(domain.ReplicaInfo{
		Core: "c", Collection: "c1", Shard: "shard1", Node: "n1",
		Variables: map[string]any{"k": 1},
	}); err != nil {
		t.Fatalf("AddReplica failed: %v", err)
	}

	replicas := s.ReplicasOnNode("n1")
	replicas[0].SetVariable("k", 999)

	again := s.ReplicasOnNode("n1")
	if v, _ := again[0].Variable("k"); v != 1 {
		t.Fatalf("mutating a returned replica leaked into the simulator: %v", v)
	}
}

func TestSetReplicaVariable_UnknownCore(t *testing.T) {
	s := New()
	if err := s.SetReplicaVariable("ghost", "k", 1); !errors.Is(err, ErrUnknownCore) {
		t.Fatalf("expected ErrUnknownCore, got %v", err)
	}
}
