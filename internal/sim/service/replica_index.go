package service

import (
	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
)

// replicaIndexer groups a node's replicas by collection then shard.
type replicaIndexer struct {
	topology port.TopologyProvider
}

func newReplicaIndexer(topology port.TopologyProvider) *replicaIndexer {
	return &replicaIndexer{topology: topology}
}

func (ix *replicaIndexer) group(node string) map[string]map[string][]domain.ReplicaInfo {
	res := make(map[string]map[string][]domain.ReplicaInfo)
	for _, r := range ix.topology.ReplicasOnNode(node) {
		perCollection, ok := res[r.Collection]
		if !ok {
			perCollection = make(map[string][]domain.ReplicaInfo)
			res[r.Collection] = perCollection
		}
		perCollection[r.Shard] = append(perCollection[r.Shard], r)
	}
	return res
}
