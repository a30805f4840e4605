package service

import (
	"strings"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port"
	"github.com/anthanhphan/gosdk/logger"
)

// metricsResolver resolves synthetic per-replica metric identifiers of
// the form
//
//	metrics:solr.core.<collection>.<shard>.<replicaSuffix>:<stat>[:<subStat>]
//
// against the variable maps of the node's simulated replicas.
type metricsResolver struct {
	topology port.TopologyProvider
}

func newMetricsResolver(topology port.TopologyProvider) *metricsResolver {
	return &metricsResolver{topology: topology}
}

// resolve looks up every tag independently. Malformed tags are logged
// and omitted from the result; they never abort the call.
func (m *metricsResolver) resolve(node string, tags []string) map[string]domain.Value {
	res := make(map[string]domain.Value)
	replicas := m.topology.ReplicasOnNode(node)
	if len(replicas) == 0 {
		return res
	}
	for _, tag := range tags {
		parts := strings.Split(tag, ":")
		if len(parts) < 3 || parts[0] != "metrics" {
			logger.Warnw("invalid metrics tag", "tag", tag)
			continue
		}
		if !strings.HasPrefix(parts[1], domain.CoreRegistryPrefix) {
			logger.Warnw("unsupported metric registry", "tag", tag)
			continue
		}
		coreParts := strings.Split(strings.TrimPrefix(parts[1], domain.CoreRegistryPrefix), ".")
		if len(coreParts) != 3 {
			logger.Warnw("invalid core registry name", "registry", parts[1])
			continue
		}
		collection, shard, replicaSuffix := coreParts[0], coreParts[1], coreParts[2]

		// Compound stat names carry one colon of their own.
		statKey := parts[2]
		if len(parts) > 3 {
			statKey = parts[2] + ":" + parts[3]
		}

		matches := 0
		recorded := false
		for i := range replicas {
			r := &replicas[i]
			if r.Collection != collection || r.Shard != shard || !strings.HasSuffix(r.Core, replicaSuffix) {
				continue
			}
			matches++
			if matches > 1 {
				logger.Warnw("multiple replicas match metrics tag", "tag", tag, "core", r.Core)
			}
			if recorded {
				continue
			}
			value, ok := r.Variable(statKey)
			if !ok {
				// Precomputed synthetic metrics may be stored under
				// their full tag name.
				value, ok = r.Variable(tag)
			}
			if ok {
				res[tag] = domain.Scalar(value)
				recorded = true
			}
		}
	}
	return res
}
