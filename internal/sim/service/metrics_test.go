package service

import (
	"testing"

	"github.com/anthanhphan/go-cluster-sim/internal/sim/domain"
	"github.com/anthanhphan/go-cluster-sim/internal/sim/port/mocks"
	"go.uber.org/mock/gomock"
)

const sizeTag = "metrics:solr.core.c1.shard1.core_node1:INDEX.sizeInBytes"

func replicaFixture(vars map[string]any) []domain.ReplicaInfo {
	return []domain.ReplicaInfo{{
		Core:       "c1_shard1_core_node1",
		Collection: "c1",
		Shard:      "shard1",
		Node:       "n1",
		Variables:  vars,
	}}
}

func newMetricsFixture(t *testing.T, replicas []domain.ReplicaInfo) *metricsResolver {
	t.Helper()
	ctrl := gomock.NewController(t)
	topo := mocks.NewMockTopologyProvider(ctrl)
	topo.EXPECT().ReplicasOnNode("n1").Return(replicas).AnyTimes()
	return newMetricsResolver(topo)
}

func TestMetricsResolver_ResolvesStatKey(t *testing.T) {
	m := newMetricsFixture(t, replicaFixture(map[string]any{"INDEX.sizeInBytes": 12345}))

	values := m.resolve("n1", []string{sizeTag})
	if len(values) != 1 {
		t.Fatalf("expected one value, got %v", values)
	}
	if got := values[sizeTag].ScalarValue(); got != 12345 {
		t.Fatalf("expected 12345, got %v", got)
	}
}

func TestMetricsResolver_CompoundStatKey(t *testing.T) {
	tag := "metrics:solr.core.c1.shard1.core_node1:QUERY./select.requestTimes:1minRate"
	m := newMetricsFixture(t, replicaFixture(map[string]any{"QUERY./select.requestTimes:1minRate": 0.5}))

	values := m.resolve("n1", []string{tag})
	if got := values[tag].ScalarValue(); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestMetricsResolver_FallsBackToFullTagLookup(t *testing.T) {
	m := newMetricsFixture(t, replicaFixture(map[string]any{sizeTag: 999}))

	values := m.resolve("n1", []string{sizeTag})
	if got := values[sizeTag].ScalarValue(); got != 999 {
		t.Fatalf("expected full-tag fallback to yield 999, got %v", got)
	}
}

func TestMetricsResolver_MalformedTagsAreSkippedNotFatal(t *testing.T) {
	m := newMetricsFixture(t, replicaFixture(map[string]any{"INDEX.sizeInBytes": 12345}))

	values := m.resolve("n1", []string{
		"metrics:tooShort",                        // fewer than 3 segments
		"metrics:solr.node:freedisk",              // unsupported registry
		"metrics:solr.core.c1.shard1:INDEX.size",  // registry with 2 components
		"bogus:solr.core.c1.shard1.core_node1:x",  // wrong leading segment
		sizeTag,                                   // still resolved
	})
	if len(values) != 1 {
		t.Fatalf("expected only the valid tag resolved, got %v", values)
	}
	if _, ok := values[sizeTag]; !ok {
		t.Fatalf("valid tag missing from result: %v", values)
	}
}

func TestMetricsResolver_NoMatchingReplica(t *testing.T) {
	m := newMetricsFixture(t, replicaFixture(map[string]any{"INDEX.sizeInBytes": 12345}))

	values := m.resolve("n1", []string{"metrics:solr.core.c2.shard1.core_node1:INDEX.sizeInBytes"})
	if len(values) != 0 {
		t.Fatalf("expected no values for non-matching collection, got %v", values)
	}
}

func TestMetricsResolver_NoReplicasOnNode(t *testing.T) {
	ctrl := gomock.NewController(t)
	topo := mocks.NewMockTopologyProvider(ctrl)
	topo.EXPECT().ReplicasOnNode("empty").Return(nil)

	m := newMetricsResolver(topo)
	values := m.resolve("empty", []string{sizeTag})
	if len(values) != 0 {
		t.Fatalf("expected empty result, got %v", values)
	}
}

func TestMetricsResolver_SuffixMatchOnCoreName(t *testing.T) {
	// Real core names carry generated qualifiers; only the suffix has
	// to line up.
	replicas := []domain.ReplicaInfo{{
		Core:       "c1_shard1_replica_n3_core_node7",
		Collection: "c1",
		Shard:      "shard1",
		Node:       "n1",
		Variables:  map[string]any{"INDEX.sizeInBytes": 777},
	}}
	m := newMetricsFixture(t, replicas)

	tag := "metrics:solr.core.c1.shard1.core_node7:INDEX.sizeInBytes"
	values := m.resolve("n1", []string{tag})
	if got := values[tag].ScalarValue(); got != 777 {
		t.Fatalf("expected suffix match to yield 777, got %v", got)
	}
}

func TestMetricsResolver_FirstValueWinsAcrossMultipleMatches(t *testing.T) {
	replicas := []domain.ReplicaInfo{
		{Core: "c1_shard1_core_node1", Collection: "c1", Shard: "shard1", Node: "n1"},
		{Core: "c1_shard1_x_core_node1", Collection: "c1", Shard: "shard1", Node: "n1",
			Variables: map[string]any{"INDEX.sizeInBytes": 1}},
		{Core: "c1_shard1_y_core_node1", Collection: "c1", Shard: "shard1", Node: "n1",
			Variables: map[string]any{"INDEX.sizeInBytes": 2}},
	}
	m := newMetricsFixture(t, replicas)

	values := m.resolve("n1", []string{sizeTag})
	if got := values[sizeTag].ScalarValue(); got != 1 {
		t.Fatalf("expected first non-missing value to win, got %v", got)
	}
}
