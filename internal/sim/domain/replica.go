package domain

import "fmt"

// ReplicaInfo describes one simulated shard copy hosted on a node.
// Variables doubles as the replica's metric store: synthetic stats are
// looked up there by stat key or by full metrics-tag name.
type ReplicaInfo struct {
	Core       string         `json:"core"`
	Collection string         `json:"collection"`
	Shard      string         `json:"shard"`
	Node       string         `json:"node"`
	Variables  map[string]any `json:"variables,omitempty"`
}

// CoreName builds the conventional core name for a replica. Real core
// names carry generated qualifiers after the shard, which is why
// metrics tags match cores by suffix rather than equality.
func CoreName(collection, shard string, seq int) string {
	return fmt.Sprintf("%s_%s_core_node%d", collection, shard, seq)
}

// Variable returns a variable by key.
func (r *ReplicaInfo) Variable(key string) (any, bool) {
	v, ok := r.Variables[key]
	return v, ok
}

// SetVariable upserts a variable. The map is created lazily so zero
// ReplicaInfo literals stay usable in tests.
func (r *ReplicaInfo) SetVariable(key string, value any) {
	if r.Variables == nil {
		r.Variables = make(map[string]any)
	}
	r.Variables[key] = value
}
