package domain

import "strings"

const (
	// NodeRoleKey is the node-state key whose mutations feed the
	// persisted role index.
	NodeRoleKey = "nodeRole"

	// MetricsTagPrefix marks a request tag as a synthetic metrics
	// identifier instead of a plain stored key.
	MetricsTagPrefix = "metrics:"

	// CoreRegistryPrefix is the only metric registry the resolver
	// understands: per-core replica metrics.
	CoreRegistryPrefix = "solr.core."
)

// IsMetricsTag classifies a request tag.
func IsMetricsTag(tag string) bool {
	return strings.HasPrefix(tag, MetricsTagPrefix)
}
