package resolve

import "github.com/poiesic/ingres/core"

// Monitor provides hooks to observe the resolution pipeline.
// Implement this interface to explain why a query resolved the way it did.
type Monitor interface {
	Start(query string, years []int)
	StateCandidate(match NameMatch)
	DistrictCandidate(match NameMatch)
	ComparedDistricts(districts []string)
	SemanticHits(hits []core.ScoredHit)
	Finish(result *core.QueryResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []int)         {}
func (n *noopMonitor) StateCandidate(_ NameMatch)      {}
func (n *noopMonitor) DistrictCandidate(_ NameMatch)   {}
func (n *noopMonitor) ComparedDistricts(_ []string)    {}
func (n *noopMonitor) SemanticHits(_ []core.ScoredHit) {}
func (n *noopMonitor) Finish(_ *core.QueryResult)      {}
