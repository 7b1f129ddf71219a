package graph

import "math"

// CohesionBreakdown shows the sub-scores of the cohesion formula
type CohesionBreakdown struct {
	Connectivity float64 `json:"connectivity"`
	Components   float64 `json:"components"`
	Fragility    float64 `json:"fragility"`
}

// AnalysisReport is the full analysis of the visible map
type AnalysisReport struct {
	Cohesion          float64           `json:"cohesion"`
	CohesionBreakdown CohesionBreakdown `json:"cohesion_breakdown"`
	Topology          *TopologyReport   `json:"topology"`
	Bridges           *BridgeReport     `json:"bridges"`
}

// AnalyzerConfig holds analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
}

// DefaultAnalyzerConfig returns the CLI defaults
func DefaultAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 10,
		TopN:         20,
	}
}

// Analyze runs topology and bridge analysis over the visible nodes and
// folds them into a 0..1 cohesion score.
func Analyze(s *Store, config *AnalyzerConfig) *AnalysisReport {
	if config == nil {
		config = DefaultAnalyzerConfig()
	}
	topology := ComputeTopology(s, config.HubThreshold, config.TopN)
	bridges := ComputeBridges(s)

	visible := float64(topology.VisibleNodes)
	var connectivity, components, fragility float64
	if visible > 0 {
		connectivity = clamp(1.0-math.Min(float64(topology.OrphanCount)/visible, 0.2)*5.0, 0, 1)
		fragility = clamp(1.0-math.Min(float64(bridges.APCount)/visible, 0.05)*20.0, 0, 1)
	}
	if topology.NumComponents > 0 {
		components = clamp(1.0/float64(topology.NumComponents), 0, 1)
	}

	return &AnalysisReport{
		Cohesion: 0.40*connectivity + 0.30*components + 0.30*fragility,
		CohesionBreakdown: CohesionBreakdown{
			Connectivity: connectivity,
			Components:   components,
			Fragility:    fragility,
		},
		Topology: topology,
		Bridges:  bridges,
	}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
