package verify

import (
	"github.com/montanaflynn/stats"

	"godyn/domain/compiler"
)

// topologyProfileCheck is informational only: it summarizes the compiled
// topology (block and wiring counts, covariant fan-out distribution) for
// dashboards and reports. It never fails.
func topologyProfileCheck() GenericCheck {
	const id = "topology_profile"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		if len(ir.Blocks) == 0 {
			return []Finding{pass(id, "empty system: no blocks compiled")}
		}

		outDegree := make(map[string]float64, len(ir.Blocks))
		for _, b := range ir.Blocks {
			outDegree[b.Name] = 0
		}
		for _, w := range ir.Wirings {
			if _, ok := outDegree[w.SourceBlock]; ok {
				outDegree[w.SourceBlock]++
			}
		}

		degrees := make([]float64, 0, len(outDegree))
		for _, d := range outDegree {
			degrees = append(degrees, d)
		}

		mean, err := stats.Mean(degrees)
		if err != nil {
			mean = 0
		}
		max, err := stats.Max(degrees)
		if err != nil {
			max = 0
		}

		return []Finding{pass(id,
			"%d blocks, %d wirings, mean fan-out %.2f, max fan-out %.0f",
			len(ir.Blocks), len(ir.Wirings), mean, max)}
	}}
}
