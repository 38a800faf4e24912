package verify

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"godyn/domain/block"
	"godyn/domain/compiler"
	"godyn/domain/spec"
)

// nameIndex maps block names to stable graph node IDs.
type nameIndex struct {
	ids   map[string]int64
	names map[int64]string
}

func newNameIndex() *nameIndex {
	return &nameIndex{ids: make(map[string]int64), names: make(map[int64]string)}
}

func (x *nameIndex) id(name string) int64 {
	if id, ok := x.ids[name]; ok {
		return id
	}
	id := int64(len(x.ids))
	x.ids[name] = id
	x.names[id] = name
	return id
}

// covariantAcyclicityCheck builds the directed graph of covariant,
// non-temporal wirings and reports every elementary cycle as an error.
// Temporal and contravariant edges legitimately cross timestep or
// direction boundaries and are excluded; any remaining cycle is an
// algebraic same-timestep loop.
func covariantAcyclicityCheck() GenericCheck {
	const id = "covariant_acyclicity"
	return GenericCheck{ID: id, Run: func(ir *compiler.SystemIR) []Finding {
		g := simple.NewDirectedGraph()
		index := newNameIndex()

		for _, b := range ir.Blocks {
			nodeID := index.id(b.Name)
			if g.Node(nodeID) == nil {
				g.AddNode(simple.Node(nodeID))
			}
		}

		var selfLoops []compiler.WiringIR
		for _, w := range ir.Wirings {
			if w.Direction != block.Covariant || w.IsTemporal {
				continue
			}
			if _, ok := ir.BlockByName(w.SourceBlock); !ok {
				continue
			}
			if _, ok := ir.BlockByName(w.TargetBlock); !ok {
				continue
			}
			if w.SourceBlock == w.TargetBlock {
				// simple graphs reject self edges; a self wiring is
				// already a one-block cycle.
				selfLoops = append(selfLoops, w)
				continue
			}
			from := simple.Node(index.id(w.SourceBlock))
			to := simple.Node(index.id(w.TargetBlock))
			g.SetEdge(g.NewEdge(from, to))
		}

		var findings []Finding
		for _, w := range selfLoops {
			findings = append(findings, fail(id, SeverityError,
				[]string{w.SourceBlock},
				"block %q feeds itself covariantly within one timestep", w.SourceBlock))
		}

		for _, cycle := range topo.DirectedCyclesIn(g) {
			names := cycleNames(cycle, index)
			findings = append(findings, fail(id, SeverityError, names,
				"covariant cycle within one timestep: %s", strings.Join(names, " -> ")))
		}

		if len(findings) == 0 {
			findings = append(findings, pass(id, "covariant non-temporal wiring graph is acyclic"))
		}
		return findings
	}}
}

// cycleNames lists the distinct block names of one cycle in a stable
// order. DirectedCyclesIn repeats the start node at the cycle's end.
func cycleNames(cycle []graph.Node, index *nameIndex) []string {
	seen := make(map[string]bool, len(cycle))
	var names []string
	for _, n := range cycle {
		name := index.names[n.ID()]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ReachabilityCheck builds a semantic check answering one query: is
// there a path from one named block to another over the registry's
// declared wirings, in any group.
func ReachabilityCheck(from, to string) SemanticCheck {
	const id = "reachability"
	return SemanticCheck{ID: id, Run: func(s *spec.GDSSpec) []Finding {
		g := simple.NewDirectedGraph()
		index := newNameIndex()

		for _, rb := range s.Blocks() {
			nodeID := index.id(rb.Name())
			if g.Node(nodeID) == nil {
				g.AddNode(simple.Node(nodeID))
			}
		}
		for _, groupName := range s.WiringGroupNames() {
			group, _ := s.WiringGroup(groupName)
			for _, w := range group {
				if w.SourceBlock == w.TargetBlock {
					continue
				}
				if _, ok := s.Block(w.SourceBlock); !ok {
					continue
				}
				if _, ok := s.Block(w.TargetBlock); !ok {
					continue
				}
				src := simple.Node(index.id(w.SourceBlock))
				dst := simple.Node(index.id(w.TargetBlock))
				g.SetEdge(g.NewEdge(src, dst))
			}
		}

		if _, ok := s.Block(from); !ok {
			return []Finding{fail(id, SeverityError, []string{from},
				"reachability query names unknown block %q", from)}
		}
		if _, ok := s.Block(to); !ok {
			return []Finding{fail(id, SeverityError, []string{to},
				"reachability query names unknown block %q", to)}
		}

		if from == to {
			return []Finding{pass(id, "block %q trivially reaches itself", from)}
		}

		target := index.id(to)
		var bfs traverse.BreadthFirst
		found := bfs.Walk(g, simple.Node(index.id(from)), func(n graph.Node, d int) bool {
			return n.ID() == target
		})
		if found == nil {
			return []Finding{fail(id, SeverityWarning, []string{from, to},
				"no declared wiring path from %q to %q", from, to)}
		}
		return []Finding{pass(id, "%q reaches %q over declared wirings", from, to)}
	}}
}
