// This file contains thin wrappers around the graph module
// for managing graph structures in the tournament data.
package internal

import (
	"iter"
	"strconv"
	"sync/atomic"

	"github.com/dominikbraun/graph"
)

// Node ids are shared by all tournaments of the process.
// Independent tournaments may be built concurrently (see the odds
// package) so the counter is atomic.
var nodeId atomic.Int64

func NextNodeId() int {
	return int(nodeId.Add(1) - 1)
}

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
	adjancencyMap map[int]map[int]graph.Edge[int]
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	err := g.Graph.AddEdge(source.Id(), target.Id())
	return err
}

func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.Id(), visitor)
	}
	return iterator
}

func (g *DependencyGraph[T]) outEdges(source T) map[int]graph.Edge[int] {
	if g.adjancencyMap == nil {
		// Since the graphs do not change after their initialization
		// the adjacency map is stored on the first call
		g.adjancencyMap, _ = g.Graph.AdjacencyMap()
	}
	return g.adjancencyMap[source.Id()]
}

// A RankingGraph contains all rankings of a tournament as its
// nodes. The directed edges between the nodes model the dependencies
// between the rankings.
//
// If a ranking reads the result of another ranking
// it will have an incoming edge from that ranking.
//
// The graph is acyclic and forms a topological hierarchy which determines
// the order in which rankings have to be updated in order to properly
// propagate a change.
type RankingGraph struct {
	DependencyGraph[Ranking]
}

func NewRankingGraph(root Ranking) *RankingGraph {
	graph := DependencyGraph[Ranking]{
		Graph: graph.New(getNodeId[Ranking], graph.Directed(), graph.Acyclic()),
	}
	rankingGraph := &RankingGraph{DependencyGraph: graph}
	rankingGraph.AddVertex(root)
	return rankingGraph
}

// Outcome names which team of a match moves along an
// edge of the EliminationGraph.
type Outcome string

const (
	AdvanceWinner Outcome = "winner"
	AdvanceLoser  Outcome = "loser"
)

const (
	outcomeAttribute = "outcome"
	slotAttribute    = "slot"
)

// An Advancement is an outgoing edge of a knockout match.
// The winner or loser of the source match takes the
// slot (1 or 2) of the target match.
type Advancement struct {
	Target  *Match
	Outcome Outcome
	Slot    int
}

// The EliminationGraph has all matches of the knockout stage
// as its nodes. The edges between the nodes model the path
// that the teams take towards the final like a conventional
// tournament tree. The semi-final losers additionally have
// an edge into the third place match.
type EliminationGraph struct {
	DependencyGraph[*Match]
}

// Links the source match to the target match. The team with the
// given outcome in the source match is placed into the slot of
// the target match once the source match is played.
func (g *EliminationGraph) AddAdvancement(source, target *Match, outcome Outcome, slot int) error {
	g.AddVertex(source)
	g.AddVertex(target)
	g.adjancencyMap = nil

	return g.Graph.AddEdge(
		source.Id(),
		target.Id(),
		graph.EdgeAttribute(outcomeAttribute, string(outcome)),
		graph.EdgeAttribute(slotAttribute, strconv.Itoa(slot)),
	)
}

// Returns the advancements out of the given match
// ordered by their target's id.
func (g *EliminationGraph) Advancements(source *Match) []Advancement {
	outEdges := g.outEdges(source)
	advancements := make([]Advancement, 0, len(outEdges))
	for k, edge := range outEdges {
		target, err := g.Vertex(k)
		if err != nil {
			continue
		}
		attributes := edge.Properties.Attributes
		slot, _ := strconv.Atoi(attributes[slotAttribute])
		advancements = append(advancements, Advancement{
			Target:  target,
			Outcome: Outcome(attributes[outcomeAttribute]),
			Slot:    slot,
		})
	}

	sortAdvancements(advancements)

	return advancements
}

// Returns the matches whose results feed into the given match
func (g *EliminationGraph) Sources(target *Match) []*Match {
	predecessors, err := g.Graph.PredecessorMap()
	if err != nil {
		return nil
	}
	sources := make([]*Match, 0, 2)
	for k := range predecessors[target.Id()] {
		source, err := g.Vertex(k)
		if err == nil {
			sources = append(sources, source)
		}
	}
	sortMatches(sources)
	return sources
}

func NewEliminationGraph() *EliminationGraph {
	graph := DependencyGraph[*Match]{
		Graph: graph.New(getNodeId[*Match], graph.Directed(), graph.Acyclic()),
	}
	eliminationGraph := EliminationGraph{DependencyGraph: graph}
	return &eliminationGraph
}
