package internal

import (
	"slices"
	"strings"
)

// A Ranking orders a set of teams according to an implementation specific metric.
type Ranking interface {
	// Returns the current ranks
	GetRanks() []*Team

	// Returns the occupant of the ith place in the Ranking.
	// Returns nil if the place is unoccupied or out of bounds.
	At(i int) *Team

	// Updates the return value of the GetRanks() method.
	// Should be called whenever a result that influences the
	// ranking becomes known.
	UpdateRanks() error

	GraphNode
}

type BaseRanking struct {
	Ranks []*Team
	id    int
}

func (r *BaseRanking) GetRanks() []*Team {
	return r.Ranks
}

func (r *BaseRanking) At(i int) *Team {
	if i >= len(r.Ranks) || i < 0 {
		return nil
	}
	return r.Ranks[i]
}

func (r *BaseRanking) UpdateRanks() error {
	return nil
}

func (r *BaseRanking) Id() int {
	return r.id
}

func (r *BaseRanking) String() string {
	var sb strings.Builder
	for i, t := range r.Ranks {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(t.Id())
	}
	return sb.String()
}

func NewBaseRanking() BaseRanking {
	id := NextNodeId()
	return BaseRanking{id: id}
}

// Creates a BaseRanking with the given teams as the ranks
func NewTeamRanking(teams []*Team) *BaseRanking {
	ranking := NewBaseRanking()
	ranking.Ranks = slices.Clone(teams)
	return &ranking
}

// A TieableRanking keeps the ranks as a slice of slices
// of teams. A nested slice with multiple teams means
// the rank is shared.
type BaseTieableRanking struct {
	BaseRanking

	tiedRanks [][]*Team
}

func (r *BaseTieableRanking) TiedRanks() [][]*Team {
	return r.tiedRanks
}

// Embedders of the BaseTieableRanking should call this in their
// implementation of the UpdateRanks method to persist the update result
func (r *BaseTieableRanking) ProcessUpdate(tiedRanks [][]*Team) {
	r.tiedRanks = tiedRanks
	r.Ranks = flattenTiedRanks(tiedRanks)
}

func flattenTiedRanks(tiedRanks [][]*Team) []*Team {
	numRanks := 0
	for _, t := range tiedRanks {
		numRanks += len(t)
	}

	ranks := make([]*Team, 0, numRanks)
	for _, t := range tiedRanks {
		ranks = append(ranks, t...)
	}

	return ranks
}

func NewBaseTieableRanking() BaseTieableRanking {
	return BaseTieableRanking{BaseRanking: NewBaseRanking()}
}
