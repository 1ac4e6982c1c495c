package internal

import (
	"cmp"
	"slices"
)

// Number of teams that qualify for the knockout stage
const NumQualifiers = 8

// The CrossGroupRanking merges the group rankings into one
// ordering of the qualified teams.
//
// Only the group ranks 1 to 3 are eligible. Teams with the same group
// rank are compared by points, point difference and points scored.
// The first NumQualifiers teams get the overall ranks 1..8, all other
// teams are reset to rank 0.
type CrossGroupRanking struct {
	BaseRanking

	groups []*RoundRobin
}

func (r *CrossGroupRanking) UpdateRanks() error {
	for _, g := range r.groups {
		if !g.MatchList.MatchesComplete() {
			r.Ranks = nil
			return nil
		}
	}

	byGroupRank := make(map[int][]*Team)
	for _, g := range r.groups {
		for _, t := range g.FinalRanking.GetRanks() {
			if t.GroupRank < 1 || t.GroupRank >= GroupSize {
				t.Rank = 0
				continue
			}
			byGroupRank[t.GroupRank] = append(byGroupRank[t.GroupRank], t)
		}
	}

	groupRanks := make([]int, 0, len(byGroupRank))
	for k := range byGroupRank {
		groupRanks = append(groupRanks, k)
	}
	slices.Sort(groupRanks)

	ranks := make([]*Team, 0, NumQualifiers)
	for _, groupRank := range groupRanks {
		bucket := byGroupRank[groupRank]
		slices.SortStableFunc(bucket, compareGroupRecords)

		for _, t := range bucket {
			if len(ranks) < NumQualifiers {
				ranks = append(ranks, t)
				t.Rank = len(ranks)
			} else {
				t.Rank = 0
			}
		}
	}

	r.Ranks = ranks

	return nil
}

// Returns the ranked qualifiers. Empty while the group phase is not complete.
func (r *CrossGroupRanking) Qualifiers() []*Team {
	return r.Ranks
}

// Orders by points, point difference and points scored, all descending
func compareGroupRecords(a, b *Team) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointDifference(), a.PointDifference()); c != 0 {
		return c
	}
	return cmp.Compare(b.PointsFor, a.PointsFor)
}

func NewCrossGroupRanking(groups []*RoundRobin, rankingGraph *RankingGraph) *CrossGroupRanking {
	ranking := &CrossGroupRanking{
		BaseRanking: NewBaseRanking(),
		groups:      groups,
	}

	rankingGraph.AddVertex(ranking)
	for _, g := range groups {
		rankingGraph.AddEdge(g.FinalRanking, ranking)
	}

	return ranking
}
