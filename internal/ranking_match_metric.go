package internal

import (
	"cmp"
	"slices"
)

// A GroupRanking ranks the teams of a group by their
// performance in the group's matches.
//
// Updating the ranking also writes the accumulated
// stats and the group rank into the teams.
type GroupRanking struct {
	BaseRanking

	teams   []*Team
	matches *MatchList

	Metrics map[*Team]*MatchMetrics
}

// Recomputes the stats and ranks from the group matches.
// The update is repeatable because the stats are reset
// before they are accumulated.
//
// The ranking is left untouched while the group is incomplete.
func (r *GroupRanking) UpdateRanks() error {
	if !r.matches.MatchesComplete() {
		return nil
	}

	metrics := CreateMetrics(r.matches.Matches, nil)
	addZeroMetrics(metrics, r.teams)

	for _, t := range r.teams {
		t.ResetStats()
		metrics[t].applyTo(t)
	}

	ranked := slices.Clone(r.teams)
	slices.SortStableFunc(ranked, func(a, b *Team) int { return cmp.Compare(b.Points, a.Points) })
	for i, t := range ranked {
		t.GroupRank = i + 1
	}

	sortedByPoints := sortByMetric(ranked, metrics, func(m *MatchMetrics) int { return m.Points })
	for _, tie := range sortedByPoints {
		if err := breakTie(r.matches, tie); err != nil {
			return err
		}
	}

	slices.SortStableFunc(ranked, func(a, b *Team) int { return cmp.Compare(a.GroupRank, b.GroupRank) })
	for _, t := range ranked {
		t.Rank = t.GroupRank
	}

	r.Metrics = metrics
	r.Ranks = ranked

	return nil
}

func NewGroupRanking(entries Ranking, matches *MatchList) *GroupRanking {
	return &GroupRanking{
		BaseRanking: NewBaseRanking(),
		teams:       entries.GetRanks(),
		matches:     matches,
	}
}

// Resolves a tie between teams with the same amount of points.
//
// Two-way ties are decided by the direct encounter.
// Three-way ties are decided by the point difference in the
// matches among the tied teams.
// Other tie sizes are left as they are.
func breakTie(matches *MatchList, tie []*Team) error {
	switch len(tie) {
	case 2:
		return breakTwoWayTie(matches, tie[0], tie[1])
	case 3:
		return breakThreeWayTie(matches, tie)
	}
	return nil
}

// Swaps the ranks of t1 and t2 when the winner of their
// direct encounter holds the worse rank.
func breakTwoWayTie(matches *MatchList, t1, t2 *Team) error {
	match, err := matches.HeadToHead(t1, t2)
	if err != nil {
		return err
	}

	winner, err := match.Winner()
	if err != nil {
		// A drawn direct encounter decides nothing
		return nil
	}
	loser := match.Opponent(winner)

	if winner.GroupRank > loser.GroupRank {
		winner.GroupRank, loser.GroupRank = loser.GroupRank, winner.GroupRank
	}

	return nil
}

// Orders the three teams by the point difference of the matches
// among them. The ranks are handed out starting from the best rank
// in the tie. A team only gets a new rank value when its position
// changed.
func breakThreeWayTie(matches *MatchList, tie []*Team) error {
	for i, t1 := range tie {
		for _, t2 := range tie[i+1:] {
			if _, err := matches.HeadToHead(t1, t2); err != nil {
				return err
			}
		}
	}

	directMetrics := CreateMetrics(matches.Matches, tie)
	addZeroMetrics(directMetrics, tie)

	ordered := slices.Clone(tie)
	slices.SortStableFunc(ordered, func(a, b *Team) int {
		return cmp.Compare(directMetrics[b].PointDifference, directMetrics[a].PointDifference)
	})

	rank := tie[0].GroupRank
	for _, t := range tie[1:] {
		rank = min(rank, t.GroupRank)
	}

	for _, t := range ordered {
		if t.GroupRank != rank {
			t.GroupRank = rank
		}
		rank += 1
	}

	return nil
}

// Sorts the teams in descending buckets of one of the metrics returned by the getter.
// The teams keep their relative order inside of a bucket.
func sortByMetric(teams []*Team, metrics map[*Team]*MatchMetrics, getter func(m *MatchMetrics) int) [][]*Team {
	buckets := make(map[int][]*Team)

	for _, t := range teams {
		metric := getter(metrics[t])
		bucket, ok := buckets[metric]
		if !ok {
			bucket = make([]*Team, 0, 3)
		}
		buckets[metric] = append(bucket, t)
	}

	sortedMetrics := make([]int, 0, len(buckets))
	for k := range buckets {
		sortedMetrics = append(sortedMetrics, k)
	}
	slices.SortFunc(sortedMetrics, func(a, b int) int { return cmp.Compare(b, a) })

	sortedTeams := make([][]*Team, 0, len(sortedMetrics))
	for _, v := range sortedMetrics {
		sortedTeams = append(sortedTeams, buckets[v])
	}

	return sortedTeams
}
