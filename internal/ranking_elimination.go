package internal

import "slices"

// The EliminationRanking ranks the teams of the knockout
// according to how far they reached. The final decides
// places 1 and 2, the third place match 3 and 4 and the
// losers of the quarter-finals are tied on the 5th place.
//
// Teams of matches that are not played yet share a rank.
type EliminationRanking struct {
	BaseTieableRanking

	// The knockout matches. Nil until the knockout is drawn.
	MatchList *MatchList
}

// Updates the return value of the GetRanks() method.
// Should be called whenever a result that influences the
// ranking becomes known.
func (r *EliminationRanking) UpdateRanks() error {
	if r.MatchList == nil {
		r.ProcessUpdate([][]*Team{})
		return nil
	}

	ranks := make([][]*Team, 0, 2*len(r.MatchList.Rounds))

	for _, round := range slices.Backward(r.MatchList.Rounds) {
		if len(round.NestedRounds) == 0 {
			ranks = append(ranks, rankRound(round)...)
			continue
		}
		for _, nested := range round.NestedRounds {
			ranks = append(ranks, rankRound(nested)...)
		}
	}

	ranks = RemoveDoubleRanks(ranks)

	r.ProcessUpdate(ranks)

	return nil
}

func rankRound(round *Round) [][]*Team {
	size := len(round.Matches)

	winners := make([]*Team, 0, size)
	losers := make([]*Team, 0, size)

	for _, m := range round.Matches {
		matchWinner, matchLosers := rankMatch(m)
		if matchWinner != nil {
			winners = append(winners, matchWinner)
		}
		losers = append(losers, matchLosers...)
	}

	ranks := make([][]*Team, 0, 2)
	if len(winners) > 0 {
		ranks = append(ranks, winners)
	}
	if len(losers) > 0 {
		ranks = append(ranks, losers)
	}

	return ranks
}

func rankMatch(match *Match) (*Team, []*Team) {
	winner, _ := match.Winner()
	losers := make([]*Team, 0, 2)

	if winner == nil {
		for _, t := range []*Team{match.Team1, match.Team2} {
			if t != nil {
				losers = append(losers, t)
			}
		}
	} else {
		losers = append(losers, match.Opponent(winner))
	}

	return winner, losers
}

// Removes every team from the ranks after its first occurence
func RemoveDoubleRanks(ranks [][]*Team) [][]*Team {
	found := make(map[*Team]struct{})
	cleanedRanks := make([][]*Team, 0, len(ranks))

	for _, r := range ranks {
		cleanedRank := make([]*Team, 0, len(r))
		for _, t := range r {
			_, ok := found[t]
			if !ok {
				cleanedRank = append(cleanedRank, t)
				found[t] = struct{}{}
			}
		}
		if len(cleanedRank) > 0 {
			cleanedRanks = append(cleanedRanks, cleanedRank)
		}
	}
	return cleanedRanks
}

func NewEliminationRanking(groupPhaseRanking Ranking, rankingGraph *RankingGraph) *EliminationRanking {
	ranking := &EliminationRanking{
		BaseTieableRanking: NewBaseTieableRanking(),
	}
	rankingGraph.AddVertex(ranking)
	rankingGraph.AddEdge(groupPhaseRanking, ranking)
	return ranking
}
