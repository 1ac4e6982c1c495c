package internal

import "fmt"

// A tournament is a chain of matches and rankings.
//
// Every tournament begins with a ranking of entries and
// ends with a final ranking. What comes in between depends
// on the tournament mode that is implemented.
type BaseTournament struct {
	// The entries ranking which contains
	// all participants.
	Entries Ranking
	// The final ranking is the overall result
	// of the entire tournament.
	FinalRanking Ranking

	RankingGraph *RankingGraph
	MatchList    *MatchList
}

// Updates the rankings that depend on the start ranking
// (including itself) in their topological order.
// A nil start updates all rankings.
func (t *BaseTournament) Update(start Ranking) error {
	if start == nil {
		start = t.Entries
	}

	bfs := t.RankingGraph.BreadthSearchIter(start)
	for ranking := range bfs {
		if err := ranking.UpdateRanks(); err != nil {
			return fmt.Errorf("update ranking %d: %w", ranking.Id(), err)
		}
	}

	return nil
}

func (t *BaseTournament) MatchesOfTeam(team *Team) []*Match {
	return t.MatchList.MatchesOfTeam(team)
}
