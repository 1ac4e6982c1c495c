package internal

import (
	"errors"
	"slices"
	"testing"
)

// Plays every match of the list with the result function
// returning the winner and the margin
func playByWinners(matchList *MatchList, result func(m *Match) (*Team, int)) {
	for _, m := range matchList.Matches {
		winner, margin := result(m)
		setWinner(m, winner, margin)
	}
}

// Looks up the winner of a pairing in a table of "winner beats loser by margin"
func resultTable(table map[[2]*Team]int) func(m *Match) (*Team, int) {
	return func(m *Match) (*Team, int) {
		if margin, ok := table[[2]*Team{m.Team1, m.Team2}]; ok {
			return m.Team1, margin
		}
		return m.Team2, table[[2]*Team{m.Team2, m.Team1}]
	}
}

func TestGroupRankingTwoWayTie(t *testing.T) {
	teams := TeamSlice(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]

	roundRobin, err := NewGroupRoundRobin("A", []*Team{b, a, d, c})
	if err != nil {
		t.Fatal(err)
	}

	playByWinners(roundRobin.MatchList, resultTable(map[[2]*Team]int{
		{a, b}: 3,
		{a, c}: 3,
		{d, a}: 3,
		{b, c}: 3,
		{b, d}: 3,
		{c, d}: 3,
	}))

	ranking := roundRobin.FinalRanking
	if err := ranking.UpdateRanks(); err != nil {
		t.Fatal(err)
	}

	eq1 := a.Points == 5 && b.Points == 5 && c.Points == 4 && d.Points == 4
	if !eq1 {
		t.Fatal("the league points were not accumulated with 2 per win and 1 per loss")
	}

	eq1 = a.GroupRank == 1 && b.GroupRank == 2
	eq2 := c.GroupRank == 3 && d.GroupRank == 4
	eq3 := slices.Equal(ranking.GetRanks(), []*Team{a, b, c, d})
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("the winners of the direct encounters were not ranked ahead")
	}
	if a.Rank != 1 || d.Rank != 4 {
		t.Fatal("the current rank was not set to the group rank")
	}
}

func TestGroupRankingThreeWayTie(t *testing.T) {
	teams := TeamSlice(4)
	x, y, z, w := teams[0], teams[1], teams[2], teams[3]

	roundRobin, err := NewGroupRoundRobin("A", []*Team{z, y, x, w})
	if err != nil {
		t.Fatal(err)
	}

	// The differentials among the tied teams are X +10, Y +2, Z -12
	playByWinners(roundRobin.MatchList, resultTable(map[[2]*Team]int{
		{x, y}: 15,
		{y, z}: 17,
		{z, x}: 5,
		{x, w}: 1,
		{y, w}: 1,
		{z, w}: 40,
	}))

	ranking := roundRobin.FinalRanking
	if err := ranking.UpdateRanks(); err != nil {
		t.Fatal(err)
	}

	eq1 := x.GroupRank == 1 && y.GroupRank == 2 && z.GroupRank == 3
	eq2 := w.GroupRank == 4
	eq3 := slices.Equal(ranking.GetRanks(), []*Team{x, y, z, w})
	if !eq1 || !eq2 || !eq3 {
		t.Fatalf("the three-way tie was not ordered by the direct differentials: %v", ranking)
	}

	// Updating again yields the same stats and ranks
	if err := ranking.UpdateRanks(); err != nil {
		t.Fatal(err)
	}
	eq1 = x.Points == 5 && x.Wins == 2 && x.Losses == 1
	eq2 = slices.Equal(ranking.GetRanks(), []*Team{x, y, z, w})
	if !eq1 || !eq2 {
		t.Fatal("a repeated update changed the standings")
	}
}

func TestBreakThreeWayTieKeepsRanks(t *testing.T) {
	teams := TeamSlice(3)
	x, y, z := teams[0], teams[1], teams[2]
	matches := []*Match{
		NewMatch(x, y, 1, "A"),
		NewMatch(y, z, 2, "A"),
		NewMatch(z, x, 3, "A"),
	}
	matchList := &MatchList{Matches: matches}
	setWinner(matches[0], x, 15)
	setWinner(matches[1], y, 17)
	setWinner(matches[2], z, 5)

	// Non-contiguous ranks: the order starts from the best rank
	// and only changed positions are overwritten
	x.GroupRank, y.GroupRank, z.GroupRank = 2, 5, 3
	if err := breakThreeWayTie(matchList, []*Team{x, z, y}); err != nil {
		t.Fatal(err)
	}

	eq1 := x.GroupRank == 2 && y.GroupRank == 3 && z.GroupRank == 4
	if !eq1 {
		t.Fatalf("unexpected ranks %d %d %d", x.GroupRank, y.GroupRank, z.GroupRank)
	}
}

func TestGroupRankingIncomplete(t *testing.T) {
	teams := TeamSlice(4)
	roundRobin, err := NewGroupRoundRobin("A", teams)
	if err != nil {
		t.Fatal(err)
	}

	roundRobin.MatchList.Matches[0].Play(RankSimulator{})

	ranking := roundRobin.FinalRanking
	if err := ranking.UpdateRanks(); err != nil {
		t.Fatal(err)
	}
	if len(ranking.GetRanks()) != 0 || teams[0].Points != 0 {
		t.Fatal("an incomplete group was ranked")
	}
}

func TestGroupRankingMissingHeadToHead(t *testing.T) {
	teams := TeamSlice(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]

	matches := []*Match{
		NewMatch(a, c, 1, "A"),
		NewMatch(b, d, 1, "A"),
		NewMatch(c, d, 2, "A"),
	}
	matchList := &MatchList{Matches: matches}
	setWinner(matches[0], a, 3)
	setWinner(matches[1], b, 3)
	setWinner(matches[2], c, 3)

	ranking := NewGroupRanking(NewTeamRanking(teams), matchList)
	err := ranking.UpdateRanks()
	if !errors.Is(err, ErrMissingHeadToHead) {
		t.Fatal("a tie without a direct encounter did not error")
	}
}

func TestSortByMetric(t *testing.T) {
	teams := TeamSlice(4)
	metrics := map[*Team]*MatchMetrics{
		teams[0]: {Points: 4},
		teams[1]: {Points: 6},
		teams[2]: {Points: 4},
		teams[3]: {Points: 3},
	}

	sorted := sortByMetric(teams, metrics, func(m *MatchMetrics) int { return m.Points })

	eq1 := len(sorted) == 3
	eq2 := slices.Equal(sorted[0], []*Team{teams[1]})
	eq3 := slices.Equal(sorted[1], []*Team{teams[0], teams[2]})
	eq4 := slices.Equal(sorted[2], []*Team{teams[3]})
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("the teams were not bucketed by descending points")
	}
}
