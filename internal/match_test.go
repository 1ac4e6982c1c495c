package internal

import (
	"errors"
	"math/rand"
	"testing"
)

var testCountries string = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Creates num teams named "A", "B", ... with the FIBA ranking
// 1, 2, ... in that order
func TeamSlice(num int) []*Team {
	teams := make([]*Team, 0, num)
	for i := range num {
		name := string(testCountries[i])
		teams = append(teams, &Team{
			Country:  name,
			IsoCode:  name + name + name,
			FibaRank: i + 1,
		})
	}
	return teams
}

// Lets the team with the better (lower) FIBA ranking win by
// the gap of the two rankings
type RankSimulator struct{}

func (RankSimulator) SimulateMatch(team1, team2 *Team) (int, int) {
	gap := team1.FibaRank - team2.FibaRank
	if gap < 0 {
		return 80 - gap, 80
	}
	return 80, 80 + gap
}

// Draws distinct random scores
type RandomSimulator struct {
	rng *rand.Rand
}

func (s *RandomSimulator) SimulateMatch(team1, team2 *Team) (int, int) {
	score1 := 70 + s.rng.Intn(30)
	score2 := 70 + s.rng.Intn(30)
	for score1 == score2 {
		score2 = 70 + s.rng.Intn(30)
	}
	team1.Form += score1 - score2
	team2.Form += score2 - score1
	return score1, score2
}

// Returns a fixed score for every match
type FixedSimulator struct {
	score1, score2 int
}

func (s FixedSimulator) SimulateMatch(team1, team2 *Team) (int, int) {
	return s.score1, s.score2
}

// Lets the given team win the match by the given margin
func setWinner(m *Match, winner *Team, margin int) {
	if m.Team1 == winner {
		m.SetScore(80+margin, 80)
	} else {
		m.SetScore(80, 80+margin)
	}
}

func TestMatchResult(t *testing.T) {
	teams := TeamSlice(3)
	m := NewMatch(teams[0], teams[1], 1, "A")

	_, err := m.Winner()
	_, err2 := m.Loser()
	if !errors.Is(err, ErrNotPlayed) || !errors.Is(err2, ErrNotPlayed) {
		t.Fatal("an unplayed match returned a result")
	}

	if err := m.Play(FixedSimulator{70, 91}); err != nil {
		t.Fatal(err)
	}

	winner, _ := m.Winner()
	loser, _ := m.Loser()
	if winner != teams[1] || loser != teams[0] {
		t.Fatal("the team with the higher score is not the winner")
	}

	own, opponent, ok := m.ScoreOf(teams[1])
	if !ok || own != 91 || opponent != 70 {
		t.Fatal("the score was not returned from the team's perspective")
	}
	if _, _, ok := m.ScoreOf(teams[2]); ok {
		t.Fatal("a score was returned for a team outside the match")
	}

	eq1 := m.Between(teams[1], teams[0])
	eq2 := !m.Between(teams[0], teams[2])
	eq3 := m.Opponent(teams[0]) == teams[1]
	if !eq1 || !eq2 || !eq3 {
		t.Fatal("the match does not recognize its opponents")
	}

	if err := m.Play(FixedSimulator{1, 2}); !errors.Is(err, ErrAlreadyPlayed) {
		t.Fatal("a match could be played twice")
	}

	tie := NewMatch(teams[0], teams[2], 1, "A")
	tie.SetScore(80, 80)
	if _, err := tie.Winner(); !errors.Is(err, ErrEqualScore) {
		t.Fatal("a tied match returned a winner")
	}

	if m.String() != "A vs. B (70:91)" {
		t.Fatalf("unexpected match string %q", m.String())
	}
}

func TestMatchEmptySlot(t *testing.T) {
	teams := TeamSlice(1)
	m := NewMatch(teams[0], nil, 2, "")

	err := m.Play(RankSimulator{})
	if !errors.Is(err, ErrEmptySlot) || m.Played {
		t.Fatal("a match with an empty slot was played")
	}

	m.SetTeam(2, TeamSlice(2)[1])
	if err := m.Play(RankSimulator{}); err != nil {
		t.Fatal(err)
	}
}

func TestMatchList(t *testing.T) {
	teams := TeamSlice(4)
	matches := []*Match{
		NewMatch(teams[0], teams[1], 1, "A"),
		NewMatch(teams[2], teams[3], 1, "A"),
		NewMatch(teams[0], teams[2], 2, "A"),
	}
	matchList := &MatchList{Matches: matches, Rounds: []*Round{{Matches: matches}}}

	if len(matchList.MatchesOfTeam(teams[0])) != 2 {
		t.Fatal("the matches of a team were not found")
	}

	m, err := matchList.HeadToHead(teams[2], teams[0])
	if err != nil || m != matches[2] {
		t.Fatal("the head-to-head match was not found")
	}

	_, err = matchList.HeadToHead(teams[1], teams[3])
	if !errors.Is(err, ErrMissingHeadToHead) {
		t.Fatal("a missing head-to-head match did not error")
	}

	if matchList.MatchesComplete() {
		t.Fatal("an unplayed match list is complete")
	}
	for _, m := range matches {
		m.Play(RankSimulator{})
	}
	if !matchList.MatchesComplete() {
		t.Fatal("a played match list is not complete")
	}
}
