package internal

import (
	"errors"
	"testing"
)

func TestGroupSchedule(t *testing.T) {
	teams := TeamSlice(4)
	roundRobin, err := NewGroupRoundRobin("A", teams)
	if err != nil {
		t.Fatal(err)
	}

	matches := roundRobin.MatchList.Matches
	eq1 := len(matches) == 6
	eq2 := len(roundRobin.MatchList.Rounds) == 3
	if !eq1 || !eq2 {
		t.Fatal("a group does not have 6 matches in 3 rounds")
	}

	pairs := make(map[[2]*Team]int)
	appearances := make(map[*Team]int)
	for _, m := range matches {
		pair := [2]*Team{m.Team1, m.Team2}
		if m.Team2.FibaRank < m.Team1.FibaRank {
			pair = [2]*Team{m.Team2, m.Team1}
		}
		pairs[pair] += 1
		appearances[m.Team1] += 1
		appearances[m.Team2] += 1

		if m.Group != "A" {
			t.Fatal("the group tag was not recorded on the match")
		}
	}

	if len(pairs) != 6 {
		t.Fatal("not every pair of teams meets exactly once")
	}
	for _, team := range teams {
		if appearances[team] != 3 {
			t.Fatalf("team %v plays %d matches instead of 3", team, appearances[team])
		}
	}

	expected := [][2]int{{0, 1}, {2, 3}, {0, 2}, {1, 3}, {0, 3}, {1, 2}}
	for i, m := range matches {
		eq1 := m.Team1 == teams[expected[i][0]] && m.Team2 == teams[expected[i][1]]
		eq2 := m.Round == i/2+1
		if !eq1 || !eq2 {
			t.Fatalf("match %d does not follow the fixed schedule: %v in round %d", i, m, m.Round)
		}
	}
}

func TestGroupScheduleSize(t *testing.T) {
	for _, n := range []int{0, 3, 5} {
		_, err := NewGroupRoundRobin("A", TeamSlice(n))
		if !errors.Is(err, ErrGroupSize) {
			t.Fatalf("a group of %d teams did not error", n)
		}
	}
}
