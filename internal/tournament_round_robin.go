package internal

import (
	"errors"
	"fmt"
)

var ErrGroupSize = errors.New("a group needs exactly 4 teams")

const GroupSize = 4

// The fixed pairings of a 4-team group per round.
// The values are indices into the ordered team list of the group.
var groupSchedule = [3][2][2]int{
	{{0, 1}, {2, 3}},
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
}

// A RoundRobin is the single pass round robin of one group.
// Every team plays every other team once over three rounds.
type RoundRobin struct {
	Group string

	Entries      *BaseRanking
	MatchList    *MatchList
	FinalRanking *GroupRanking
}

// Schedules the matches of the given group.
// The order of the teams determines the pairings.
func NewGroupRoundRobin(group string, teams []*Team) (*RoundRobin, error) {
	if len(teams) != GroupSize {
		return nil, fmt.Errorf("%w: group %s has %d", ErrGroupSize, group, len(teams))
	}

	rounds := make([]*Round, 0, len(groupSchedule))
	for roundI, pairings := range groupSchedule {
		round := &Round{Matches: make([]*Match, 0, len(pairings))}
		for _, p := range pairings {
			match := NewMatch(teams[p[0]], teams[p[1]], roundI+1, group)
			round.Matches = append(round.Matches, match)
		}
		rounds = append(rounds, round)
	}

	matches := make([]*Match, 0, len(rounds)*2)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}

	matchList := &MatchList{Matches: matches, Rounds: rounds}

	entries := NewTeamRanking(teams)
	roundRobin := &RoundRobin{
		Group:        group,
		Entries:      entries,
		MatchList:    matchList,
		FinalRanking: NewGroupRanking(entries, matchList),
	}

	return roundRobin, nil
}

// Plays the matches in schedule order
func (r *RoundRobin) Play(simulator MatchSimulator) error {
	for _, m := range r.MatchList.Matches {
		if err := m.Play(simulator); err != nil {
			return err
		}
	}
	return nil
}
