package internal

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// The GroupPhase holds the round robins of all groups.
// The groups are ordered by their name.
type GroupPhase struct {
	Groups    []*RoundRobin
	MatchList *MatchList

	CrossGroupRanking *CrossGroupRanking
}

// Schedules all groups and links their rankings into the ranking graph:
// entries -> group entries -> group ranking -> cross group ranking
func NewGroupPhase(
	entries Ranking,
	groups map[string][]*Team,
	rankingGraph *RankingGraph,
) (*GroupPhase, error) {
	names := slices.Sorted(maps.Keys(groups))
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrGroupSize)
	}

	roundRobins := make([]*RoundRobin, 0, len(names))
	for _, name := range names {
		roundRobin, err := NewGroupRoundRobin(name, groups[name])
		if err != nil {
			return nil, err
		}

		rankingGraph.AddVertex(roundRobin.Entries)
		rankingGraph.AddVertex(roundRobin.FinalRanking)
		rankingGraph.AddEdge(entries, roundRobin.Entries)
		rankingGraph.AddEdge(roundRobin.Entries, roundRobin.FinalRanking)

		roundRobins = append(roundRobins, roundRobin)
	}

	groupPhase := &GroupPhase{
		Groups:            roundRobins,
		CrossGroupRanking: NewCrossGroupRanking(roundRobins, rankingGraph),
	}
	groupPhase.MatchList = groupPhase.createMatchList()

	return groupPhase, nil
}

// Plays the groups one after the other.
// Each group is played in its schedule order.
func (g *GroupPhase) Play(simulator MatchSimulator) error {
	for _, group := range g.Groups {
		if err := group.Play(simulator); err != nil {
			return fmt.Errorf("group %s: %w", group.Group, err)
		}
	}
	return nil
}

func (g *GroupPhase) Group(name string) (*RoundRobin, bool) {
	i, found := slices.BinarySearchFunc(g.Groups, name, func(r *RoundRobin, name string) int {
		return cmp.Compare(r.Group, name)
	})
	if !found {
		return nil, false
	}
	return g.Groups[i], true
}

// Creates a round-major match list. The nth round contains the nth
// round of every group.
func (g *GroupPhase) createMatchList() *MatchList {
	maxNumRounds := 0
	for _, group := range g.Groups {
		maxNumRounds = max(maxNumRounds, len(group.MatchList.Rounds))
	}

	rounds := make([]*Round, 0, maxNumRounds)
	matches := make([]*Match, 0, len(g.Groups)*6)
	for i := range maxNumRounds {
		groupRounds := collectRounds(i, g.Groups)
		roundMatches := concatRounds(groupRounds)
		matches = append(matches, roundMatches...)
		round := &Round{Matches: roundMatches, NestedRounds: groupRounds}
		rounds = append(rounds, round)
	}

	return &MatchList{Matches: matches, Rounds: rounds}
}

func collectRounds(roundI int, groups []*RoundRobin) []*Round {
	rounds := make([]*Round, 0, len(groups))
	for _, g := range groups {
		if roundI > len(g.MatchList.Rounds)-1 {
			continue
		}
		rounds = append(rounds, g.MatchList.Rounds[roundI])
	}
	return rounds
}

// Lists the matches of the rounds group after group
func concatRounds(rounds []*Round) []*Match {
	matches := make([]*Match, 0, len(rounds)*2)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}
	return matches
}
