package internal

import (
	"errors"
	"fmt"
)

var ErrBracketSize = errors.New("the knockout needs exactly 4 quarter-finals")

const (
	roundQuarterFinals = 1
	roundSemiFinals    = 2
	roundFinals        = 3
)

// The Knockout is the single elimination bracket of the eight qualifiers
// with a match for third place.
//
// The semi-finals, the final and the third place match start out with
// empty slots. The EliminationGraph links every match to the matches
// that its winner and loser move on to.
type Knockout struct {
	QuarterFinals []*Match
	SemiFinals    []*Match
	ThirdPlace    *Match
	Final         *Match

	MatchList        *MatchList
	EliminationGraph *EliminationGraph
}

// Medals of the tournament
type Medals struct {
	Gold, Silver, Bronze *Team
}

// Builds the bracket behind the given quarter-finals (in bracket order).
// The winners of the first two quarter-finals meet in the first
// semi-final, the winners of the last two in the second.
func NewKnockout(quarterFinals []*Match) (*Knockout, error) {
	if len(quarterFinals) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrBracketSize, len(quarterFinals))
	}

	semiFinals := []*Match{
		NewMatch(nil, nil, roundSemiFinals, ""),
		NewMatch(nil, nil, roundSemiFinals, ""),
	}
	thirdPlace := NewMatch(nil, nil, roundFinals, "")
	final := NewMatch(nil, nil, roundFinals, "")

	graph := NewEliminationGraph()
	linkMatches(quarterFinals, semiFinals, AdvanceWinner, graph)
	linkMatches(semiFinals, []*Match{final}, AdvanceWinner, graph)
	linkMatches(semiFinals, []*Match{thirdPlace}, AdvanceLoser, graph)

	finalsRound := &Round{
		Matches: []*Match{thirdPlace, final},
		NestedRounds: []*Round{
			{Matches: []*Match{final}},
			{Matches: []*Match{thirdPlace}},
		},
	}
	rounds := []*Round{
		{Matches: quarterFinals},
		{Matches: semiFinals},
		finalsRound,
	}
	matches := make([]*Match, 0, 8)
	for _, r := range rounds {
		matches = append(matches, r.Matches...)
	}
	matchList := &MatchList{Matches: matches, Rounds: rounds}

	knockout := &Knockout{
		QuarterFinals:    quarterFinals,
		SemiFinals:       semiFinals,
		ThirdPlace:       thirdPlace,
		Final:            final,
		MatchList:        matchList,
		EliminationGraph: graph,
	}

	return knockout, nil
}

// Links pairs of matches of a round to the following match.
// The team with the given outcome of match 2i goes into slot 1
// and the one of match 2i+1 into slot 2 of following match i.
func linkMatches(round, followingRound []*Match, outcome Outcome, eliminationGraph *EliminationGraph) {
	for i, followingMatch := range followingRound {
		match1 := round[2*i]
		match2 := round[2*i+1]

		eliminationGraph.AddAdvancement(match1, followingMatch, outcome, 1)
		eliminationGraph.AddAdvancement(match2, followingMatch, outcome, 2)
	}
}

func (k *Knockout) PlayQuarterFinals(simulator MatchSimulator) error {
	return k.playRound(simulator, k.QuarterFinals...)
}

func (k *Knockout) PlaySemiFinals(simulator MatchSimulator) error {
	return k.playRound(simulator, k.SemiFinals...)
}

// Plays the third place match and then the final
func (k *Knockout) PlayFinals(simulator MatchSimulator) error {
	return k.playRound(simulator, k.ThirdPlace, k.Final)
}

func (k *Knockout) playRound(simulator MatchSimulator, matches ...*Match) error {
	for _, m := range matches {
		if err := m.Play(simulator); err != nil {
			return err
		}
		if err := k.advance(m); err != nil {
			return err
		}
	}
	return nil
}

// Moves the winner and the loser of the match into the
// slots of the matches that they advance to
func (k *Knockout) advance(match *Match) error {
	advancements := k.EliminationGraph.Advancements(match)
	if len(advancements) == 0 {
		return nil
	}

	winner, err := match.Winner()
	if err != nil {
		return fmt.Errorf("%v: %w", match, err)
	}
	loser := match.Opponent(winner)

	for _, a := range advancements {
		team := winner
		if a.Outcome == AdvanceLoser {
			team = loser
		}
		a.Target.SetTeam(a.Slot, team)
	}

	return nil
}

func (k *Knockout) Medals() (*Medals, error) {
	gold, err := k.Final.Winner()
	if err != nil {
		return nil, err
	}
	bronze, err := k.ThirdPlace.Winner()
	if err != nil {
		return nil, err
	}

	medals := &Medals{
		Gold:   gold,
		Silver: k.Final.Opponent(gold),
		Bronze: bronze,
	}
	return medals, nil
}
