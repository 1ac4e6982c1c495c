package internal

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrNotPlayed         = errors.New("match not played")
	ErrAlreadyPlayed     = errors.New("match already played")
	ErrEqualScore        = errors.New("equal score")
	ErrEmptySlot         = errors.New("match has an empty slot")
	ErrMissingHeadToHead = errors.New("no head-to-head match between the teams")
)

// A MatchSimulator produces the score of a match between two teams.
// The returned scores are never equal. Implementations may update
// the form of both teams.
type MatchSimulator interface {
	SimulateMatch(team1, team2 *Team) (int, int)
}

// A match between two teams.
//
// In the knockout stage the teams are nil until the
// matches leading up to this one are played.
type Match struct {
	Team1, Team2   *Team
	Score1, Score2 int

	// The 1-based round number
	Round int
	// The group tag. Empty for knockout matches.
	Group string

	Played bool

	// Id for graph node hashing
	id int
}

func (m *Match) Winner() (*Team, error) {
	if !m.Played {
		return nil, ErrNotPlayed
	}
	switch {
	case m.Score1 > m.Score2:
		return m.Team1, nil
	case m.Score2 > m.Score1:
		return m.Team2, nil
	}
	return nil, ErrEqualScore
}

func (m *Match) Loser() (*Team, error) {
	winner, err := m.Winner()
	if err != nil {
		return nil, err
	}
	return m.Opponent(winner), nil
}

// Returns the score of the given team and the score of its opponent.
// The bool is false when the team is not in the match.
func (m *Match) ScoreOf(team *Team) (int, int, bool) {
	switch team {
	case m.Team1:
		return m.Score1, m.Score2, true
	case m.Team2:
		return m.Score2, m.Score1, true
	}
	return 0, 0, false
}

func (m *Match) Opponent(team *Team) *Team {
	switch team {
	case m.Team1:
		return m.Team2
	case m.Team2:
		return m.Team1
	}
	return nil
}

func (m *Match) ContainsTeam(team *Team) bool {
	return team != nil && (m.Team1 == team || m.Team2 == team)
}

// Returns true when the match is played between a and b
func (m *Match) Between(a, b *Team) bool {
	return a != b && m.ContainsTeam(a) && m.ContainsTeam(b)
}

// Puts the team into slot 1 or 2
func (m *Match) SetTeam(slot int, team *Team) {
	if slot == 1 {
		m.Team1 = team
	} else {
		m.Team2 = team
	}
}

// Plays the match with the given simulator
func (m *Match) Play(simulator MatchSimulator) error {
	if m.Team1 == nil || m.Team2 == nil {
		return fmt.Errorf("%w: %v", ErrEmptySlot, m)
	}
	if m.Played {
		return fmt.Errorf("%w: %v", ErrAlreadyPlayed, m)
	}
	score1, score2 := simulator.SimulateMatch(m.Team1, m.Team2)
	m.SetScore(score1, score2)
	return nil
}

// Records a result without simulating
func (m *Match) SetScore(score1, score2 int) {
	m.Score1 = score1
	m.Score2 = score2
	m.Played = true
}

func (m *Match) Id() int {
	return m.id
}

func (m *Match) String() string {
	var sb strings.Builder
	writeTeam := func(t *Team) {
		if t == nil {
			sb.WriteString("[Empty]")
		} else {
			sb.WriteString(t.Country)
		}
	}
	writeTeam(m.Team1)
	sb.WriteString(" vs. ")
	writeTeam(m.Team2)

	if m.Played {
		sb.WriteString(fmt.Sprintf(" (%d:%d)", m.Score1, m.Score2))
	}

	return sb.String()
}

func NewMatch(team1, team2 *Team, round int, group string) *Match {
	return &Match{
		Team1: team1,
		Team2: team2,
		Round: round,
		Group: group,
		id:    NextNodeId(),
	}
}

// Returns true if all of the given matches are played
func MatchesPlayed(matches ...*Match) bool {
	for _, m := range matches {
		if !m.Played {
			return false
		}
	}
	return true
}

func sortMatches(matches []*Match) {
	slices.SortFunc(matches, func(a, b *Match) int { return cmp.Compare(a.id, b.id) })
}

func sortAdvancements(advancements []Advancement) {
	slices.SortFunc(advancements, func(a, b Advancement) int {
		return cmp.Compare(a.Target.id, b.Target.id)
	})
}

// A Round is a list of matches that can be played in
// parallel during a tournament.
// The matches of a round depend on the completion
// of all previous rounds.
type Round struct {
	// The matches that are played in this round
	Matches []*Match

	// Other Rounds that this Round is composed of
	// Is empty when no underlying rounds exist
	NestedRounds []*Round
}

// A slice of matches and a slice of rounds containing all
// matches.
type MatchList struct {
	Matches []*Match
	Rounds  []*Round
}

func (l *MatchList) MatchesComplete() bool {
	return MatchesPlayed(l.Matches...)
}

func (l *MatchList) MatchesOfTeam(team *Team) []*Match {
	matches := make([]*Match, 0, 3)
	for _, m := range l.Matches {
		if m.ContainsTeam(team) {
			matches = append(matches, m)
		}
	}
	return matches
}

// Returns the first match between a and b
func (l *MatchList) HeadToHead(a, b *Team) (*Match, error) {
	for _, m := range l.Matches {
		if m.Between(a, b) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %v and %v", ErrMissingHeadToHead, a, b)
}
