package internal

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
)

var ErrPhaseOrder = errors.New("tournament phase out of order")

type Phase int

const (
	PhaseScheduled Phase = iota
	PhaseGroupsPlayed
	PhaseDrawn
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseScheduled:
		return "scheduled"
	case PhaseGroupsPlayed:
		return "groups played"
	case PhaseDrawn:
		return "drawn"
	case PhaseComplete:
		return "complete"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Settings struct {
	// Fixed bonuses on the initial form
	FormBias FormBias
	// Receives the phase and match logs. Nil discards them.
	Logger *logrus.Logger
}

// The Tournament runs a group phase followed by a knockout of
// the eight best teams.
//
// The phases have to be played in order:
// PlayGroupStage, DrawKnockout, PlayKnockout.
type Tournament struct {
	BaseTournament

	Registry *TeamRegistry

	groupPhase  *GroupPhase
	pots        []*Pot
	knockout    *Knockout
	elimination *EliminationRanking

	simulator MatchSimulator
	logger    *logrus.Logger
	phase     Phase
}

// Creates a tournament of the given groups. Each team gets its group
// tag and its initial form from the exhibitions (keyed by federation
// code) plus its form bias.
//
// Fails when a group does not have exactly 4 teams, a team is entered
// twice or an exhibition result is malformed.
func NewTournament(
	groups map[string][]*Team,
	exhibitions Exhibitions,
	simulator MatchSimulator,
	settings Settings,
) (*Tournament, error) {
	logger := settings.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	registry := NewTeamRegistry()
	for _, name := range slices.Sorted(maps.Keys(groups)) {
		for _, team := range groups[name] {
			if err := registry.Register(team); err != nil {
				return nil, err
			}

			form, err := CalculateForm(exhibitions[team.IsoCode])
			if err != nil {
				return nil, fmt.Errorf("form of %s: %w", team.Country, err)
			}

			team.Group = name
			team.Form = form + settings.FormBias.For(team)
			team.Rank = 0
			team.GroupRank = 0
			team.ResetStats()
		}
	}

	entries := NewTeamRanking(registry.Teams())
	rankingGraph := NewRankingGraph(entries)

	groupPhase, err := NewGroupPhase(entries, groups, rankingGraph)
	if err != nil {
		return nil, err
	}

	elimination := NewEliminationRanking(groupPhase.CrossGroupRanking, rankingGraph)

	tournament := &Tournament{
		BaseTournament: BaseTournament{
			Entries:      entries,
			FinalRanking: elimination,
			RankingGraph: rankingGraph,
			MatchList:    groupPhase.MatchList,
		},
		Registry:    registry,
		groupPhase:  groupPhase,
		elimination: elimination,
		simulator:   simulator,
		logger:      logger,
	}

	logger.WithFields(logrus.Fields{
		"groups": len(groupPhase.Groups),
		"teams":  registry.Len(),
	}).Info("tournament scheduled")

	return tournament, nil
}

// Simulates all group matches and ranks the groups
func (t *Tournament) PlayGroupStage() error {
	if err := t.requirePhase(PhaseScheduled); err != nil {
		return err
	}

	if err := t.groupPhase.Play(t.simulator); err != nil {
		return err
	}
	for _, m := range t.groupPhase.MatchList.Matches {
		t.logMatch(m)
	}

	if err := t.Update(nil); err != nil {
		return err
	}

	t.phase = PhaseGroupsPlayed

	t.logger.WithField("qualifiers", len(t.Qualifiers())).Info("group stage complete")

	return nil
}

// Seeds the qualifiers into pots and draws the quarter-finals
func (t *Tournament) DrawKnockout() error {
	if err := t.requirePhase(PhaseGroupsPlayed); err != nil {
		return err
	}

	pots, err := NewPots(t.Qualifiers())
	if err != nil {
		return err
	}
	quarterFinals, err := DrawQuarterFinals(pots)
	if err != nil {
		return err
	}
	knockout, err := NewKnockout(quarterFinals)
	if err != nil {
		return err
	}

	t.pots = pots
	t.knockout = knockout
	t.elimination.MatchList = knockout.MatchList
	t.MatchList = &MatchList{
		Matches: slices.Concat(t.groupPhase.MatchList.Matches, knockout.MatchList.Matches),
		Rounds:  slices.Concat(t.groupPhase.MatchList.Rounds, knockout.MatchList.Rounds),
	}

	if err := t.Update(t.elimination); err != nil {
		return err
	}

	t.phase = PhaseDrawn

	for _, m := range quarterFinals {
		t.logger.WithFields(logrus.Fields{
			"team1": m.Team1.Country,
			"team2": m.Team2.Country,
		}).Debug("quarter-final drawn")
	}

	return nil
}

// Plays the quarter-finals, the semi-finals, the third place
// match and the final
func (t *Tournament) PlayKnockout() error {
	if err := t.requirePhase(PhaseDrawn); err != nil {
		return err
	}

	stages := []func(MatchSimulator) error{
		t.knockout.PlayQuarterFinals,
		t.knockout.PlaySemiFinals,
		t.knockout.PlayFinals,
	}
	for _, play := range stages {
		if err := play(t.simulator); err != nil {
			return err
		}
	}
	for _, m := range t.knockout.MatchList.Matches {
		t.logMatch(m)
	}

	if err := t.Update(t.elimination); err != nil {
		return err
	}

	t.phase = PhaseComplete

	if medals, err := t.knockout.Medals(); err == nil {
		t.logger.WithFields(logrus.Fields{
			"gold":   medals.Gold.Country,
			"silver": medals.Silver.Country,
			"bronze": medals.Bronze.Country,
		}).Info("tournament complete")
	}

	return nil
}

// Runs all phases
func (t *Tournament) Run() error {
	phases := []func() error{t.PlayGroupStage, t.DrawKnockout, t.PlayKnockout}
	for _, run := range phases {
		if err := run(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tournament) Phase() Phase {
	return t.phase
}

// The round robins of all groups ordered by group name
func (t *Tournament) Groups() []*RoundRobin {
	return t.groupPhase.Groups
}

// The group matches in rounds. The nested rounds
// are the rounds of the individual groups.
func (t *Tournament) GroupMatches() *MatchList {
	return t.groupPhase.MatchList
}

// The final group tables ordered by group name
func (t *Tournament) GroupStandings() map[string][]*Team {
	standings := make(map[string][]*Team, len(t.groupPhase.Groups))
	for _, g := range t.groupPhase.Groups {
		standings[g.Group] = g.FinalRanking.GetRanks()
	}
	return standings
}

func (t *Tournament) Qualifiers() []*Team {
	return t.groupPhase.CrossGroupRanking.Qualifiers()
}

// Nil before the draw
func (t *Tournament) Pots() []*Pot {
	return t.pots
}

// Nil before the draw
func (t *Tournament) Knockout() *Knockout {
	return t.knockout
}

// The drawn quarter-finals in bracket order. Nil before the draw.
func (t *Tournament) QuarterFinals() []*Match {
	if t.knockout == nil {
		return nil
	}
	return t.knockout.QuarterFinals
}

func (t *Tournament) Medals() (*Medals, error) {
	if t.knockout == nil {
		return nil, ErrNotPlayed
	}
	return t.knockout.Medals()
}

// The placements after the knockout. Shared places are in the same slice.
func (t *Tournament) Placements() [][]*Team {
	return t.elimination.TiedRanks()
}

func (t *Tournament) requirePhase(phase Phase) error {
	if t.phase != phase {
		return fmt.Errorf("%w: tournament is %v, needs %v", ErrPhaseOrder, t.phase, phase)
	}
	return nil
}

func (t *Tournament) logMatch(m *Match) {
	t.logger.WithFields(logrus.Fields{
		"group": m.Group,
		"round": m.Round,
		"team1": m.Team1.Country,
		"team2": m.Team2.Country,
		"score": fmt.Sprintf("%d:%d", m.Score1, m.Score2),
	}).Debug("match played")
}
