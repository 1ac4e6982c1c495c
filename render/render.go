// Package render writes tournament results as localized text.
package render

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ezBadminton/hoopsim/internal"
	"github.com/ezBadminton/hoopsim/odds"
)

// A Renderer writes the sections of a tournament to a writer.
// The first write error is kept and returned by Err.
type Renderer struct {
	w       io.Writer
	printer *message.Printer
	err     error
}

func New(w io.Writer, tag language.Tag) (*Renderer, error) {
	cat, err := defaultCatalog()
	if err != nil {
		return nil, err
	}
	printer := message.NewPrinter(tag, message.Catalog(cat))
	return &Renderer{w: w, printer: printer}, nil
}

func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) line(key string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = r.printer.Fprintf(r.w, key, args...)
	if r.err == nil {
		_, r.err = io.WriteString(r.w, "\n")
	}
}

func (r *Renderer) blank() {
	if r.err == nil {
		_, r.err = io.WriteString(r.w, "\n")
	}
}

// Writes every section that the tournament has reached
func (r *Renderer) Tournament(t *internal.Tournament) error {
	if t.Phase() >= internal.PhaseGroupsPlayed {
		r.GroupResults(t.GroupMatches())
		r.GroupStandings(t.Groups())
		r.Qualifiers(t.Qualifiers())
	}
	if knockout := t.Knockout(); knockout != nil {
		r.Draw(t.Pots(), knockout.QuarterFinals)
		if t.Phase() == internal.PhaseComplete {
			r.Knockout(knockout)
		}
	}
	if medals, err := t.Medals(); err == nil {
		r.Medals(medals)
	}
	return r.err
}

// Writes the group matches round by round and group by group
func (r *Renderer) GroupResults(matches *internal.MatchList) {
	r.line("group.results")
	for roundI, round := range matches.Rounds {
		for _, groupRound := range round.NestedRounds {
			if len(groupRound.Matches) == 0 {
				continue
			}
			r.line("group.round", roundI+1, groupRound.Matches[0].Group)
			for _, m := range groupRound.Matches {
				r.match(m)
			}
			r.blank()
		}
	}
}

func (r *Renderer) GroupStandings(groups []*internal.RoundRobin) {
	r.line("group.standings")
	for _, g := range groups {
		r.line("group.name", g.Group)
		for _, t := range g.FinalRanking.GetRanks() {
			r.line(
				"group.row",
				t.GroupRank, t.Country,
				t.Wins, t.Losses, t.Points,
				t.PointsFor, t.PointsAgainst, t.PointDifference(),
			)
		}
		r.blank()
	}
}

func (r *Renderer) Qualifiers(qualifiers []*internal.Team) {
	r.line("qualifiers.title")
	for _, t := range qualifiers {
		r.line("qualifiers.row", t.Rank, t.Country)
	}
	r.blank()
}

// Writes the pots and the drawn quarter-finals.
// The quarter-finals are grouped in pairs that meet in the semi-finals.
func (r *Renderer) Draw(pots []*internal.Pot, quarterFinals []*internal.Match) {
	r.line("pots.title")
	for _, p := range pots {
		r.line("pots.name", p.Name)
		for _, t := range p.Teams {
			r.write("    ")
			r.line("%s", t.Country)
		}
	}
	r.blank()

	r.line("draw.title")
	for i, m := range quarterFinals {
		r.write("    ")
		r.line("match.pending", teamName(m.Team1), teamName(m.Team2))
		if i%2 == 1 {
			r.blank()
		}
	}
}

func (r *Renderer) Knockout(k *internal.Knockout) {
	r.line("knockout.quarterfinals")
	for _, m := range k.QuarterFinals {
		r.match(m)
	}
	r.blank()

	r.line("knockout.semifinals")
	for _, m := range k.SemiFinals {
		r.match(m)
	}
	r.blank()

	r.line("knockout.thirdplace")
	r.match(k.ThirdPlace)
	r.blank()

	r.line("knockout.final")
	r.match(k.Final)
	r.blank()
}

func (r *Renderer) Medals(medals *internal.Medals) {
	r.line("medals.title")
	for i, t := range []*internal.Team{medals.Gold, medals.Silver, medals.Bronze} {
		r.line("medals.row", i+1, t.Country)
	}
}

func (r *Renderer) Odds(predictions []odds.Prediction, runs int) error {
	r.line("odds.title", runs)
	for _, p := range predictions {
		r.line("odds.row", p.Country, p.Gold, p.Silver, p.Bronze, p.GoldChance, p.MedalChance)
	}
	return r.err
}

func (r *Renderer) match(m *internal.Match) {
	if !m.Played {
		r.line("match.pending", teamName(m.Team1), teamName(m.Team2))
		return
	}
	r.line("match.result", teamName(m.Team1), teamName(m.Team2), m.Score1, m.Score2)
}

func (r *Renderer) write(s string) {
	if r.err == nil {
		_, r.err = io.WriteString(r.w, s)
	}
}

func teamName(t *internal.Team) string {
	if t == nil {
		return "?"
	}
	return fmt.Sprint(t)
}
