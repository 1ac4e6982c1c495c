package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedResult = errors.New("malformed exhibition result")
	ErrDuplicateTeam   = errors.New("team is already registered")
)

// A Team is a national team taking part in the tournament.
//
// A team is a single long-lived record. Every match the team
// plays references the same Team and its stats accumulate
// in place.
type Team struct {
	Country  string
	IsoCode  string
	FibaRank int

	// The name of the group the team plays in
	Group string

	Wins, Losses             int
	Points                   int
	PointsFor, PointsAgainst int

	// The rank inside of the group (1-4)
	GroupRank int
	// The current overall rank. 0 means unranked or eliminated.
	Rank int

	Form int
}

func (t *Team) PointDifference() int {
	return t.PointsFor - t.PointsAgainst
}

// Teams are identified by their country name
func (t *Team) Id() string {
	return t.Country
}

func (t *Team) ResetStats() {
	t.Wins, t.Losses = 0, 0
	t.Points = 0
	t.PointsFor, t.PointsAgainst = 0, 0
}

func (t *Team) String() string {
	return t.Country
}

// An Exhibition is a historical result of a team used to
// seed its initial form.
type Exhibition struct {
	Date     string
	Opponent string
	// The result as "<teamScore>-<opponentScore>"
	Result string
}

// Exhibition histories keyed by federation code
type Exhibitions map[string][]Exhibition

// Parses an exhibition result string like "92-86"
func ParseExhibitionResult(result string) (int, int, error) {
	parts := strings.Split(result, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedResult, result)
	}

	own, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	opponent, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || own < 0 || opponent < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedResult, result)
	}

	return own, opponent, nil
}

// Sums the point differences of the given exhibitions
func CalculateForm(exhibitions []Exhibition) (int, error) {
	form := 0
	for _, e := range exhibitions {
		own, opponent, err := ParseExhibitionResult(e.Result)
		if err != nil {
			return 0, err
		}
		form += own - opponent
	}
	return form, nil
}

// A FormBias is a fixed bonus on the initial form of a team.
// The keys are either country names or federation codes.
type FormBias map[string]int

// Returns the bonus for the given team. A country name entry
// takes precedence over a federation code entry.
func (b FormBias) For(team *Team) int {
	if bonus, ok := b[team.Country]; ok {
		return bonus
	}
	return b[team.IsoCode]
}

// The TeamRegistry owns all teams of a tournament.
// Phases receive references to the registered teams.
type TeamRegistry struct {
	teams map[string]*Team
	order []*Team
}

func (r *TeamRegistry) Register(team *Team) error {
	if _, exists := r.teams[team.Id()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTeam, team.Id())
	}
	r.teams[team.Id()] = team
	r.order = append(r.order, team)
	return nil
}

func (r *TeamRegistry) Lookup(country string) (*Team, bool) {
	team, ok := r.teams[country]
	return team, ok
}

// Returns the teams in registration order
func (r *TeamRegistry) Teams() []*Team {
	return r.order
}

func (r *TeamRegistry) Len() int {
	return len(r.order)
}

func NewTeamRegistry() *TeamRegistry {
	return &TeamRegistry{teams: make(map[string]*Team)}
}
