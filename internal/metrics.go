package internal

import "slices"

const (
	pointsWin  = 2
	pointsLoss = 1
	pointsTie  = 1
)

type MatchMetrics struct {
	NumMatches, Wins, Losses int
	Points                   int
	PointsFor, PointsAgainst int
	PointDifference          int
}

func (m *MatchMetrics) UpdateDifferences() {
	m.PointDifference = m.PointsFor - m.PointsAgainst
}

// Writes the metrics into the running stats of the team
func (m *MatchMetrics) applyTo(team *Team) {
	team.Wins = m.Wins
	team.Losses = m.Losses
	team.Points = m.Points
	team.PointsFor = m.PointsFor
	team.PointsAgainst = m.PointsAgainst
}

// Creates a MatchMetrics struct for each team in the matches.
// If the teams slice is not nil/empty only the matches where both
// opponents are in the slice are counted.
// Matches that are not played yet are skipped.
func CreateMetrics(matches []*Match, teams []*Team) map[*Team]*MatchMetrics {
	metrics := make(map[*Team]*MatchMetrics)

	for _, m := range matches {
		extractMatchMetrics(m, teams, metrics)
	}

	for _, m := range metrics {
		m.UpdateDifferences()
	}

	return metrics
}

func extractMatchMetrics(
	match *Match,
	teams []*Team,
	metrics map[*Team]*MatchMetrics,
) {
	t1, t2 := match.Team1, match.Team2
	if t1 == nil || t2 == nil || !match.Played {
		return
	}

	doCount1 := len(teams) == 0 || slices.Contains(teams, t1)
	doCount2 := len(teams) == 0 || slices.Contains(teams, t2)
	if !doCount1 || !doCount2 {
		return
	}

	m1 := getOrAddMetrics(metrics, t1)
	m2 := getOrAddMetrics(metrics, t2)

	m1.NumMatches += 1
	m2.NumMatches += 1

	m1.PointsFor += match.Score1
	m1.PointsAgainst += match.Score2
	m2.PointsFor += match.Score2
	m2.PointsAgainst += match.Score1

	winner, err := match.Winner()
	if err != nil {
		m1.Points += pointsTie
		m2.Points += pointsTie
		return
	}

	if winner == t1 {
		m1.Wins += 1
		m1.Points += pointsWin
		m2.Losses += 1
		m2.Points += pointsLoss
	} else {
		m2.Wins += 1
		m2.Points += pointsWin
		m1.Losses += 1
		m1.Points += pointsLoss
	}
}

func getOrAddMetrics(metrics map[*Team]*MatchMetrics, team *Team) *MatchMetrics {
	m, ok := metrics[team]
	if !ok {
		m = &MatchMetrics{}
		metrics[team] = m
	}
	return m
}

// Adds zeroed metrics to the metrics map for teams which are
// not already present in the map but are in the teams slice
func addZeroMetrics(metrics map[*Team]*MatchMetrics, teams []*Team) {
	for _, t := range teams {
		getOrAddMetrics(metrics, t)
	}
}
