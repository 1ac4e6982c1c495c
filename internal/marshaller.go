package internal

import "encoding/json"

func (t *Tournament) MarshalJSON() ([]byte, error) {
	groups := make([]map[string]any, 0, len(t.groupPhase.Groups))
	for _, g := range t.groupPhase.Groups {
		groups = append(groups, marshalGroup(g))
	}

	result := map[string]any{
		"phase":      t.phase.String(),
		"groups":     groups,
		"rounds":     marshalRounds(t.groupPhase.MatchList.Rounds),
		"qualifiers": marshalTeams(t.Qualifiers()),
		"pots":       marshalPots(t.pots),
		"placements": marshalPlacements(t.Placements()),
	}

	if t.knockout != nil {
		result["knockout"] = marshalKnockout(t.knockout)
	}
	if medals, err := t.Medals(); err == nil {
		result["medals"] = map[string]any{
			"gold":   medals.Gold.Country,
			"silver": medals.Silver.Country,
			"bronze": medals.Bronze.Country,
		}
	}

	return json.Marshal(result)
}

func marshalGroup(group *RoundRobin) map[string]any {
	standings := make([]map[string]any, 0, GroupSize)
	for _, t := range group.FinalRanking.GetRanks() {
		standings = append(standings, marshalStanding(t))
	}

	return map[string]any{
		"name":      group.Group,
		"rounds":    marshalRounds(group.MatchList.Rounds),
		"standings": standings,
	}
}

func marshalStanding(team *Team) map[string]any {
	return map[string]any{
		"team":            team.Country,
		"isoCode":         team.IsoCode,
		"groupRank":       team.GroupRank,
		"rank":            team.Rank,
		"wins":            team.Wins,
		"losses":          team.Losses,
		"points":          team.Points,
		"pointsFor":       team.PointsFor,
		"pointsAgainst":   team.PointsAgainst,
		"pointDifference": team.PointDifference(),
		"form":            team.Form,
	}
}

func marshalRounds(rounds []*Round) [][]map[string]any {
	result := make([][]map[string]any, len(rounds))
	for i, round := range rounds {
		roundMatches := make([]map[string]any, len(round.Matches))
		for i, match := range round.Matches {
			roundMatches[i] = marshalMatch(match)
		}
		result[i] = roundMatches
	}
	return result
}

func marshalMatch(match *Match) map[string]any {
	result := map[string]any{
		"team1":  marshalTeamName(match.Team1),
		"team2":  marshalTeamName(match.Team2),
		"round":  match.Round,
		"played": match.Played,
	}
	if match.Group != "" {
		result["group"] = match.Group
	}
	if match.Played {
		result["score"] = []int{match.Score1, match.Score2}
	}
	return result
}

func marshalKnockout(knockout *Knockout) map[string]any {
	marshalMatches := func(matches []*Match) []map[string]any {
		result := make([]map[string]any, len(matches))
		for i, m := range matches {
			result[i] = marshalMatch(m)
		}
		return result
	}

	return map[string]any{
		"quarterFinals": marshalMatches(knockout.QuarterFinals),
		"semiFinals":    marshalMatches(knockout.SemiFinals),
		"thirdPlace":    marshalMatch(knockout.ThirdPlace),
		"final":         marshalMatch(knockout.Final),
	}
}

func marshalPots(pots []*Pot) map[string][]string {
	result := make(map[string][]string, len(pots))
	for _, p := range pots {
		result[p.Name] = marshalTeams(p.Teams)
	}
	return result
}

func marshalPlacements(placements [][]*Team) [][]string {
	result := make([][]string, len(placements))
	for i, rank := range placements {
		result[i] = marshalTeams(rank)
	}
	return result
}

func marshalTeams(teams []*Team) []string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Country
	}
	return names
}

func marshalTeamName(team *Team) string {
	if team == nil {
		return ""
	}
	return team.Country
}
