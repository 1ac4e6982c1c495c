// Package basketball simulates basketball matches between
// national teams.
package basketball

import (
	"math"
	"math/rand"

	"github.com/ezBadminton/hoopsim/internal"
)

const (
	// Base scores are drawn from [MinScore, MaxScore]
	MinScore = 70
	MaxScore = 99

	// Points added to a side while the scores are level
	TieBreakPoints = 5

	rankGapScale = 0.1
)

// The Simulator draws match scores. The favored team is the one with the
// numerically greater FIBA ranking value (see WinProbability).
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// Returns the probability that team 1 is favored given the
// FIBA ranking values of both teams
func WinProbability(rank1, rank2 int) float64 {
	rankDiff := float64(rank1 - rank2)
	return 1 / (1 + math.Exp(-rankGapScale*rankDiff))
}

// Returns two different scores for the teams and
// moves the form of both teams by the score margin
func (s *Simulator) SimulateMatch(team1, team2 *internal.Team) (int, int) {
	team1Favored := WinProbability(team1.FibaRank, team2.FibaRank) > 0.5

	score1 := s.drawScore()
	score2 := s.drawScore()

	for score1 == score2 {
		bonus1, bonus2 := 0, 0
		if team1Favored {
			bonus1 += TieBreakPoints
		} else {
			bonus2 += TieBreakPoints
		}

		if team1.Form > team2.Form {
			bonus1 += TieBreakPoints
		} else if team2.Form > team1.Form {
			bonus2 += TieBreakPoints
		}

		// The form bonus would cancel the favorite's bonus and
		// the scores would stay level forever
		if bonus1 == bonus2 {
			bonus1, bonus2 = 0, 0
			if team1Favored {
				bonus1 = TieBreakPoints
			} else {
				bonus2 = TieBreakPoints
			}
		}

		score1 += bonus1
		score2 += bonus2
	}

	team1.Form += score1 - score2
	team2.Form += score2 - score1

	return score1, score2
}

func (s *Simulator) drawScore() int {
	return MinScore + s.rng.Intn(MaxScore-MinScore+1)
}
