// Package odds estimates medal chances by running many
// independently seeded tournaments.
package odds

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ezBadminton/hoopsim/basketball"
	"github.com/ezBadminton/hoopsim/dataset"
	"github.com/ezBadminton/hoopsim/internal"
)

var ErrNoRuns = errors.New("at least one run is required")

type Settings struct {
	Runs    int
	Workers int
	// Run i is seeded with Seed+i
	Seed     int64
	FormBias internal.FormBias
	Logger   *logrus.Logger
}

// The medal counts of one team over all runs
type Prediction struct {
	Country string
	IsoCode string

	Gold, Silver, Bronze int
	// Percentages of the runs, rounded to two decimals
	GoldChance, MedalChance float64
}

type outcome struct {
	gold, silver, bronze string
}

// Runs the tournament of the data set Runs times and counts the medals.
// The runs are spread over Workers goroutines. The result is ordered by
// gold, silver and bronze counts.
func Estimate(ctx context.Context, dataSet *dataset.DataSet, settings Settings) ([]Prediction, error) {
	if settings.Runs < 1 {
		return nil, ErrNoRuns
	}
	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}
	logger := settings.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	outcomes := make([]outcome, settings.Runs)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range settings.Runs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			seed := settings.Seed + int64(i)
			result, err := runOnce(dataSet, seed, settings.FormBias)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seed, err)
			}
			outcomes[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	predictions := aggregate(dataSet, outcomes)

	logger.WithFields(logrus.Fields{
		"runs":    settings.Runs,
		"workers": workers,
	}).Info("odds estimated")

	return predictions, nil
}

func runOnce(dataSet *dataset.DataSet, seed int64, bias internal.FormBias) (outcome, error) {
	simulator := basketball.NewSimulator(internal.NewRand(seed))
	tournament, err := internal.NewTournament(
		dataSet.BuildTeams(),
		dataSet.BuildExhibitions(),
		simulator,
		internal.Settings{FormBias: bias},
	)
	if err != nil {
		return outcome{}, err
	}
	if err := tournament.Run(); err != nil {
		return outcome{}, err
	}

	medals, err := tournament.Medals()
	if err != nil {
		return outcome{}, err
	}
	return outcome{
		gold:   medals.Gold.Country,
		silver: medals.Silver.Country,
		bronze: medals.Bronze.Country,
	}, nil
}

func aggregate(dataSet *dataset.DataSet, outcomes []outcome) []Prediction {
	byCountry := make(map[string]*Prediction, dataSet.NumTeams())
	predictions := make([]*Prediction, 0, dataSet.NumTeams())
	for _, teams := range dataSet.Groups {
		for _, t := range teams {
			p := &Prediction{Country: t.Country, IsoCode: t.IsoCode}
			byCountry[t.Country] = p
			predictions = append(predictions, p)
		}
	}

	for _, o := range outcomes {
		byCountry[o.gold].Gold += 1
		byCountry[o.silver].Silver += 1
		byCountry[o.bronze].Bronze += 1
	}

	runs := float64(len(outcomes))
	result := make([]Prediction, 0, len(predictions))
	for _, p := range predictions {
		p.GoldChance = percentage(p.Gold, runs)
		p.MedalChance = percentage(p.Gold+p.Silver+p.Bronze, runs)
		result = append(result, *p)
	}

	slices.SortFunc(result, func(a, b Prediction) int {
		if c := cmp.Compare(b.Gold, a.Gold); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Silver, a.Silver); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Bronze, a.Bronze); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})

	return result
}

func percentage(count int, runs float64) float64 {
	p := float64(count) / runs * 100
	return math.Round(p*100) / 100
}
