package odds

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ezBadminton/hoopsim/dataset"
	"github.com/ezBadminton/hoopsim/internal"
)

func TestEstimate(t *testing.T) {
	dataSet, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}

	logger, hook := test.NewNullLogger()
	settings := Settings{
		Runs:     40,
		Workers:  4,
		Seed:     7,
		FormBias: internal.FormBias{"Srbija": 100},
		Logger:   logger,
	}

	predictions, err := Estimate(context.Background(), dataSet, settings)
	if err != nil {
		t.Fatal(err)
	}

	if len(predictions) != 12 {
		t.Fatalf("expected a prediction per team, got %d", len(predictions))
	}

	gold, silver, bronze := 0, 0, 0
	for i, p := range predictions {
		gold += p.Gold
		silver += p.Silver
		bronze += p.Bronze
		if i > 0 && p.Gold > predictions[i-1].Gold {
			t.Fatal("the predictions are not ordered by gold medals")
		}
	}
	if gold != 40 || silver != 40 || bronze != 40 {
		t.Fatal("every run should hand out exactly one medal of each kind")
	}

	if hook.LastEntry() == nil || hook.LastEntry().Message != "odds estimated" {
		t.Fatal("the estimate was not logged")
	}

	again, err := Estimate(context.Background(), dataSet, settings)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(predictions, again) {
		t.Fatal("the same seed produced different odds")
	}
}

func TestEstimateErrors(t *testing.T) {
	dataSet, err := dataset.Default()
	if err != nil {
		t.Fatal(err)
	}

	_, err = Estimate(context.Background(), dataSet, Settings{Runs: 0})
	if !errors.Is(err, ErrNoRuns) {
		t.Fatal("zero runs did not error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Estimate(ctx, dataSet, Settings{Runs: 10, Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatal("a canceled context did not stop the estimate")
	}

	broken := &dataset.DataSet{
		Groups: map[string][]dataset.TeamRecord{
			"A": {{Country: "Alpha", IsoCode: "ALP", FibaRank: 1}},
		},
	}
	_, err = Estimate(context.Background(), broken, Settings{Runs: 2})
	if !errors.Is(err, internal.ErrGroupSize) {
		t.Fatal("an invalid group did not fail the estimate")
	}
}
