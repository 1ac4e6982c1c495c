package internal

import (
	"errors"
	"testing"
)

func TestParseExhibitionResult(t *testing.T) {
	tests := []struct {
		result        string
		own, opponent int
		err           bool
	}{
		{result: "92-86", own: 92, opponent: 86},
		{result: " 70 - 101 ", own: 70, opponent: 101},
		{result: "92", err: true},
		{result: "92-86-1", err: true},
		{result: "a-86", err: true},
		{result: "", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			own, opponent, err := ParseExhibitionResult(tt.result)
			if tt.err {
				if !errors.Is(err, ErrMalformedResult) {
					t.Fatalf("expected ErrMalformedResult, got %v", err)
				}
				return
			}
			if err != nil || own != tt.own || opponent != tt.opponent {
				t.Fatalf("got %d-%d (%v)", own, opponent, err)
			}
		})
	}
}

func TestCalculateForm(t *testing.T) {
	exhibitions := []Exhibition{
		{Date: "06/07/24", Opponent: "FRA", Result: "85-79"},
		{Date: "12/07/24", Opponent: "PRI", Result: "93-103"},
	}
	form, err := CalculateForm(exhibitions)
	if err != nil || form != -4 {
		t.Fatalf("expected a form of -4, got %d (%v)", form, err)
	}

	form, err = CalculateForm(nil)
	if err != nil || form != 0 {
		t.Fatal("no exhibitions should give a neutral form")
	}

	exhibitions = append(exhibitions, Exhibition{Result: "won"})
	if _, err := CalculateForm(exhibitions); !errors.Is(err, ErrMalformedResult) {
		t.Fatal("a malformed result did not error")
	}
}

func TestFormBias(t *testing.T) {
	bias := FormBias{"Srbija": 100, "SRB": 5, "USA": 7}

	serbia := &Team{Country: "Srbija", IsoCode: "SRB"}
	usa := &Team{Country: "Sjedinjene Države", IsoCode: "USA"}
	japan := &Team{Country: "Japan", IsoCode: "JPN"}

	eq1 := bias.For(serbia) == 100
	eq2 := bias.For(usa) == 7
	eq3 := bias.For(japan) == 0
	eq4 := FormBias(nil).For(serbia) == 0
	if !eq1 || !eq2 || !eq3 || !eq4 {
		t.Fatal("the form bias was not looked up by country first and federation code second")
	}
}

func TestTeamRegistry(t *testing.T) {
	registry := NewTeamRegistry()
	teams := TeamSlice(3)

	for _, team := range teams {
		if err := registry.Register(team); err != nil {
			t.Fatal(err)
		}
	}

	err := registry.Register(&Team{Country: "B"})
	if !errors.Is(err, ErrDuplicateTeam) {
		t.Fatal("a team with the same country was registered twice")
	}

	team, ok := registry.Lookup("C")
	eq1 := ok && team == teams[2]
	eq2 := registry.Len() == 3 && registry.Teams()[0] == teams[0]
	if !eq1 || !eq2 {
		t.Fatal("the registry does not return the registered teams")
	}

	if _, ok := registry.Lookup("Z"); ok {
		t.Fatal("an unknown country was found")
	}
}

func TestTeamStats(t *testing.T) {
	team := &Team{Country: "A", Wins: 2, Losses: 1, Points: 5, PointsFor: 250, PointsAgainst: 240}
	if team.PointDifference() != 10 {
		t.Fatal("unexpected point difference")
	}

	team.ResetStats()
	if team.Points != 0 || team.PointsFor != 0 || team.PointDifference() != 0 {
		t.Fatal("the stats were not reset")
	}
}
