package internal

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrQualifierCount = errors.New("the draw needs exactly 8 ranked qualifiers")
	ErrNoValidDraw    = errors.New("no draw avoids a same group pairing")
	ErrPotSize        = errors.New("paired pots differ in size")
)

// Names of the seeding pots in rank order
var potNames = []string{"D", "E", "F", "G"}

// A Pot is a seeding bucket of qualified teams
type Pot struct {
	Name  string
	Teams []*Team
}

// Puts the qualifiers into the pots D (ranks 1 and 2), E (3, 4),
// F (5, 6) and G (7, 8).
func NewPots(qualifiers []*Team) ([]*Pot, error) {
	if len(qualifiers) != NumQualifiers {
		return nil, fmt.Errorf("%w: got %d", ErrQualifierCount, len(qualifiers))
	}

	ranked := slices.Clone(qualifiers)
	slices.SortFunc(ranked, func(a, b *Team) int { return cmp.Compare(a.Rank, b.Rank) })
	for i, t := range ranked {
		if t.Rank != i+1 {
			return nil, fmt.Errorf("%w: %v holds rank %d", ErrQualifierCount, t, t.Rank)
		}
	}

	potSize := NumQualifiers / len(potNames)
	pots := make([]*Pot, 0, len(potNames))
	for i, name := range potNames {
		teams := ranked[i*potSize : (i+1)*potSize]
		pots = append(pots, &Pot{Name: name, Teams: teams})
	}

	return pots, nil
}

// Draws the quarter-finals from the four pots.
// Pot D is paired with pot G and pot E with pot F. Teams from
// the same group never meet.
//
// The quarter-finals are returned in bracket order: the first
// pairing of D-G, the first of E-F, the second of D-G and the
// second of E-F.
func DrawQuarterFinals(pots []*Pot) ([]*Match, error) {
	if len(pots) != len(potNames) {
		return nil, fmt.Errorf("%w: got %d pots", ErrQualifierCount, len(pots))
	}

	dg, err := pairPots(pots[0], pots[3])
	if err != nil {
		return nil, err
	}
	ef, err := pairPots(pots[1], pots[2])
	if err != nil {
		return nil, err
	}

	matches := make([]*Match, 0, len(dg)+len(ef))
	for i := range max(len(dg), len(ef)) {
		if i < len(dg) {
			matches = append(matches, NewMatch(dg[i][0], dg[i][1], roundQuarterFinals, ""))
		}
		if i < len(ef) {
			matches = append(matches, NewMatch(ef[i][0], ef[i][1], roundQuarterFinals, ""))
		}
	}

	return matches, nil
}

// Pairs two pots of two teams in order. If that puts two teams of the
// same group together the pairing is crossed. Larger pots and pots
// where the crossed pairing still conflicts fall back to the search.
func pairPots(potA, potB *Pot) ([][2]*Team, error) {
	a, b := potA.Teams, potB.Teams
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: pot %s and pot %s", ErrPotSize, potA.Name, potB.Name)
	}

	if len(a) == 2 {
		straight := [][2]*Team{{a[0], b[0]}, {a[1], b[1]}}
		crossed := [][2]*Team{{a[0], b[1]}, {a[1], b[0]}}

		pairing := straight
		if sameGroup(a[0], b[0]) || sameGroup(a[1], b[1]) {
			pairing = crossed
		}
		if !pairingConflicts(pairing) {
			return pairing, nil
		}
	}

	pairing, ok := SearchPairings(a, b)
	if !ok {
		return nil, fmt.Errorf("%w: pot %s and pot %s", ErrNoValidDraw, potA.Name, potB.Name)
	}
	return pairing, nil
}

// Searches for a complete pairing of the teams in potA with the teams
// in potB where no pair shares a group. The teams of potA keep their
// order. The first valid pairing in backtracking order is returned.
func SearchPairings(potA, potB []*Team) ([][2]*Team, bool) {
	if len(potA) != len(potB) {
		return nil, false
	}

	used := make([]bool, len(potB))
	pairing := make([][2]*Team, 0, len(potA))

	var search func(i int) bool
	search = func(i int) bool {
		if i == len(potA) {
			return true
		}
		for j, opponent := range potB {
			if used[j] || sameGroup(potA[i], opponent) {
				continue
			}
			used[j] = true
			pairing = append(pairing, [2]*Team{potA[i], opponent})
			if search(i + 1) {
				return true
			}
			pairing = pairing[:len(pairing)-1]
			used[j] = false
		}
		return false
	}

	if !search(0) {
		return nil, false
	}
	return pairing, true
}

func pairingConflicts(pairing [][2]*Team) bool {
	return slices.ContainsFunc(pairing, func(p [2]*Team) bool { return sameGroup(p[0], p[1]) })
}

func sameGroup(t1, t2 *Team) bool {
	return t1.Group != "" && t1.Group == t2.Group
}
