package dice

import "sugoroku/internal/game/prob"

// Option is a die a player can pick at a dice selection cell.
// Mystery options keep their weights hidden from clients.
type Option struct {
	Name        string
	Description string
	Mystery     bool
	Dist        prob.Distribution[int]
}

// Die returns a permanent Dice for the option.
func (o Option) Die() *Dice {
	return New(o.Name, o.Dist)
}

func faces(weights ...float64) prob.Distribution[int] {
	entries := make([]prob.Weighted[int], len(weights))
	for i, w := range weights {
		entries[i] = prob.Weighted[int]{Outcome: i + 1, Weight: w}
	}
	return prob.Trusted(entries...)
}

// Standard is the fair six-sided die every game starts with.
var Standard = Option{
	Name:        "Standard die",
	Description: "A fair die: every face from 1 to 6 is equally likely.",
	Dist:        faces(1.0/6, 1.0/6, 1.0/6, 1.0/6, 1.0/6, 1.0/6),
}

// Predefined are the dice whose weights are shown to players.
var Predefined = []Option{
	Standard,
	{
		Name:        "High roller",
		Description: "Leans towards big faces.",
		Dist:        faces(0.05, 0.05, 0.1, 0.2, 0.25, 0.35),
	},
	{
		Name:        "Low roller",
		Description: "Leans towards small faces.",
		Dist:        faces(0.35, 0.25, 0.2, 0.1, 0.05, 0.05),
	},
	{
		Name:        "Steady die",
		Description: "Only ever shows 3 or 4.",
		Dist: prob.Trusted(
			prob.Weighted[int]{Outcome: 3, Weight: 0.5},
			prob.Weighted[int]{Outcome: 4, Weight: 0.5},
		),
	},
}

// Mystery are dice with hidden weights; players learn them by rolling.
var Mystery = []Option{
	{
		Name:        "Mystery die A",
		Description: "Nobody knows what is inside. Roll it and find out.",
		Mystery:     true,
		Dist: prob.Trusted(
			prob.Weighted[int]{Outcome: 1, Weight: 0.4},
			prob.Weighted[int]{Outcome: 6, Weight: 0.6},
		),
	},
	{
		Name:        "Mystery die B",
		Description: "Feels a little heavy on one side.",
		Mystery:     true,
		Dist:        faces(0.1, 0.4, 0.1, 0.1, 0.2, 0.1),
	},
	{
		Name:        "Cursed die",
		Description: "Rumoured to walk backwards now and then.",
		Mystery:     true,
		Dist: prob.Trusted(
			prob.Weighted[int]{Outcome: -1, Weight: 0.2},
			prob.Weighted[int]{Outcome: 4, Weight: 0.3},
			prob.Weighted[int]{Outcome: 8, Weight: 0.5},
		),
	},
}

// Catalogue returns the predefined options followed by the mystery ones.
// Indexes into this slice are what players submit.
func Catalogue() []Option {
	all := make([]Option, 0, len(Predefined)+len(Mystery))
	all = append(all, Predefined...)
	return append(all, Mystery...)
}

// Lookup returns the catalogue option at index.
func Lookup(index int) (Option, bool) {
	all := Catalogue()
	if index < 0 || index >= len(all) {
		return Option{}, false
	}
	return all[index], true
}
