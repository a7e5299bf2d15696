package rank

type Tier struct {
	Name      string `json:"name"`
	MinRating int    `json:"minRating"`
	// Level orders tiers, Bronze is 0.
	Level int `json:"level"`
}

var tiers = []Tier{
	{Name: "Bronze", MinRating: 0, Level: 0},
	{Name: "Silver", MinRating: 1400, Level: 1},
	{Name: "Gold", MinRating: 1600, Level: 2},
	{Name: "Platinum", MinRating: 1800, Level: 3},
	{Name: "Diamond", MinRating: 2000, Level: 4},
	{Name: "Master", MinRating: 2200, Level: 5},
	{Name: "Grandmaster", MinRating: 2400, Level: 6},
}

// GetTier returns the highest tier whose lower bound is <= rating.
// Ratings below 1400, negative ones included, are Bronze.
func GetTier(rating int) Tier {
	for i := len(tiers) - 1; i > 0; i-- {
		if rating >= tiers[i].MinRating {
			return tiers[i]
		}
	}
	return tiers[0]
}

// Tiers lists all tiers from Bronze to Grandmaster.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

func (t Tier) Above(o Tier) bool {
	return t.Level > o.Level
}
