// Package tier maps an Elo rating to its named skill bracket.
package tier

// Tier is a named skill bracket and the style token used to render its badge.
type Tier struct {
	Name  string `json:"name"`
	Style string `json:"style"`
}

type threshold struct {
	minElo int
	tier   Tier
}

// Highest first. The first threshold the rating reaches wins.
var thresholds = []threshold{
	{2500, Tier{Name: "Legend", Style: "tier-legend"}},
	{2200, Tier{Name: "Grandmaster", Style: "tier-grandmaster"}},
	{2000, Tier{Name: "Master", Style: "tier-master"}},
	{1800, Tier{Name: "Diamond", Style: "tier-diamond"}},
	{1600, Tier{Name: "Platinum", Style: "tier-platinum"}},
	{1400, Tier{Name: "Gold", Style: "tier-gold"}},
	{1200, Tier{Name: "Silver", Style: "tier-silver"}},
	{1000, Tier{Name: "Bronze", Style: "tier-bronze"}},
}

// Unranked is returned for every rating below the lowest threshold.
var Unranked = Tier{Name: "Unranked", Style: "tier-unranked"}

// Classify returns the tier for the given rating. Every int has a tier.
func Classify(elo int) Tier {
	for _, t := range thresholds {
		if elo >= t.minElo {
			return t.tier
		}
	}
	return Unranked
}

// MinElo returns the inclusive lower bound of the named tier. Unranked and
// unknown names report false.
func MinElo(name string) (int, bool) {
	for _, t := range thresholds {
		if t.tier.Name == name {
			return t.minElo, true
		}
	}
	return 0, false
}

// All lists every tier, highest first, ending with Unranked.
func All() []Tier {
	tiers := make([]Tier, 0, len(thresholds)+1)
	for _, t := range thresholds {
		tiers = append(tiers, t.tier)
	}
	return append(tiers, Unranked)
}
