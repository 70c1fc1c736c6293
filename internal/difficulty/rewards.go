package difficulty

import "github.com/osse101/NotionPet_Go/internal/domain"

// ExpLevels returns the reward table for the ranked tiers
func ExpLevels() []int {
	out := make([]int, RewardTierCount)
	copy(out, expLevels[:])
	return out
}

// RewardForRank returns the reward of a zero-based position in the order.
func RewardForRank(rank int) int {
	if rank < 0 || rank >= RewardTierCount {
		return OtherExp
	}
	return expLevels[rank]
}

// RewardFor returns the reward of an option name by its position in order.
// Unknown names and names past the ranked tiers earn OtherExp.
func RewardFor(order []string, name string) int {
	for i, candidate := range order {
		if candidate == name {
			return RewardForRank(i)
		}
	}
	return OtherExp
}

// RewardTiers lists exactly RewardTierCount tiers. Tiers without an option have an
// empty OptionName.
func RewardTiers(order []string) []domain.RewardTier {
	tiers := make([]domain.RewardTier, RewardTierCount)
	for i := range tiers {
		tiers[i] = domain.RewardTier{Rank: i + 1, Exp: expLevels[i]}
		if i < len(order) {
			tiers[i].OptionName = order[i]
		}
	}
	return tiers
}

// BuildView assembles the difficulty screen for an already reconciled order.
func BuildView(propertyName string, order []string) domain.DifficultyView {
	unranked := []string{}
	if len(order) > RewardTierCount {
		unranked = append(unranked, order[RewardTierCount:]...)
	}
	return domain.DifficultyView{
		PropertyName: propertyName,
		Order:        order,
		Rewards:      RewardTiers(order),
		Unranked:     unranked,
		OtherExp:     OtherExp,
	}
}
