package difficulty

// Reward tiers
const (
	// RewardTierCount is the number of ranked positions that earn a bonus
	RewardTierCount = 4

	// OtherLabel names the bucket of options ranked past the reward tiers
	OtherLabel = "기타"

	// OtherExp is the reward for options outside the reward tiers
	OtherExp = 0
)

// expLevels is the experience per completion for ranks 1..RewardTierCount
var expLevels = [RewardTierCount]int{50, 30, 10, 5}

// Error messages
const (
	ErrMsgUnknownDirection = "unknown move direction %q"
)
