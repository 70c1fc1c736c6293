package progression

// Level curve constants
const (
	// MaxLevel is the highest level inside one cycle
	MaxLevel = 10

	// ExtraAtMaxLevel is the experience spent at MaxLevel before a rebirth
	ExtraAtMaxLevel = 500

	// RebirthCycleCost is the experience consumed by one full cycle:
	// the MaxLevel threshold plus ExtraAtMaxLevel.
	RebirthCycleCost int64 = 2700 + ExtraAtMaxLevel

	// MaxProgress is the upper bound of the progress percentage
	MaxProgress = 100.0
)

// levelTable holds the cumulative experience needed for each level.
// Index i is the threshold for level i+1.
var levelTable = [MaxLevel]int64{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700}

// Health thresholds in whole days since the last experience update
const (
	HealthyMaxDays = 2 // strictly less than
	CautionMaxDays = 7 // less than or equal
)

// Health status presentation values
const (
	HealthIconHealthy = "💚"
	HealthIconCaution = "💛"
	HealthIconSick    = "💔"

	HealthStatusHealthy = "활발함"
	HealthStatusCaution = "주의"
	HealthStatusSick    = "아픔"

	HealthMessageHealthy = "다마고치가 건강해요!"
	HealthMessageCaution = "조금 외로워 보여요."
	HealthMessageSick    = "오랫동안 돌보지 않았어요..."

	HealthColorHealthy = "text-green-600"
	HealthColorCaution = "text-yellow-600"
	HealthColorSick    = "text-red-600"

	LastUpdateJustNow    = "방금 전"
	LastUpdateDaysFormat = "%d일 전"
)

// Wing styles unlocked by level
const (
	WingStyleSimple  = "simple"
	WingStyleAngel   = "angel"
	WingStyleRainbow = "rainbow"

	WingsMinLevel      = 6
	AngelWingsMinLevel = 8
)

// Error messages
const (
	ErrMsgNegativeExperience = "lifetime experience %d is negative"
)
