package progression

import (
	"fmt"
	"math"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Compute converts lifetime experience into level, progress and rebirth count.
//
// Experience is read modulo RebirthCycleCost: every full cycle adds a rebirth and
// restarts at level 1. Inside a cycle the level is the greatest threshold in the
// level table not exceeding the cycle experience, so a value exactly on a threshold
// belongs to the higher level. At MaxLevel progress measures the ExtraAtMaxLevel
// stretch that leads to the next rebirth.
//
// All arithmetic is int64; progress is a float64 ratio of two values below
// RebirthCycleCost and is exact to float64 precision for every input.
func Compute(lifetimeExperience int64) (domain.ProgressionResult, error) {
	if lifetimeExperience < 0 {
		return domain.ProgressionResult{}, fmt.Errorf("%w: "+ErrMsgNegativeExperience, domain.ErrInvalidInput, lifetimeExperience)
	}

	rebirthCount := lifetimeExperience / RebirthCycleCost
	currentCycleXP := lifetimeExperience % RebirthCycleCost
	level := levelForCycleXP(currentCycleXP)

	if level >= MaxLevel {
		xpIntoMaxLevel := currentCycleXP - levelTable[MaxLevel-1]
		progress := MaxProgress * float64(xpIntoMaxLevel) / float64(ExtraAtMaxLevel)
		return domain.ProgressionResult{
			Level:            MaxLevel,
			Progress:         math.Min(MaxProgress, progress),
			XPInCurrentLevel: xpIntoMaxLevel,
			XPForNextLevel:   ExtraAtMaxLevel,
			RebirthCount:     rebirthCount,
			CurrentCycleXP:   currentCycleXP,
		}, nil
	}

	xpAtLevelStart := levelTable[level-1]
	xpForNextLevel := levelTable[level] - xpAtLevelStart
	xpInCurrentLevel := currentCycleXP - xpAtLevelStart

	return domain.ProgressionResult{
		Level:            level,
		Progress:         MaxProgress * float64(xpInCurrentLevel) / float64(xpForNextLevel),
		XPInCurrentLevel: xpInCurrentLevel,
		XPForNextLevel:   xpForNextLevel,
		RebirthCount:     rebirthCount,
		CurrentCycleXP:   currentCycleXP,
	}, nil
}

// levelForCycleXP scans the table from the top; levelTable[0] is 0 so the scan
// always ends at level 1 or above.
func levelForCycleXP(cycleXP int64) int {
	for i := MaxLevel - 1; i >= 0; i-- {
		if cycleXP >= levelTable[i] {
			return i + 1
		}
	}
	return 1
}

// LevelTable returns a copy of the cumulative level thresholds
func LevelTable() []int64 {
	out := make([]int64, MaxLevel)
	copy(out, levelTable[:])
	return out
}

// XPForLevel returns the cycle experience at which the given level starts.
// Levels outside 1..MaxLevel are clamped.
func XPForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelTable[level-1]
}
