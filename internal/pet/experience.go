package pet

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/NotionPet_Go/internal/difficulty"
	"github.com/osse101/NotionPet_Go/internal/domain"
)

// StatusSet matches status names case-insensitively after Unicode normalization
type StatusSet map[string]struct{}

// NewStatusSet builds a set from status names such as "완료" or "Done"
func NewStatusSet(names []string) StatusSet {
	set := make(StatusSet, len(names))
	for _, name := range names {
		if key := statusKey(name); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Contains reports whether name is one of the completed statuses
func (s StatusSet) Contains(name string) bool {
	_, ok := s[statusKey(name)]
	return ok
}

func statusKey(name string) string {
	// Casers carry state, so one is built per call
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// ExperienceSource names the properties experience is read from
type ExperienceSource struct {
	XPProperty         string
	StatusProperty     string
	DifficultyProperty string
	DifficultyOrder    []string
}

// SourceFromSettings builds the source description of stored settings with the given order
func SourceFromSettings(settings *domain.Settings, order []string) ExperienceSource {
	return ExperienceSource{
		XPProperty:         settings.XPPropertyName,
		StatusProperty:     settings.StatusPropertyName,
		DifficultyProperty: settings.DifficultyPropertyName,
		DifficultyOrder:    order,
	}
}

// ComputeExperience sums experience over completed pages and returns the total and
// the number of pages counted.
//
// Without a status property every page counts. A page contributes the floor of its
// experience value, ignoring missing, negative and non-finite values, plus the reward
// of its difficulty option by rank.
func ComputeExperience(pages []domain.NotionPage, src ExperienceSource, completed StatusSet) (int64, int) {
	var total int64
	count := 0
	for _, page := range pages {
		if src.StatusProperty != "" && !completed.Contains(page.Statuses[src.StatusProperty]) {
			continue
		}
		count++

		if v := page.Numbers[src.XPProperty]; v != nil {
			total = addSaturating(total, floorExperience(*v))
		}
		if src.DifficultyProperty != "" {
			if name := norm.NFC.String(page.Selects[src.DifficultyProperty]); name != "" {
				total = addSaturating(total, int64(difficulty.RewardFor(src.DifficultyOrder, name)))
			}
		}
	}
	return total, count
}

func floorExperience(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}

func addSaturating(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
