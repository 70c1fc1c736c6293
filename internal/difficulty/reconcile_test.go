package difficulty

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

func TestReconcileOrder(t *testing.T) {
	tests := []struct {
		name     string
		previous []string
		current  []string
		want     []string
	}{
		{"keeps previous order and appends new", []string{"B", "A"}, []string{"A", "B", "C"}, []string{"B", "A", "C"}},
		{"drops deleted names", []string{"A", "B", "C"}, []string{"A", "C"}, []string{"A", "C"}},
		{"empty previous takes external order", nil, []string{"상", "중", "하"}, []string{"상", "중", "하"}},
		{"empty current yields empty", []string{"A", "B"}, nil, []string{}},
		{"both empty", nil, nil, []string{}},
		{"rename moves to end", []string{"상", "중", "하"}, []string{"상", "보통", "하"}, []string{"상", "하", "보통"}},
		{"duplicates collapse", []string{"A", "A", "B"}, []string{"B", "A", "B", "C"}, []string{"A", "B", "C"}},
		{"new names keep external order", []string{"Z"}, []string{"C", "Z", "A", "B"}, []string{"Z", "C", "A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileOrder(tt.previous, tt.current)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReconcileOrder() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcileOrder_SetEqualityAndIdempotence(t *testing.T) {
	inputs := [][]string{
		{},
		{"A"},
		{"A", "B"},
		{"B", "A", "C"},
		{"C", "C", "D"},
		{"즉시처리", "상", "중", "하"},
	}

	for _, previous := range inputs {
		for _, current := range inputs {
			once := ReconcileOrder(previous, current)

			assert.ElementsMatch(t, distinct(current), once, "previous=%v current=%v", previous, current)
			assert.Len(t, once, len(distinct(current)))

			twice := ReconcileOrder(once, current)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("not idempotent for previous=%v current=%v (-once +twice):\n%s", previous, current, diff)
			}
		}
	}
}

func TestReconcileOrder_DoesNotMutateInputs(t *testing.T) {
	previous := []string{"B", "A"}
	current := []string{"A", "B", "C"}

	_ = ReconcileOrder(previous, current)

	assert.Equal(t, []string{"B", "A"}, previous)
	assert.Equal(t, []string{"A", "B", "C"}, current)
}

func TestMoveOption(t *testing.T) {
	order := []string{"A", "B", "C"}

	tests := []struct {
		name  string
		index int
		dir   domain.Direction
		want  []string
	}{
		{"up at top is no-op", 0, domain.DirectionUp, []string{"A", "B", "C"}},
		{"up from middle", 1, domain.DirectionUp, []string{"B", "A", "C"}},
		{"down from middle", 1, domain.DirectionDown, []string{"A", "C", "B"}},
		{"down at bottom is no-op", 2, domain.DirectionDown, []string{"A", "B", "C"}},
		{"negative index is no-op", -1, domain.DirectionDown, []string{"A", "B", "C"}},
		{"index past end is no-op", 5, domain.DirectionUp, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoveOption(order, tt.index, tt.dir)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MoveOption() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	assert.Equal(t, []string{"A", "B", "C"}, order, "input must not be mutated")
}

func TestMoveOption_EmptyOrder(t *testing.T) {
	got, err := MoveOption(nil, 0, domain.DirectionUp)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMoveOption_UnknownDirection(t *testing.T) {
	_, err := MoveOption([]string{"A", "B"}, 0, domain.Direction("sideways"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeNames(t *testing.T) {
	// "상" as a decomposed jamo sequence
	decomposed := "\u1109\u1161\u11bc"
	got := NormalizeNames([]string{decomposed, "중"})
	assert.Equal(t, []string{"상", "중"}, got)
}

func TestOptionNames(t *testing.T) {
	prop := domain.NotionProperty{
		Name: "난이도",
		Type: domain.PropertyTypeSelect,
		Select: &domain.SelectConfig{Options: []domain.SelectOption{
			{ID: "1", Name: "상"},
			{ID: "2", Name: "중"},
			{ID: "3", Name: "하"},
		}},
	}
	assert.Equal(t, []string{"상", "중", "하"}, OptionNames(prop))
	assert.Empty(t, OptionNames(domain.NotionProperty{Type: domain.PropertyTypeNumber}))
}

func distinct(names []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func BenchmarkReconcileOrder(b *testing.B) {
	previous := []string{"즉시처리", "상", "중", "하", "A", "B", "C"}
	current := []string{"상", "중", "하", "D", "즉시처리", "E"}
	for i := 0; i < b.N; i++ {
		_ = ReconcileOrder(previous, current)
	}
}
