// Package difficulty keeps a user-ranked list of difficulty option names consistent
// with the option set of the linked task database, and maps ranks to rewards.
package difficulty

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// ReconcileOrder merges a previously saved order with the current option names.
//
// Names from previous that are still present keep their relative order; names only
// present in current are appended in current's order. A name that appears more than
// once in either input is emitted once. The result is a fresh slice and holds exactly
// the distinct names of current, so reconciling twice against the same set returns the
// same order.
func ReconcileOrder(previous, current []string) []string {
	present := make(map[string]struct{}, len(current))
	for _, name := range current {
		present[name] = struct{}{}
	}

	out := make([]string, 0, len(present))
	seen := make(map[string]struct{}, len(present))

	for _, name := range previous {
		if _, ok := present[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, name := range current {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

// MoveOption swaps the entry at index with its neighbour in dir.
// Moves past either end, or from an index outside the order, return an unchanged copy.
func MoveOption(order []string, index int, dir domain.Direction) ([]string, error) {
	out := make([]string, len(order))
	copy(out, order)

	var target int
	switch dir {
	case domain.DirectionUp:
		target = index - 1
	case domain.DirectionDown:
		target = index + 1
	default:
		return out, fmt.Errorf("%w: "+ErrMsgUnknownDirection, domain.ErrInvalidInput, dir)
	}

	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out, nil
	}

	out[index], out[target] = out[target], out[index]
	return out, nil
}

// NormalizeNames returns the names in Unicode NFC form.
// Korean option names typed on different platforms can arrive composed or decomposed.
func NormalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = norm.NFC.String(name)
	}
	return out
}

// OptionNames extracts option names of a select property in the order they are defined.
func OptionNames(prop domain.NotionProperty) []string {
	if prop.Select == nil {
		return []string{}
	}
	names := make([]string, 0, len(prop.Select.Options))
	for _, opt := range prop.Select.Options {
		names = append(names, opt.Name)
	}
	return NormalizeNames(names)
}
