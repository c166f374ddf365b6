package board

import (
	"cmp"
	"slices"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// Timeline orders cards top to bottom by their vertical board position.
// Cards at the same height keep their collection order. The input slice is
// not modified.
//
// Vertical position stands in for chronology; card dates and times are not
// consulted.
func Timeline(cards []domain.Card) []domain.Card {
	out := slices.Clone(cards)
	if out == nil {
		out = []domain.Card{}
	}
	slices.SortStableFunc(out, func(a, b domain.Card) int {
		return cmp.Compare(a.Position.Y, b.Position.Y)
	})
	return out
}
