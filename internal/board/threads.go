// Package board holds the derived views of a trip's card collection:
// connection geometry, timeline order, budget summary and day balance, plus
// the seeds of the packing checklist and local tips and the moodboard URL
// classifier. Every function is pure and recomputes from the full snapshot
// it is given; nothing is cached between calls.
package board

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// Rendered card size on the canvas. A connection is anchored at the card's
// centre, i.e. its position offset by half of each dimension.
const (
	CardWidth  = 224
	CardHeight = 200

	// curvature scales the horizontal span into the upward bow of a thread.
	curvature = 0.3
)

// Thread is the geometry of one rendered connection between two cards:
// a quadratic curve from Start to End bending through Control.
type Thread struct {
	From    uuid.UUID       `json:"from"`
	To      uuid.UUID       `json:"to"`
	Start   domain.Position `json:"start"`
	End     domain.Position `json:"end"`
	Control domain.Position `json:"control"`
	Path    string          `json:"path"`
}

// Anchor returns the point a card's threads attach to.
func Anchor(c domain.Card) domain.Position {
	return domain.Position{
		X: c.Position.X + CardWidth/2,
		Y: c.Position.Y + CardHeight/2,
	}
}

// Threads computes the geometry of every connection in cards.
// Output follows source-card order, then each card's own connection order.
// Connections whose target is not in cards are skipped without error.
func Threads(cards []domain.Card) []Thread {
	byID := make(map[uuid.UUID]domain.Card, len(cards))
	for _, c := range cards {
		if _, seen := byID[c.ID]; !seen {
			byID[c.ID] = c
		}
	}

	threads := []Thread{}
	for _, src := range cards {
		for _, targetID := range src.Connections {
			target, ok := byID[targetID]
			if !ok {
				continue
			}
			threads = append(threads, thread(src, target))
		}
	}
	return threads
}

func thread(from, to domain.Card) Thread {
	start, end := Anchor(from), Anchor(to)
	mid := domain.Position{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	control := domain.Position{X: mid.X, Y: mid.Y - math.Abs(end.X-start.X)*curvature}
	return Thread{
		From:    from.ID,
		To:      to.ID,
		Start:   start,
		End:     end,
		Control: control,
		Path: fmt.Sprintf("M %g %g Q %g %g, %g %g",
			start.X, start.Y, control.X, control.Y, end.X, end.Y),
	}
}
