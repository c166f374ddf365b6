package planner

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// Zoom bounds and step for the board canvas.
const (
	MinZoom     = 0.5
	MaxZoom     = 2.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// View is how a trip's cards are laid out for the user.
type View string

const (
	ViewBoard    View = "board"
	ViewTimeline View = "timeline"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v == ViewBoard || v == ViewTimeline
}

// ConnectState is the pending-connection slot of a board: either Idle or
// Connecting from a source card.
type ConnectState struct {
	from    uuid.UUID
	pending bool
}

// Idle is the state with no pending connection.
var Idle = ConnectState{}

// Connecting returns the state waiting for a target to connect from to.
func Connecting(from uuid.UUID) ConnectState {
	return ConnectState{from: from, pending: true}
}

// Source returns the card a pending connection starts from.
func (s ConnectState) Source() (uuid.UUID, bool) {
	return s.from, s.pending
}

// Interaction is the transient user-interface state of one trip's board.
// uuid.Nil in Dragging or Selected means no card.
type Interaction struct {
	Connect  ConnectState
	Dragging uuid.UUID
	Selected uuid.UUID
	Zoom     float64
	View     View
}

// NewInteraction returns the state of a board nobody has touched yet.
func NewInteraction() Interaction {
	return Interaction{Zoom: DefaultZoom, View: ViewBoard}
}

// Board is one trip's card collection together with its interaction state.
// Cards is never modified in place; each operation builds a new slice.
type Board struct {
	Cards []domain.Card
	State Interaction
}

// NewBoard returns a board over cards with a fresh interaction state.
func NewBoard(cards []domain.Card) Board {
	return Board{Cards: cards, State: NewInteraction()}
}

func (b Board) index(id uuid.UUID) int {
	return slices.IndexFunc(b.Cards, func(c domain.Card) bool { return c.ID == id })
}

func (b Board) find(id uuid.UUID) (int, error) {
	i := b.index(id)
	if i < 0 {
		return -1, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}
	return i, nil
}

func (b Board) withCard(i int, c domain.Card) Board {
	cards := slices.Clone(b.Cards)
	cards[i] = c
	return Board{Cards: cards, State: b.State}
}

// CreateCard appends a new card built from in.
func (b Board) CreateCard(id uuid.UUID, in domain.CardInput) (Board, domain.Card, error) {
	if b.index(id) >= 0 {
		return b, domain.Card{}, fmt.Errorf("%w: card %s already exists", domain.ErrValidation, id)
	}
	c, err := domain.NewCard(id, in)
	if err != nil {
		return b, domain.Card{}, err
	}
	cards := append(slices.Clone(b.Cards), c)
	return Board{Cards: cards, State: b.State}, c, nil
}

// UpdateCard replaces every user-editable field of a card with in.
// The card keeps its ID and connections. Its type cannot change.
func (b Board) UpdateCard(id uuid.UUID, in domain.CardInput) (Board, domain.Card, error) {
	i, err := b.find(id)
	if err != nil {
		return b, domain.Card{}, err
	}
	old := b.Cards[i]
	if in.Type != old.Type() {
		return b, domain.Card{}, fmt.Errorf("%w: card type is %s and cannot change to %q",
			domain.ErrValidation, old.Type(), in.Type)
	}
	if in.Position == nil {
		pos := old.Position
		in.Position = &pos
	}
	c, err := domain.NewCard(id, in)
	if err != nil {
		return b, domain.Card{}, err
	}
	c.Connections = old.Connections
	return b.withCard(i, c), c, nil
}

// DeleteCard removes a card. Connections other cards hold to it are left
// dangling.
func (b Board) DeleteCard(id uuid.UUID) (Board, error) {
	i, err := b.find(id)
	if err != nil {
		return b, err
	}
	next := Board{Cards: slices.Delete(slices.Clone(b.Cards), i, i+1), State: b.State}
	if next.State.Selected == id {
		next.State.Selected = uuid.Nil
	}
	if next.State.Dragging == id {
		next.State.Dragging = uuid.Nil
	}
	return next, nil
}

// Connect advances the pending-connection state machine with a click on id.
//
//	Idle           -> Connecting(id)
//	Connecting(a)  -> Idle, appending id to a's connections (a != id)
//	Connecting(id) -> unchanged
//
// A repeated click on the pending source does not cancel it. If the source
// card was deleted while pending, the commit appends nothing.
func (b Board) Connect(id uuid.UUID) (Board, error) {
	if _, err := b.find(id); err != nil {
		return b, err
	}
	from, pending := b.State.Connect.Source()
	switch {
	case !pending:
		next := b
		next.State.Connect = Connecting(id)
		return next, nil
	case from == id:
		return b, nil
	}

	next := b
	if i := b.index(from); i >= 0 {
		src := b.Cards[i]
		src.Connections = append(slices.Clone(src.Connections), id)
		next = b.withCard(i, src)
	}
	next.State.Connect = Idle
	return next, nil
}

// DragStart marks a card as being dragged.
func (b Board) DragStart(id uuid.UUID) (Board, error) {
	if _, err := b.find(id); err != nil {
		return b, err
	}
	next := b
	next.State.Dragging = id
	return next, nil
}

// DragEnd moves a card by delta screen pixels. The delta is scaled by the
// zoom factor and each coordinate is clamped at zero.
func (b Board) DragEnd(id uuid.UUID, delta domain.Position) (Board, domain.Card, error) {
	i, err := b.find(id)
	if err != nil {
		return b, domain.Card{}, err
	}
	zoom := b.State.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	c := b.Cards[i]
	c.Position = domain.Position{
		X: math.Max(0, c.Position.X+delta.X/zoom),
		Y: math.Max(0, c.Position.Y+delta.Y/zoom),
	}
	next := b.withCard(i, c)
	next.State.Dragging = uuid.Nil
	return next, c, nil
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom] and rounded
// to one decimal.
func (b Board) SetZoom(zoom float64) (Board, error) {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return b, fmt.Errorf("%w: zoom must be a finite number", domain.ErrValidation)
	}
	next := b
	next.State.Zoom = math.Round(min(MaxZoom, max(MinZoom, zoom))*10) / 10
	return next, nil
}

// ZoomIn raises the zoom factor by one step.
func (b Board) ZoomIn() Board {
	next, _ := b.SetZoom(b.zoom() + ZoomStep)
	return next
}

// ZoomOut lowers the zoom factor by one step.
func (b Board) ZoomOut() Board {
	next, _ := b.SetZoom(b.zoom() - ZoomStep)
	return next
}

func (b Board) zoom() float64 {
	if b.State.Zoom == 0 {
		return DefaultZoom
	}
	return b.State.Zoom
}

// Select marks a card as selected. uuid.Nil clears the selection.
func (b Board) Select(id uuid.UUID) (Board, error) {
	if id != uuid.Nil {
		if _, err := b.find(id); err != nil {
			return b, err
		}
	}
	next := b
	next.State.Selected = id
	return next, nil
}

// SetView switches between the board and timeline layouts.
func (b Board) SetView(v View) (Board, error) {
	if !v.Valid() {
		return b, fmt.Errorf("%w: unknown view %q", domain.ErrValidation, v)
	}
	next := b
	next.State.View = v
	return next, nil
}
