package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardType is the discriminant of the Card tagged union.
type CardType string

const (
	CardFlight   CardType = "flight"
	CardStay     CardType = "stay"
	CardFood     CardType = "food"
	CardActivity CardType = "activity"
	CardNote     CardType = "note"
)

// CardTypes lists every card type in display order.
var CardTypes = []CardType{CardFlight, CardStay, CardFood, CardActivity, CardNote}

// Valid reports whether t is one of the five known card types.
func (t CardType) Valid() bool {
	switch t {
	case CardFlight, CardStay, CardFood, CardActivity, CardNote:
		return true
	}
	return false
}

// Position is a free-form canvas coordinate in pixels.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultPosition is where newly created cards land on the board.
// Cards created back to back overlap until the user moves them.
var DefaultPosition = Position{X: 100, Y: 100}

// UntitledCard is the title given to cards created without one.
const UntitledCard = "Untitled"

// Details is the per-variant payload of a Card. It is sealed: only the five
// variant types in this package implement it.
type Details interface {
	Type() CardType
	sealed()
}

// Flight is the payload of a flight card.
type Flight struct {
	Departure     string
	Arrival       string
	DepartureTime string // "15:04", optional
	ArrivalTime   string // "15:04", optional
}

// Stay is the payload of an accommodation card.
type Stay struct {
	CheckIn  string // "2006-01-02"
	CheckOut string // "2006-01-02"
	Location string
}

// Food is the payload of a meal card.
type Food struct {
	Location string
	Cuisine  string
	Time     string
	Duration *int // minutes
}

// Activity is the payload of an activity card.
type Activity struct {
	Location string
	Time     string
	Duration *int // minutes
	Category string
}

// Note is the payload of a free-text note card.
type Note struct {
	Content string
	Color   string
}

func (Flight) Type() CardType   { return CardFlight }
func (Stay) Type() CardType     { return CardStay }
func (Food) Type() CardType     { return CardFood }
func (Activity) Type() CardType { return CardActivity }
func (Note) Type() CardType     { return CardNote }

func (Flight) sealed()   {}
func (Stay) sealed()     {}
func (Food) sealed()     {}
func (Activity) sealed() {}
func (Note) sealed()     {}

// Card is a single planning item placed on a trip's board.
// Its type is carried by Details and cannot change once constructed;
// changing type means replacing the card.
//
// Cost is nil when spending is not tracked for the card, which is distinct
// from a tracked cost of zero. Connections are directed edges to other card
// IDs; targets that no longer exist are tolerated everywhere.
type Card struct {
	ID          uuid.UUID
	Position    Position
	Title       string
	Cost        *float64
	Connections []uuid.UUID
	ImageURL    string
	StartTime   string
	EndTime     string
	Details     Details
}

// Type returns the card's discriminant, or "" for a zero Card.
func (c Card) Type() CardType {
	if c.Details == nil {
		return ""
	}
	return c.Details.Type()
}

// IsCostTracked reports whether the card carries a cost, zero included.
func (c Card) IsCostTracked() bool {
	return c.Cost != nil
}

// Duration returns the planned duration in minutes of food and activity cards.
// ok is false for other card types or when no duration was given.
func (c Card) Duration() (minutes int, ok bool) {
	switch d := c.Details.(type) {
	case Food:
		if d.Duration != nil {
			return *d.Duration, true
		}
	case Activity:
		if d.Duration != nil {
			return *d.Duration, true
		}
	}
	return 0, false
}

// Location returns the place attached to stay, food and activity cards,
// and the arrival airport of flights.
func (c Card) Location() string {
	switch d := c.Details.(type) {
	case Flight:
		return d.Arrival
	case Stay:
		return d.Location
	case Food:
		return d.Location
	case Activity:
		return d.Location
	}
	return ""
}

// ConnectsTo reports whether the card already has an outgoing edge to id.
func (c Card) ConnectsTo(id uuid.UUID) bool {
	for _, target := range c.Connections {
		if target == id {
			return true
		}
	}
	return false
}

// Nights returns the number of nights between check-in and check-out,
// rounded up. ok is false when the dates are missing or malformed.
func (s Stay) Nights() (nights int, ok bool) {
	in, err := time.Parse(time.DateOnly, s.CheckIn)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(time.DateOnly, s.CheckOut)
	if err != nil {
		return 0, false
	}
	days := math.Abs(out.Sub(in).Hours()) / 24
	return int(math.Ceil(days)), true
}

// FlightDuration returns the absolute time between departure and arrival,
// both read as clock times on the same day.
func (f Flight) FlightDuration() (time.Duration, bool) {
	if f.DepartureTime == "" || f.ArrivalTime == "" {
		return 0, false
	}
	dep, err := time.Parse("15:04", f.DepartureTime)
	if err != nil {
		return 0, false
	}
	arr, err := time.Parse("15:04", f.ArrivalTime)
	if err != nil {
		return 0, false
	}
	d := arr.Sub(dep)
	if d < 0 {
		d = -d
	}
	return d, true
}

// FormatFlightDuration renders d as "Hh Mm".
func FormatFlightDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// CardInput carries the flat set of fields a user fills in when creating a
// card. Fields that do not belong to Type are ignored.
type CardInput struct {
	Type      CardType  `json:"type" validate:"required,oneof=flight stay food activity note"`
	Title     string    `json:"title,omitempty"`
	Cost      *float64  `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Position  *Position `json:"position,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`

	Departure     string `json:"departure,omitempty"`
	Arrival       string `json:"arrival,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`

	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Location string `json:"location,omitempty"`

	Cuisine  string `json:"cuisine,omitempty"`
	Time     string `json:"time,omitempty"`
	Duration *int   `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Category string `json:"category,omitempty"`

	Content string `json:"content,omitempty"`
	Color   string `json:"color,omitempty"`
}

// NewCard builds a card of in.Type with the given ID.
//
// Missing required fields are not an error: they default to empty strings,
// and a blank title becomes "Untitled". The card is placed at in.Position or
// DefaultPosition. Only an unknown type is rejected, with ErrValidation.
func NewCard(id uuid.UUID, in CardInput) (Card, error) {
	details, err := detailsFromInput(in)
	if err != nil {
		return Card{}, err
	}
	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = UntitledCard
	}
	pos := DefaultPosition
	if in.Position != nil {
		pos = *in.Position
	}
	return Card{
		ID:        id,
		Position:  pos,
		Title:     title,
		Cost:      in.Cost,
		ImageURL:  in.ImageURL,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Details:   details,
	}, nil
}

func detailsFromInput(in CardInput) (Details, error) {
	switch in.Type {
	case CardFlight:
		return Flight{
			Departure:     in.Departure,
			Arrival:       in.Arrival,
			DepartureTime: in.DepartureTime,
			ArrivalTime:   in.ArrivalTime,
		}, nil
	case CardStay:
		return Stay{CheckIn: in.CheckIn, CheckOut: in.CheckOut, Location: in.Location}, nil
	case CardFood:
		return Food{Location: in.Location, Cuisine: in.Cuisine, Time: in.Time, Duration: in.Duration}, nil
	case CardActivity:
		return Activity{Location: in.Location, Time: in.Time, Duration: in.Duration, Category: in.Category}, nil
	case CardNote:
		return Note{Content: in.Content, Color: in.Color}, nil
	}
	return nil, fmt.Errorf("%w: unknown card type %q", ErrValidation, in.Type)
}

// Input flattens the card back into the form fields it was built from.
func (c Card) Input() CardInput {
	pos := c.Position
	in := CardInput{
		Type:      c.Type(),
		Title:     c.Title,
		Cost:      c.Cost,
		Position:  &pos,
		ImageURL:  c.ImageURL,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
	}
	switch d := c.Details.(type) {
	case Flight:
		in.Departure, in.Arrival = d.Departure, d.Arrival
		in.DepartureTime, in.ArrivalTime = d.DepartureTime, d.ArrivalTime
	case Stay:
		in.CheckIn, in.CheckOut, in.Location = d.CheckIn, d.CheckOut, d.Location
	case Food:
		in.Location, in.Cuisine, in.Time, in.Duration = d.Location, d.Cuisine, d.Time, d.Duration
	case Activity:
		in.Location, in.Time, in.Duration, in.Category = d.Location, d.Time, d.Duration, d.Category
	case Note:
		in.Content, in.Color = d.Content, d.Color
	}
	return in
}

// cardJSON is the flat wire and storage shape of a card.
type cardJSON struct {
	ID          uuid.UUID   `json:"id"`
	Connections []uuid.UUID `json:"connections,omitempty"`
	CardInput
}

// MarshalJSON encodes the card as a flat object discriminated by "type".
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{ID: c.ID, Connections: c.Connections, CardInput: c.Input()})
}

// UnmarshalJSON decodes the flat representation produced by MarshalJSON.
// Missing variant fields take the same defaults as NewCard.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	card, err := NewCard(raw.ID, raw.CardInput)
	if err != nil {
		return err
	}
	card.Connections = raw.Connections
	*c = card
	return nil
}
