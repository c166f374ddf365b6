package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per card, with trip fields repeated
// for every card on that trip. Trips with no cards yield one row with zero
// values for all card fields.
type ExportRow struct {
	// Trip fields, repeated for every card on the trip.
	TripID          string   `json:"trip_id" yaml:"trip_id" toml:"trip_id"`
	TripName        string   `json:"trip_name" yaml:"trip_name" toml:"trip_name"`
	TripDestination string   `json:"trip_destination" yaml:"trip_destination" toml:"trip_destination"`
	TripStartDate   string   `json:"trip_start_date" yaml:"trip_start_date" toml:"trip_start_date"` // "2006-01-02"
	TripEndDate     string   `json:"trip_end_date" yaml:"trip_end_date" toml:"trip_end_date"`
	TripBudget      *float64 `json:"trip_budget,omitempty" yaml:"trip_budget,omitempty" toml:"trip_budget,omitempty"`

	// Card fields, zero values when the trip has no cards.
	CardID      string   `json:"card_id,omitempty" yaml:"card_id,omitempty" toml:"card_id,omitempty"`
	CardType    string   `json:"card_type,omitempty" yaml:"card_type,omitempty" toml:"card_type,omitempty"`
	CardTitle   string   `json:"card_title,omitempty" yaml:"card_title,omitempty" toml:"card_title,omitempty"`
	CardCost    *float64 `json:"card_cost,omitempty" yaml:"card_cost,omitempty" toml:"card_cost,omitempty"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
	PositionX   float64  `json:"position_x" yaml:"position_x" toml:"position_x"`
	PositionY   float64  `json:"position_y" yaml:"position_y" toml:"position_y"`
	Connections []string `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty"`
}
