package board

import "github.com/pkordes/tripcanvas/internal/domain"

// BalanceLevel bands a balance score.
type BalanceLevel string

const (
	Relaxed  BalanceLevel = "relaxed"
	Balanced BalanceLevel = "balanced"
	Busy     BalanceLevel = "busy"
	VeryBusy BalanceLevel = "very_busy"
)

// MaxBalanceScore caps the balance score.
const MaxBalanceScore = 100

// Balance is the day-balance heuristic: how packed the plan is.
type Balance struct {
	ActivityCount int          `json:"activity_count"`
	TotalMinutes  int          `json:"total_minutes"`
	Score         float64      `json:"score"`
	Level         BalanceLevel `json:"level"`
	Label         string       `json:"label"`
	Message       string       `json:"message"`
}

// DayBalance scores cards by counting food and activity cards and summing
// their durations: score = min(100, count*10 + minutes/10).
func DayBalance(cards []domain.Card) Balance {
	var b Balance
	for _, c := range cards {
		if t := c.Type(); t != domain.CardActivity && t != domain.CardFood {
			continue
		}
		b.ActivityCount++
		if minutes, ok := c.Duration(); ok {
			b.TotalMinutes += minutes
		}
	}
	b.Score = min(MaxBalanceScore, float64(b.ActivityCount*10)+float64(b.TotalMinutes)/10)
	b.Level = LevelFor(b.Score)
	b.Label = b.Level.Label()
	b.Message = b.Level.Message()
	return b
}

// LevelFor bands score: <30 relaxed, <60 balanced, <80 busy, otherwise very busy.
func LevelFor(score float64) BalanceLevel {
	switch {
	case score < 30:
		return Relaxed
	case score < 60:
		return Balanced
	case score < 80:
		return Busy
	default:
		return VeryBusy
	}
}

// Label is the display name of the level.
func (l BalanceLevel) Label() string {
	switch l {
	case Relaxed:
		return "Relaxed"
	case Balanced:
		return "Balanced"
	case Busy:
		return "Busy"
	case VeryBusy:
		return "Very Busy"
	}
	return ""
}

// Message is a one-line piece of advice for the level.
func (l BalanceLevel) Message() string {
	switch l {
	case Relaxed:
		return "Great! You have plenty of time to relax."
	case Balanced:
		return "Perfect balance between activities and rest."
	case Busy:
		return "Packed schedule! Make sure to rest."
	case VeryBusy:
		return "Very busy day! Consider spacing activities out."
	}
	return ""
}
