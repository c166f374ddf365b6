package board

import "fmt"

// Tip is a local tip or note kept beside a trip. Auto tips are suggested by
// the planner and stay for the life of the trip; user tips can be removed.
type Tip struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Auto    bool   `json:"auto"`
}

var suggestedTips = []string{
	"🙏 Learn basic greetings in the local language",
	"💰 Always carry some local currency",
	"📱 Download offline maps before you go",
	"🚕 Research local transportation options",
	"🍽️ Try local street food (safely!)",
	"⏰ Be mindful of cultural customs and timing",
}

// suggestedTipCount is how many suggestions a new trip starts with.
const suggestedTipCount = 3

// DefaultTips returns the suggested tips every trip starts with.
func DefaultTips() []Tip {
	tips := make([]Tip, suggestedTipCount)
	for i, content := range suggestedTips[:suggestedTipCount] {
		tips[i] = Tip{ID: fmt.Sprintf("auto-%d", i), Content: content, Auto: true}
	}
	return tips
}
