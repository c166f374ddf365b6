package board

import (
	"fmt"
	"math"
)

// PackingItem is one line of a packing checklist.
type PackingItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

var basePacking = []string{
	"Passport & ID",
	"Travel tickets",
	"Hotel confirmations",
	"Travel insurance",
	"Phone & charger",
	"Medications",
	"Toiletries",
	"Comfortable shoes",
	"Weather-appropriate clothing",
	"Camera",
}

var longTripPacking = []string{"Laundry supplies", "Extra bags", "Travel adapter"}

// longTripDays is the trip length after which the long-trip items are added.
const longTripDays = 7

// PackingList returns the default, unchecked checklist for a trip lasting days.
func PackingList(days int) []PackingItem {
	texts := basePacking
	if days > longTripDays {
		texts = append(texts[:len(texts):len(texts)], longTripPacking...)
	}
	items := make([]PackingItem, len(texts))
	for i, text := range texts {
		items[i] = PackingItem{ID: fmt.Sprintf("item-%d", i), Text: text}
	}
	return items
}

// PackingProgress returns the rounded percentage of checked items, 0 for an empty list.
func PackingProgress(items []PackingItem) int {
	if len(items) == 0 {
		return 0
	}
	checked := 0
	for _, it := range items {
		if it.Checked {
			checked++
		}
	}
	return int(math.Round(float64(checked) / float64(len(items)) * 100))
}
