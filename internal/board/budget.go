package board

import (
	"math"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// CategorySpend is the total cost of one card type.
type CategorySpend struct {
	Type   domain.CardType `json:"type"`
	Amount float64         `json:"amount"`
}

// BudgetSummary aggregates the cost-tracked cards of a trip against its budget.
type BudgetSummary struct {
	TotalSpent float64         `json:"total_spent"`
	Budget     *float64        `json:"budget,omitempty"`
	Categories []CategorySpend `json:"categories"`
	OverBudget bool            `json:"over_budget"`
	// PercentUsed is 0 when no positive budget is set; never NaN or Inf.
	PercentUsed  float64 `json:"percent_used"`
	OverBy       float64 `json:"over_by"`
	Remaining    float64 `json:"remaining"`
	TrackedItems int     `json:"tracked_items"`
	AverageCost  float64 `json:"average_cost"`
}

// Breakdown returns the spend per card type as a map, including only
// types that have at least one cost-tracked card.
func (s BudgetSummary) Breakdown() map[domain.CardType]float64 {
	m := make(map[domain.CardType]float64, len(s.Categories))
	for _, c := range s.Categories {
		m[c.Type] = c.Amount
	}
	return m
}

// Budget sums the cost of every card whose cost is defined and compares the
// total with budget.
func Budget(cards []domain.Card, budget *float64) BudgetSummary {
	sum := BudgetSummary{Budget: budget, Categories: []CategorySpend{}}

	byType := make(map[domain.CardType]float64)
	for _, c := range cards {
		if !c.IsCostTracked() {
			continue
		}
		sum.TotalSpent += *c.Cost
		sum.TrackedItems++
		byType[c.Type()] += *c.Cost
	}
	for _, t := range domain.CardTypes {
		if amount, ok := byType[t]; ok {
			sum.Categories = append(sum.Categories, CategorySpend{Type: t, Amount: amount})
		}
	}

	sum.AverageCost = math.Round(sum.TotalSpent / float64(max(sum.TrackedItems, 1)))

	if budget != nil {
		b := *budget
		sum.OverBudget = sum.TotalSpent > b
		if sum.OverBudget {
			sum.OverBy = sum.TotalSpent - b
		}
		sum.Remaining = math.Abs(b - sum.TotalSpent)
		if b > 0 {
			sum.PercentUsed = sum.TotalSpent / b * 100
		}
	}
	return sum
}
