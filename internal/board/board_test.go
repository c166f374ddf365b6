package board_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// card builds a card of type t at (x, y) with a fresh ID.
func card(t *testing.T, typ domain.CardType, x, y float64) domain.Card {
	t.Helper()
	c, err := domain.NewCard(uuid.New(), domain.CardInput{Type: typ, Position: &domain.Position{X: x, Y: y}})
	require.NoError(t, err)
	return c
}

func withCost(c domain.Card, cost float64) domain.Card {
	c.Cost = &cost
	return c
}

func withDuration(t *testing.T, c domain.Card, minutes int) domain.Card {
	t.Helper()
	in := c.Input()
	in.Duration = &minutes
	out, err := domain.NewCard(c.ID, in)
	require.NoError(t, err)
	return out
}

// ---- Threads ---------------------------------------------------------------

func TestThreads_Geometry(t *testing.T) {
	a := card(t, domain.CardFlight, 0, 0)
	b := card(t, domain.CardStay, 200, 100)
	a.Connections = []uuid.UUID{b.ID}

	got := board.Threads([]domain.Card{a, b})

	require.Len(t, got, 1)
	th := got[0]
	assert.Equal(t, a.ID, th.From)
	assert.Equal(t, b.ID, th.To)
	assert.Equal(t, domain.Position{X: 112, Y: 100}, th.Start)
	assert.Equal(t, domain.Position{X: 312, Y: 200}, th.End)
	// midpoint (212, 150), bowed up by 0.3 * 200
	assert.Equal(t, domain.Position{X: 212, Y: 90}, th.Control)
	assert.Equal(t, "M 112 100 Q 212 90, 312 200", th.Path)
}

func TestThreads_SkipsDanglingTargets(t *testing.T) {
	a := card(t, domain.CardNote, 0, 0)
	a.Connections = []uuid.UUID{uuid.New()}

	var got []board.Thread
	assert.NotPanics(t, func() { got = board.Threads([]domain.Card{a}) })
	assert.Empty(t, got)
}

func TestThreads_Order(t *testing.T) {
	a := card(t, domain.CardNote, 0, 0)
	b := card(t, domain.CardNote, 10, 0)
	c := card(t, domain.CardNote, 20, 0)
	a.Connections = []uuid.UUID{c.ID, uuid.New(), b.ID}
	b.Connections = []uuid.UUID{a.ID}

	got := board.Threads([]domain.Card{a, b, c})

	require.Len(t, got, 3)
	assert.Equal(t, [2]uuid.UUID{a.ID, c.ID}, [2]uuid.UUID{got[0].From, got[0].To})
	assert.Equal(t, [2]uuid.UUID{a.ID, b.ID}, [2]uuid.UUID{got[1].From, got[1].To})
	assert.Equal(t, [2]uuid.UUID{b.ID, a.ID}, [2]uuid.UUID{got[2].From, got[2].To})
}

func TestThreads_Empty(t *testing.T) {
	assert.Empty(t, board.Threads(nil))
}

// ---- Timeline --------------------------------------------------------------

func TestTimeline_SortsByY(t *testing.T) {
	low := card(t, domain.CardFood, 0, 300)
	high := card(t, domain.CardFood, 0, 10)
	mid := card(t, domain.CardFood, 0, 150)

	got := board.Timeline([]domain.Card{low, high, mid})

	assert.Equal(t, []uuid.UUID{high.ID, mid.ID, low.ID}, ids(got))
}

func TestTimeline_StableOnTies(t *testing.T) {
	first := card(t, domain.CardActivity, 500, 100)
	second := card(t, domain.CardActivity, 0, 100)
	top := card(t, domain.CardNote, 0, 50)
	third := card(t, domain.CardActivity, 250, 100)

	got := board.Timeline([]domain.Card{first, second, top, third})

	assert.Equal(t, []uuid.UUID{top.ID, first.ID, second.ID, third.ID}, ids(got))
}

func TestTimeline_DoesNotModifyInput(t *testing.T) {
	a := card(t, domain.CardNote, 0, 200)
	b := card(t, domain.CardNote, 0, 100)
	in := []domain.Card{a, b}

	board.Timeline(in)

	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, ids(in))
}

func ids(cards []domain.Card) []uuid.UUID {
	out := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// ---- Budget ----------------------------------------------------------------

func TestBudget_TotalsOnlyTrackedCards(t *testing.T) {
	cards := []domain.Card{
		withCost(card(t, domain.CardFlight, 0, 0), 120),
		card(t, domain.CardNote, 0, 0),
		withCost(card(t, domain.CardFood, 0, 0), 45.5),
	}

	first := board.Budget(cards, nil)
	second := board.Budget(cards, nil)

	assert.InDelta(t, 165.5, first.TotalSpent, 1e-9)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.TrackedItems)
	assert.Equal(t, map[domain.CardType]float64{domain.CardFlight: 120, domain.CardFood: 45.5}, first.Breakdown())
}

func TestBudget_ZeroCostIsTracked(t *testing.T) {
	got := board.Budget([]domain.Card{withCost(card(t, domain.CardActivity, 0, 0), 0)}, nil)

	assert.Equal(t, 1, got.TrackedItems)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, domain.CardActivity, got.Categories[0].Type)
}

func TestBudget_CategoriesInTypeOrder(t *testing.T) {
	cards := []domain.Card{
		withCost(card(t, domain.CardNote, 0, 0), 1),
		withCost(card(t, domain.CardFood, 0, 0), 2),
		withCost(card(t, domain.CardFlight, 0, 0), 3),
		withCost(card(t, domain.CardFood, 0, 0), 4),
	}

	got := board.Budget(cards, nil)

	assert.Equal(t, []board.CategorySpend{
		{Type: domain.CardFlight, Amount: 3},
		{Type: domain.CardFood, Amount: 6},
		{Type: domain.CardNote, Amount: 1},
	}, got.Categories)
}

func TestBudget_AgainstBudget(t *testing.T) {
	cards := []domain.Card{
		withCost(card(t, domain.CardStay, 0, 0), 300),
		withCost(card(t, domain.CardFood, 0, 0), 100),
	}

	tests := []struct {
		name      string
		budget    *float64
		over      bool
		percent   float64
		overBy    float64
		remaining float64
	}{
		{name: "no budget", budget: nil},
		{name: "zero budget", budget: ptr(0.0), over: true, overBy: 400, remaining: 400},
		{name: "under", budget: ptr(1000.0), percent: 40, remaining: 600},
		{name: "exact", budget: ptr(400.0), percent: 100},
		{name: "over", budget: ptr(200.0), over: true, percent: 200, overBy: 200, remaining: 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := board.Budget(cards, tc.budget)

			assert.Equal(t, tc.over, got.OverBudget)
			assert.InDelta(t, tc.percent, got.PercentUsed, 1e-9)
			assert.InDelta(t, tc.overBy, got.OverBy, 1e-9)
			assert.InDelta(t, tc.remaining, got.Remaining, 1e-9)
			assert.InDelta(t, 200, got.AverageCost, 1e-9)
		})
	}
}

func TestBudget_Empty(t *testing.T) {
	got := board.Budget(nil, ptr(500.0))

	assert.Zero(t, got.TotalSpent)
	assert.Zero(t, got.PercentUsed)
	assert.Zero(t, got.AverageCost)
	assert.False(t, got.OverBudget)
	assert.NotNil(t, got.Categories)
}

// ---- Balance ---------------------------------------------------------------

func TestDayBalance_Example(t *testing.T) {
	cards := []domain.Card{
		withDuration(t, card(t, domain.CardActivity, 0, 0), 60),
		withDuration(t, card(t, domain.CardActivity, 0, 0), 90),
		card(t, domain.CardFlight, 0, 0),
		card(t, domain.CardNote, 0, 0),
	}

	got := board.DayBalance(cards)

	assert.Equal(t, 2, got.ActivityCount)
	assert.Equal(t, 150, got.TotalMinutes)
	assert.InDelta(t, 35, got.Score, 1e-9)
	assert.Equal(t, board.Balanced, got.Level)
	assert.Equal(t, "Balanced", got.Label)
	assert.Equal(t, "Perfect balance between activities and rest.", got.Message)
}

func TestDayBalance_FoodCountsWithoutDuration(t *testing.T) {
	got := board.DayBalance([]domain.Card{card(t, domain.CardFood, 0, 0)})

	assert.Equal(t, 1, got.ActivityCount)
	assert.Zero(t, got.TotalMinutes)
	assert.InDelta(t, 10, got.Score, 1e-9)
	assert.Equal(t, board.Relaxed, got.Level)
}

func TestDayBalance_ScoreCapped(t *testing.T) {
	var cards []domain.Card
	for range 12 {
		cards = append(cards, withDuration(t, card(t, domain.CardActivity, 0, 0), 600))
	}

	got := board.DayBalance(cards)

	assert.InDelta(t, board.MaxBalanceScore, got.Score, 1e-9)
	assert.Equal(t, board.VeryBusy, got.Level)
	assert.Equal(t, "Very Busy", got.Label)
}

func TestDayBalance_Empty(t *testing.T) {
	got := board.DayBalance(nil)

	assert.Zero(t, got.Score)
	assert.Equal(t, board.Relaxed, got.Level)
}

func TestLevelFor_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  board.BalanceLevel
	}{
		{0, board.Relaxed},
		{29.9, board.Relaxed},
		{30, board.Balanced},
		{59.9, board.Balanced},
		{60, board.Busy},
		{79.9, board.Busy},
		{80, board.VeryBusy},
		{100, board.VeryBusy},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, board.LevelFor(tc.score), "score %v", tc.score)
	}
}

// ---- Packing ---------------------------------------------------------------

func TestPackingList_ShortTrip(t *testing.T) {
	items := board.PackingList(7)

	require.Len(t, items, 10)
	assert.Equal(t, "Passport & ID", items[0].Text)
	assert.Equal(t, "Camera", items[9].Text)
	for _, it := range items {
		assert.False(t, it.Checked)
	}
}

func TestPackingList_LongTripAddsItems(t *testing.T) {
	items := board.PackingList(8)

	require.Len(t, items, 13)
	assert.Equal(t, "Laundry supplies", items[10].Text)
	assert.Equal(t, "Travel adapter", items[12].Text)
	// the base list must not be extended in place
	assert.Len(t, board.PackingList(3), 10)
}

func TestPackingProgress(t *testing.T) {
	assert.Equal(t, 0, board.PackingProgress(nil))

	items := board.PackingList(1)
	items[0].Checked = true
	items[1].Checked = true
	items[2].Checked = true

	assert.Equal(t, 30, board.PackingProgress(items))
}

// ---- Tips and moodboard ----------------------------------------------------

func TestDefaultTips(t *testing.T) {
	tips := board.DefaultTips()

	require.Len(t, tips, 3)
	var ids []string
	for _, tip := range tips {
		assert.True(t, tip.Auto)
		assert.NotEmpty(t, tip.Content)
		ids = append(ids, tip.ID)
	}
	assert.Equal(t, []string{"auto-0", "auto-1", "auto-2"}, ids)
	assert.Contains(t, tips[1].Content, "local currency")
}

func TestMoodKindOf(t *testing.T) {
	tests := []struct {
		url  string
		want board.MoodKind
	}{
		{"https://example.com/kyoto.jpg", board.MoodImage},
		{"https://example.com/KYOTO.JPEG", board.MoodImage},
		{"https://example.com/a.png", board.MoodImage},
		{"https://example.com/a.gif", board.MoodImage},
		{"https://example.com/a.webp", board.MoodImage},
		{"https://example.com/a.jpg?w=400", board.MoodLink},
		{"https://example.com/guide", board.MoodLink},
		{"https://example.com/a.svg", board.MoodLink},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, board.MoodKindOf(tt.url))
		})
	}
}
