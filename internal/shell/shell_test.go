package shell_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/service"
	"github.com/pkordes/tripcanvas/internal/shell"
)

// ---- helpers ---------------------------------------------------------------

// seqID returns ids whose first eight characters are n in hex, so tests can
// address them by short prefix.
func seqID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("%08x-0000-7000-8000-000000000000", n))
}

func newShell(t *testing.T) (*shell.Shell, *service.PlannerService, *bytes.Buffer) {
	t.Helper()
	n := 0
	svc := service.NewPlannerService(
		service.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }),
		service.WithIDs(func() uuid.UUID { n++; return seqID(n) }),
	)
	require.NoError(t, svc.Load(context.Background()))
	var out bytes.Buffer
	return shell.New(svc, &out), svc, &out
}

// run executes line and returns what it printed.
func run(t *testing.T, sh *shell.Shell, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, sh.ExecuteLine(context.Background(), line), line)
	return out.String()
}

// ---- ParseArgs -------------------------------------------------------------

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"trips", []string{"trips"}},
		{"  drag  abc   10 -5 ", []string{"drag", "abc", "10", "-5"}},
		{`trip new "Spring in Kyoto" Kyoto`, []string{"trip", "new", "Spring in Kyoto", "Kyoto"}},
		{`add food title="Ramen bar" cost=18.5`, []string{"add", "food", "title=Ramen bar", "cost=18.5"}},
		{`trip set budget ""`, []string{"trip", "set", "budget", ""}},
		{"a\tb", []string{"a", "b"}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, shell.ParseArgs(tc.in))
		})
	}
}

// ---- trips -----------------------------------------------------------------

func TestShell_tripLifecycle(t *testing.T) {
	sh, svc, out := newShell(t)
	ctx := context.Background()

	got := run(t, sh, out, `trip new "Lisbon Weekend" Lisbon 2026-09-04 2026-09-07 900`)
	assert.Contains(t, got, "Created Lisbon Weekend")
	ws := svc.Workspace(ctx)
	assert.Equal(t, seqID(2), ws.ActiveTripID)
	assert.Equal(t, "Lisbon Weekend> ", sh.Prompt(ctx))

	got = run(t, sh, out, "trips")
	assert.Contains(t, got, "Dream Vacation")
	assert.Contains(t, got, "* ")
	assert.Contains(t, got, "2026-09-04..2026-09-07")

	got = run(t, sh, out, "trip set budget 1200")
	assert.Contains(t, got, "(4 days)")
	trip, err := svc.GetTrip(ctx, seqID(2))
	require.NoError(t, err)
	require.NotNil(t, trip.Budget)
	assert.Equal(t, 1200.0, *trip.Budget)

	got = run(t, sh, out, "trip use 00000001")
	assert.Contains(t, got, "Switched to Dream Vacation")

	run(t, sh, out, "trip rm 00000002")
	assert.Len(t, svc.Workspace(ctx).Trips, 1)

	err = sh.ExecuteLine(ctx, "trip rm 00000001")
	assert.ErrorIs(t, err, domain.ErrLastTrip)
}

func TestShell_tripNewValidation(t *testing.T) {
	sh, _, _ := newShell(t)
	ctx := context.Background()

	assert.Error(t, sh.ExecuteLine(ctx, "trip new OnlyName"))
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "trip new a b June"), domain.ErrValidation)
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "trip new a b 2026-01-01 2026-01-02 lots"), domain.ErrValidation)
}

// ---- cards -----------------------------------------------------------------

func TestShell_cardsConnectAndDrag(t *testing.T) {
	sh, svc, out := newShell(t)
	ctx := context.Background()
	tripID := seqID(1)

	assert.Contains(t, run(t, sh, out, "cards"), "No cards yet")

	run(t, sh, out, `add food title="Ramen bar" cost=18.5 duration=45 location=Shinjuku`)
	run(t, sh, out, `add activity title=Museum x=400 y=300 duration=120`)

	got := run(t, sh, out, "cards")
	assert.Contains(t, got, "Ramen bar")
	assert.Contains(t, got, "400,300")
	assert.Contains(t, got, "$18.5")

	assert.Contains(t, run(t, sh, out, "connect 00000002"), `Connecting from "Ramen bar"`)
	assert.Contains(t, run(t, sh, out, "connect 00000003"), `Connected "Ramen bar" -> "Museum"`)

	cards, err := svc.ListCards(ctx, tripID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seqID(3)}, cards[0].Connections)

	assert.Contains(t, run(t, sh, out, "board"), "Ramen bar -> Museum  M ")

	assert.Contains(t, run(t, sh, out, "drag 00000002 50 -20"), `Moved "Ramen bar" to 150,80`)

	got = run(t, sh, out, "timeline")
	assert.Contains(t, got, " 1. [food] Ramen bar @ Shinjuku (45 min)")
	assert.Contains(t, got, " 2. [activity] Museum (120 min)")

	run(t, sh, out, "rm 00000003")
	cards, err = svc.ListCards(ctx, tripID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, []uuid.UUID{seqID(3)}, cards[0].Connections, "dangling connection is kept")
}

func TestShell_addRejectsBadInput(t *testing.T) {
	sh, _, _ := newShell(t)
	ctx := context.Background()

	assert.ErrorIs(t, sh.ExecuteLine(ctx, "add food colour=red"), domain.ErrValidation)
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "add food cost=cheap"), domain.ErrValidation)
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "add food title"), domain.ErrValidation)
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "add spaceship"), domain.ErrValidation)
}

func TestShell_unknownCardPrefix(t *testing.T) {
	sh, _, out := newShell(t)
	run(t, sh, out, "add note")
	run(t, sh, out, "add note")

	err := sh.ExecuteLine(context.Background(), "rm 0000000")
	assert.ErrorContains(t, err, "ambiguous")

	err = sh.ExecuteLine(context.Background(), "rm ffff")
	assert.ErrorContains(t, err, "no card matches")
}

// ---- board state and views -------------------------------------------------

func TestShell_zoom(t *testing.T) {
	sh, _, out := newShell(t)

	assert.Equal(t, "Zoom 110%\n", run(t, sh, out, "zoom in"))
	assert.Equal(t, "Zoom 100%\n", run(t, sh, out, "zoom out"))
	assert.Equal(t, "Zoom 200%\n", run(t, sh, out, "zoom 7"))
	assert.Equal(t, "Zoom 200%\n", run(t, sh, out, "zoom in"))
	assert.Error(t, sh.ExecuteLine(context.Background(), "zoom wide"))
}

func TestShell_budgetBalancePacking(t *testing.T) {
	sh, _, out := newShell(t)
	run(t, sh, out, `add stay title=Hotel cost=900 check_in=2026-06-01 check_out=2026-06-04`)
	run(t, sh, out, `add activity title=Louvre cost=22 duration=180`)

	got := run(t, sh, out, "budget")
	assert.Contains(t, got, "Spent $922 of $5000 across 2 items")
	assert.Contains(t, got, "$4078 remaining")

	got = run(t, sh, out, "balance")
	assert.Contains(t, got, "1 activities, 180 min planned")

	got = run(t, sh, out, "packing")
	assert.Contains(t, got, "Packing for 15 days (0% packed)")
	assert.Contains(t, got, "[ ] Travel adapter")

	assert.Contains(t, run(t, sh, out, "timeline"), "(3 nights)")
}

func TestShell_packingChecklist(t *testing.T) {
	sh, _, out := newShell(t)
	ctx := context.Background()

	assert.Equal(t, "Passport & ID (8% packed)\n", run(t, sh, out, "packing check 1"))
	assert.Equal(t, "Added \"Rail pass\"\n", run(t, sh, out, "packing add Rail pass"))
	assert.Equal(t, "Removed \"Camera\"\n", run(t, sh, out, "packing rm 10"))
	assert.Contains(t, run(t, sh, out, "packing check 13"), "Rail pass (15% packed)")

	got := run(t, sh, out, "packing")
	assert.Contains(t, got, "(15% packed)")
	assert.Contains(t, got, "  1. [x] Passport & ID")
	assert.Contains(t, got, " 13. [x] Rail pass")
	assert.NotContains(t, got, "Camera")

	assert.ErrorContains(t, sh.ExecuteLine(ctx, "packing check 14"), "no entry 14")
	assert.Error(t, sh.ExecuteLine(ctx, "packing check"))
	assert.Error(t, sh.ExecuteLine(ctx, "packing sort"))
}

func TestShell_tips(t *testing.T) {
	sh, _, out := newShell(t)
	ctx := context.Background()

	got := run(t, sh, out, "tips")
	assert.Contains(t, got, "Tips for Paris & Tokyo")
	assert.Contains(t, got, "(suggested)")

	run(t, sh, out, `tips add "Museums close on Mondays"`)
	assert.Contains(t, run(t, sh, out, "tips"), "  4. Museums close on Mondays\n")

	assert.ErrorContains(t, sh.ExecuteLine(ctx, "tips rm 1"), "cannot be removed")
	assert.Equal(t, "Tip removed\n", run(t, sh, out, "tips rm 4"))
	assert.NotContains(t, run(t, sh, out, "tips"), "Museums")
}

func TestShell_moodboard(t *testing.T) {
	sh, _, out := newShell(t)
	ctx := context.Background()

	assert.Equal(t, "Moodboard is empty\n", run(t, sh, out, "moodboard"))
	assert.Equal(t, "Pinned image\n", run(t, sh, out, `moodboard add https://example.com/seine.jpg "Seine at dusk"`))
	assert.Equal(t, "Pinned link\n", run(t, sh, out, "moodboard add https://example.com/guide"))

	got := run(t, sh, out, "moodboard")
	assert.Contains(t, got, "  1. [image] https://example.com/seine.jpg  Seine at dusk")
	assert.Contains(t, got, "  2. [link] https://example.com/guide")

	run(t, sh, out, "moodboard rm 1")
	assert.NotContains(t, run(t, sh, out, "moodboard"), "seine")
	assert.Error(t, sh.ExecuteLine(ctx, "moodboard add"))
}

func TestShell_helpAndUnknown(t *testing.T) {
	sh, _, out := newShell(t)
	ctx := context.Background()

	assert.Contains(t, run(t, sh, out, "help"), "unique prefix")
	assert.Contains(t, run(t, sh, out, "help drag"), "drag <card> <dx> <dy>")
	assert.ErrorContains(t, sh.ExecuteLine(ctx, "teleport"), "unknown command")
	assert.ErrorIs(t, sh.ExecuteLine(ctx, "exit"), shell.ErrExit)
	assert.NoError(t, sh.ExecuteLine(ctx, "   "))
}
