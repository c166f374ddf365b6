// Package shell is a line-oriented command interpreter over the planner.
// Each line is split into quote-aware arguments and dispatched to a command
// that drives the active trip. tripctl wires it to a readline prompt.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/planner"
	"github.com/pkordes/tripcanvas/internal/service"
)

// ErrExit is returned by Execute when the user asks to leave the shell.
var ErrExit = errors.New("exit requested")

// Planner is the subset of planner operations the shell drives.
type Planner interface {
	Workspace(ctx context.Context) planner.Workspace
	CreateTrip(ctx context.Context, meta domain.TripMeta) (domain.Trip, error)
	UpdateTripField(ctx context.Context, id uuid.UUID, field planner.TripField, value string) (domain.Trip, error)
	SelectTrip(ctx context.Context, id uuid.UUID) error
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	CreateCard(ctx context.Context, tripID uuid.UUID, in domain.CardInput) (domain.Card, error)
	DeleteCard(ctx context.Context, tripID, cardID uuid.UUID) error
	Connect(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	DragStart(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	DragEnd(ctx context.Context, tripID, cardID uuid.UUID, delta domain.Position) (domain.Card, error)
	SetZoom(ctx context.Context, tripID uuid.UUID, zoom float64) (service.BoardView, error)

	Board(ctx context.Context, tripID uuid.UUID) (service.BoardView, error)
	Timeline(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error)
	Budget(ctx context.Context, tripID uuid.UUID) (board.BudgetSummary, error)
	Balance(ctx context.Context, tripID uuid.UUID) (board.Balance, error)

	Packing(ctx context.Context, tripID uuid.UUID) ([]board.PackingItem, error)
	TogglePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) ([]board.PackingItem, error)
	AddPackingItem(ctx context.Context, tripID uuid.UUID, text string) (board.PackingItem, error)
	RemovePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) error
	Tips(ctx context.Context, tripID uuid.UUID) ([]board.Tip, error)
	AddTip(ctx context.Context, tripID uuid.UUID, content string) (board.Tip, error)
	RemoveTip(ctx context.Context, tripID uuid.UUID, tipID string) error
	Moodboard(ctx context.Context, tripID uuid.UUID) ([]board.MoodboardItem, error)
	AddMoodboardItem(ctx context.Context, tripID uuid.UUID, url, title string) (board.MoodboardItem, error)
	RemoveMoodboardItem(ctx context.Context, tripID uuid.UUID, itemID string) error
}

var _ Planner = (*service.PlannerService)(nil)

// Shell executes commands against a Planner and writes results to out.
type Shell struct {
	planner Planner
	out     io.Writer
}

// New returns a Shell writing to out.
func New(p Planner, out io.Writer) *Shell {
	return &Shell{planner: p, out: out}
}

// Prompt shows the active trip's name.
func (s *Shell) Prompt(ctx context.Context) string {
	if trip, ok := s.planner.Workspace(ctx).ActiveTrip(); ok {
		return trip.Name + "> "
	}
	return "> "
}

// Run reads lines from rl until exit, EOF or an error from readline.
// Command errors are printed and the loop continues; ^C only prints a hint.
func (s *Shell) Run(ctx context.Context, rl *readline.Instance) error {
	for {
		rl.SetPrompt(s.Prompt(ctx))
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(s.out, "Use 'exit' to leave the shell.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if err := s.ExecuteLine(ctx, line); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

// ExecuteLine parses and executes one input line. Blank lines are ignored.
func (s *Shell) ExecuteLine(ctx context.Context, line string) error {
	args := ParseArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return nil
	}
	return s.Execute(ctx, args)
}

// ParseArgs splits input on whitespace. Double-quoted sections keep their
// spaces and lose their quotes; `""` yields an empty argument.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes, quoted := false, false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}

// Execute dispatches a parsed command line.
func (s *Shell) Execute(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "trips":
		return s.listTrips(ctx)
	case "trip":
		return s.trip(ctx, rest)
	case "cards":
		return s.listCards(ctx)
	case "add":
		return s.addCard(ctx, rest)
	case "rm":
		return s.removeCard(ctx, rest)
	case "connect":
		return s.connect(ctx, rest)
	case "drag":
		return s.drag(ctx, rest)
	case "zoom":
		return s.zoom(ctx, rest)
	case "board":
		return s.showBoard(ctx)
	case "timeline":
		return s.showTimeline(ctx)
	case "budget":
		return s.showBudget(ctx)
	case "balance":
		return s.showBalance(ctx)
	case "packing":
		return s.packing(ctx, rest)
	case "tips":
		return s.tips(ctx, rest)
	case "moodboard":
		return s.moodboard(ctx, rest)
	case "help":
		s.help(rest)
		return nil
	case "exit", "quit":
		return ErrExit
	}
	return fmt.Errorf("unknown command: %s (try 'help')", cmd)
}

// ---- id resolution ---------------------------------------------------------

// resolve finds the single id whose string form starts with prefix.
func resolve(kind, prefix string, ids []uuid.UUID) (uuid.UUID, error) {
	prefix = strings.ToLower(prefix)
	var match uuid.UUID
	n := 0
	for _, id := range ids {
		if strings.HasPrefix(id.String(), prefix) {
			match = id
			n++
		}
	}
	switch n {
	case 0:
		return uuid.Nil, fmt.Errorf("no %s matches %q", kind, prefix)
	case 1:
		return match, nil
	}
	return uuid.Nil, fmt.Errorf("%s prefix %q is ambiguous (%d matches)", kind, prefix, n)
}

func (s *Shell) resolveTrip(ctx context.Context, prefix string) (uuid.UUID, error) {
	trips := s.planner.Workspace(ctx).Trips
	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	return resolve("trip", prefix, ids)
}

func (s *Shell) resolveCard(ctx context.Context, prefix string) (domain.Trip, uuid.UUID, error) {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return domain.Trip{}, uuid.Nil, err
	}
	ids := make([]uuid.UUID, len(trip.Cards))
	for i, c := range trip.Cards {
		ids[i] = c.ID
	}
	id, err := resolve("card", prefix, ids)
	return trip, id, err
}

func (s *Shell) activeTrip(ctx context.Context) (domain.Trip, error) {
	trip, ok := s.planner.Workspace(ctx).ActiveTrip()
	if !ok {
		return domain.Trip{}, fmt.Errorf("no active trip: %w", domain.ErrNotFound)
	}
	return trip, nil
}

// abbreviate returns the shortest prefix of each id, eight characters at
// least, that no other id in ids shares.
func abbreviate(ids []uuid.UUID) map[uuid.UUID]string {
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		full := id.String()
		n := 8
		for n < len(full) && sharesPrefix(full[:n], id, ids) {
			n++
		}
		out[id] = full[:n]
	}
	return out
}

func sharesPrefix(prefix string, self uuid.UUID, ids []uuid.UUID) bool {
	for _, other := range ids {
		if other != self && strings.HasPrefix(other.String(), prefix) {
			return true
		}
	}
	return false
}
