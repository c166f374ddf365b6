package shell

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/planner"
)

// ---- trips -----------------------------------------------------------------

func (s *Shell) listTrips(ctx context.Context) error {
	ws := s.planner.Workspace(ctx)
	ids := make([]uuid.UUID, len(ws.Trips))
	for i, t := range ws.Trips {
		ids[i] = t.ID
	}
	names := abbreviate(ids)

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tDESTINATION\tDATES\tCARDS")
	for _, t := range ws.Trips {
		marker := ""
		if t.ID == ws.ActiveTripID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", marker, names[t.ID], t.Name, t.Destination, dateRange(t), len(t.Cards))
	}
	return tw.Flush()
}

func (s *Shell) trip(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: trip new|use|rm|set ...")
	}
	switch args[0] {
	case "new":
		return s.newTrip(ctx, args[1:])
	case "use":
		if len(args) != 2 {
			return fmt.Errorf("usage: trip use <id>")
		}
		id, err := s.resolveTrip(ctx, args[1])
		if err != nil {
			return err
		}
		if err := s.planner.SelectTrip(ctx, id); err != nil {
			return err
		}
		trip, _ := s.planner.Workspace(ctx).Trip(id)
		fmt.Fprintf(s.out, "Switched to %s\n", trip.Name)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: trip rm <id>")
		}
		id, err := s.resolveTrip(ctx, args[1])
		if err != nil {
			return err
		}
		if err := s.planner.DeleteTrip(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Trip deleted")
		return nil
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: trip set <field> <value>")
		}
		active, err := s.activeTrip(ctx)
		if err != nil {
			return err
		}
		trip, err := s.planner.UpdateTripField(ctx, active.ID, planner.TripField(args[1]), args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s: %s, %s (%d days)\n", trip.Name, trip.Destination, dateRange(trip), trip.Days())
		return nil
	}
	return fmt.Errorf("unknown trip command: %s", args[0])
}

// newTrip handles `trip new <name> <destination> [start] [end] [budget]`.
func (s *Shell) newTrip(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 5 {
		return fmt.Errorf("usage: trip new <name> <destination> [start] [end] [budget]")
	}
	meta := domain.TripMeta{Name: args[0], Destination: args[1]}
	var err error
	if len(args) > 2 {
		if meta.StartDate, err = time.Parse(time.DateOnly, args[2]); err != nil {
			return fmt.Errorf("%w: start must be a YYYY-MM-DD date", domain.ErrValidation)
		}
	}
	if len(args) > 3 {
		if meta.EndDate, err = time.Parse(time.DateOnly, args[3]); err != nil {
			return fmt.Errorf("%w: end must be a YYYY-MM-DD date", domain.ErrValidation)
		}
	}
	if len(args) > 4 {
		b, err := strconv.ParseFloat(args[4], 64)
		if err != nil {
			return fmt.Errorf("%w: budget must be a number", domain.ErrValidation)
		}
		meta.Budget = &b
	}

	trip, err := s.planner.CreateTrip(ctx, meta)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Created %s (%s)\n", trip.Name, trip.ID)
	return nil
}

// ---- cards -----------------------------------------------------------------

func (s *Shell) listCards(ctx context.Context) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	return s.printCards(trip.Cards)
}

func (s *Shell) printCards(cards []domain.Card) error {
	if len(cards) == 0 {
		fmt.Fprintln(s.out, "No cards yet. Add one with: add <type> title=...")
		return nil
	}
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	names := abbreviate(ids)

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tPOSITION\tCOST\tLINKS")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g,%g\t%s\t%d\n",
			names[c.ID], c.Type(), c.Title, c.Position.X, c.Position.Y, money(c.Cost), len(c.Connections))
	}
	return tw.Flush()
}

// addCard handles `add <type> key=value...`.
func (s *Shell) addCard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <type> key=value...")
	}
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	in := domain.CardInput{Type: domain.CardType(args[0])}
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: expected key=value, got %q", domain.ErrValidation, kv)
		}
		set, ok := cardFields[key]
		if !ok {
			return fmt.Errorf("%w: unknown card field %q", domain.ErrValidation, key)
		}
		if err := set(&in, value); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrValidation, key, err)
		}
	}

	card, err := s.planner.CreateCard(ctx, trip.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %s %q (%s)\n", card.Type(), card.Title, card.ID)
	return nil
}

func (s *Shell) removeCard(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <card>")
	}
	trip, id, err := s.resolveCard(ctx, args[0])
	if err != nil {
		return err
	}
	if err := s.planner.DeleteCard(ctx, trip.ID, id); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Card deleted")
	return nil
}

// connect feeds one click to the connection state machine: the first call
// picks the source, the second links it to the target.
func (s *Shell) connect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: connect <card>")
	}
	trip, id, err := s.resolveCard(ctx, args[0])
	if err != nil {
		return err
	}
	before, _ := s.planner.Board(ctx, trip.ID)
	view, err := s.planner.Connect(ctx, trip.ID, id)
	if err != nil {
		return err
	}
	card, _ := trip.Card(id)
	if from, pending := view.State.Connect.Source(); pending {
		src, _ := trip.Card(from)
		fmt.Fprintf(s.out, "Connecting from %q; connect another card to finish\n", src.Title)
		return nil
	}
	if from, ok := before.State.Connect.Source(); ok {
		src, _ := trip.Card(from)
		fmt.Fprintf(s.out, "Connected %q -> %q\n", src.Title, card.Title)
	}
	return nil
}

// drag handles `drag <card> <dx> <dy>` as a drag-start followed by a drag-end.
func (s *Shell) drag(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: drag <card> <dx> <dy>")
	}
	trip, id, err := s.resolveCard(ctx, args[0])
	if err != nil {
		return err
	}
	dx, errX := strconv.ParseFloat(args[1], 64)
	dy, errY := strconv.ParseFloat(args[2], 64)
	if errX != nil || errY != nil {
		return fmt.Errorf("%w: dx and dy must be numbers", domain.ErrValidation)
	}
	if _, err := s.planner.DragStart(ctx, trip.ID, id); err != nil {
		return err
	}
	card, err := s.planner.DragEnd(ctx, trip.ID, id, domain.Position{X: dx, Y: dy})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Moved %q to %g,%g\n", card.Title, card.Position.X, card.Position.Y)
	return nil
}

// zoom handles `zoom in|out|<factor>`.
func (s *Shell) zoom(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: zoom in|out|<factor>")
	}
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	current, err := s.planner.Board(ctx, trip.ID)
	if err != nil {
		return err
	}
	var target float64
	switch args[0] {
	case "in":
		target = current.State.Zoom + planner.ZoomStep
	case "out":
		target = current.State.Zoom - planner.ZoomStep
	default:
		if target, err = strconv.ParseFloat(args[0], 64); err != nil {
			return fmt.Errorf("%w: zoom must be in, out or a number", domain.ErrValidation)
		}
	}
	view, err := s.planner.SetZoom(ctx, trip.ID, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Zoom %d%%\n", int(view.State.Zoom*100+0.5))
	return nil
}

// ---- views -----------------------------------------------------------------

func (s *Shell) showBoard(ctx context.Context) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	view, err := s.planner.Board(ctx, trip.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%s) view=%s zoom=%d%%\n", trip.Name, trip.Destination, view.State.View, int(view.State.Zoom*100+0.5))
	if err := s.printCards(view.Cards); err != nil {
		return err
	}
	for _, th := range view.Threads {
		from, _ := trip.Card(th.From)
		to, _ := trip.Card(th.To)
		fmt.Fprintf(s.out, "  %s -> %s  %s\n", from.Title, to.Title, th.Path)
	}
	if from, ok := view.State.Connect.Source(); ok {
		src, _ := trip.Card(from)
		fmt.Fprintf(s.out, "Pending connection from %q\n", src.Title)
	}
	return nil
}

func (s *Shell) showTimeline(ctx context.Context) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	cards, err := s.planner.Timeline(ctx, trip.ID)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(s.out, "Timeline is empty")
		return nil
	}
	for i, c := range cards {
		line := fmt.Sprintf("%2d. [%s] %s", i+1, c.Type(), c.Title)
		if loc := c.Location(); loc != "" {
			line += " @ " + loc
		}
		if mins, ok := c.Duration(); ok {
			line += fmt.Sprintf(" (%d min)", mins)
		}
		if f, ok := c.Details.(domain.Flight); ok {
			if d, ok := f.FlightDuration(); ok {
				line += " (" + domain.FormatFlightDuration(d) + ")"
			}
		}
		if st, ok := c.Details.(domain.Stay); ok {
			if n, ok := st.Nights(); ok {
				line += fmt.Sprintf(" (%d nights)", n)
			}
		}
		fmt.Fprintln(s.out, line)
	}
	return nil
}

func (s *Shell) showBudget(ctx context.Context) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	sum, err := s.planner.Budget(ctx, trip.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Spent %s of %s across %d items (avg %s)\n",
		money(&sum.TotalSpent), money(sum.Budget), sum.TrackedItems, money(&sum.AverageCost))
	for _, c := range sum.Categories {
		fmt.Fprintf(s.out, "  %-9s %s\n", c.Type, money(&c.Amount))
	}
	switch {
	case sum.OverBudget:
		fmt.Fprintf(s.out, "Over budget by %s\n", money(&sum.OverBy))
	case sum.Budget != nil:
		fmt.Fprintf(s.out, "%s remaining (%.0f%% used)\n", money(&sum.Remaining), sum.PercentUsed)
	}
	return nil
}

func (s *Shell) showBalance(ctx context.Context) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	b, err := s.planner.Balance(ctx, trip.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s (%.0f/100): %d activities, %d min planned\n%s\n",
		b.Label, b.Score, b.ActivityCount, b.TotalMinutes, b.Message)
	return nil
}

// ---- help ------------------------------------------------------------------

var commandHelp = map[string]string{
	"trips":     "trips                                   list trips; * marks the active one",
	"trip":      "trip new <name> <destination> [start] [end] [budget] | use <id> | rm <id> | set <field> <value>",
	"cards":     "cards                                   list cards on the active trip",
	"add":       "add <type> key=value...                 e.g. add food title=\"Ramen bar\" cost=18.5 duration=45",
	"rm":        "rm <card>                               delete a card",
	"connect":   "connect <card>                          first call picks the source, second the target",
	"drag":      "drag <card> <dx> <dy>                   move a card by a screen-space delta",
	"zoom":      "zoom in|out|<factor>                    zoom between 0.5 and 2.0",
	"board":     "board                                   cards, connection paths and pending state",
	"timeline":  "timeline                                cards from top to bottom",
	"budget":    "budget                                  spending against the trip budget",
	"balance":   "balance                                 how packed the plan is",
	"packing":   "packing [add <text> | check <n> | rm <n>]  packing checklist; check toggles item n",
	"tips":      "tips [add <text> | rm <n>]              local tips; suggestions cannot be removed",
	"moodboard": "moodboard [add <url> [title] | rm <n>]  inspiration images and links",
	"help":      "help [command]",
	"exit":      "exit                                    leave the shell",
}

func (s *Shell) help(args []string) {
	if len(args) > 0 {
		if h, ok := commandHelp[args[0]]; ok {
			fmt.Fprintln(s.out, h)
			return
		}
		fmt.Fprintf(s.out, "Unknown command: %s\n", args[0])
		return
	}
	names := make([]string, 0, len(commandHelp))
	for name := range commandHelp {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(s.out, "Commands (ids may be shortened to any unique prefix):")
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", commandHelp[name])
	}
}

// ---- formatting and input --------------------------------------------------

func dateRange(t domain.Trip) string {
	return t.StartDate.Format(time.DateOnly) + ".." + t.EndDate.Format(time.DateOnly)
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*v, 'f', -1, 64)
}

// cardFields maps `add` keys onto CardInput fields.
var cardFields = map[string]func(*domain.CardInput, string) error{
	"title":          func(in *domain.CardInput, v string) error { in.Title = v; return nil },
	"image_url":      func(in *domain.CardInput, v string) error { in.ImageURL = v; return nil },
	"start_time":     func(in *domain.CardInput, v string) error { in.StartTime = v; return nil },
	"end_time":       func(in *domain.CardInput, v string) error { in.EndTime = v; return nil },
	"departure":      func(in *domain.CardInput, v string) error { in.Departure = v; return nil },
	"arrival":        func(in *domain.CardInput, v string) error { in.Arrival = v; return nil },
	"departure_time": func(in *domain.CardInput, v string) error { in.DepartureTime = v; return nil },
	"arrival_time":   func(in *domain.CardInput, v string) error { in.ArrivalTime = v; return nil },
	"check_in":       func(in *domain.CardInput, v string) error { in.CheckIn = v; return nil },
	"check_out":      func(in *domain.CardInput, v string) error { in.CheckOut = v; return nil },
	"location":       func(in *domain.CardInput, v string) error { in.Location = v; return nil },
	"cuisine":        func(in *domain.CardInput, v string) error { in.Cuisine = v; return nil },
	"time":           func(in *domain.CardInput, v string) error { in.Time = v; return nil },
	"category":       func(in *domain.CardInput, v string) error { in.Category = v; return nil },
	"content":        func(in *domain.CardInput, v string) error { in.Content = v; return nil },
	"color":          func(in *domain.CardInput, v string) error { in.Color = v; return nil },
	"cost": func(in *domain.CardInput, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		in.Cost = &f
		return nil
	},
	"duration": func(in *domain.CardInput, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		in.Duration = &n
		return nil
	},
	"x": func(in *domain.CardInput, v string) error { return setCoord(in, v, func(p *domain.Position, f float64) { p.X = f }) },
	"y": func(in *domain.CardInput, v string) error { return setCoord(in, v, func(p *domain.Position, f float64) { p.Y = f }) },
}

// setCoord sets one coordinate, starting from the default position.
func setCoord(in *domain.CardInput, v string, set func(*domain.Position, float64)) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	if in.Position == nil {
		p := domain.DefaultPosition
		in.Position = &p
	}
	set(in.Position, f)
	return nil
}
