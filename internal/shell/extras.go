package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkordes/tripcanvas/internal/board"
)

// Packing, tip and moodboard entries are addressed by their 1-based position
// in the listing the command prints.

func (s *Shell) packing(ctx context.Context, args []string) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	items, err := s.planner.Packing(ctx, trip.ID)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Packing for %d days (%d%% packed)\n", trip.Days(), board.PackingProgress(items))
		for i, it := range items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			fmt.Fprintf(s.out, "%3d. %s %s\n", i+1, box, it.Text)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: packing add <text>")
		}
		item, err := s.planner.AddPackingItem(ctx, trip.ID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Added %q\n", item.Text)
		return nil
	case "check":
		i, err := position(args, len(items), "packing check <n>")
		if err != nil {
			return err
		}
		items, err = s.planner.TogglePackingItem(ctx, trip.ID, items[i].ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s (%d%% packed)\n", items[i].Text, board.PackingProgress(items))
		return nil
	case "rm":
		i, err := position(args, len(items), "packing rm <n>")
		if err != nil {
			return err
		}
		if err := s.planner.RemovePackingItem(ctx, trip.ID, items[i].ID); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Removed %q\n", items[i].Text)
		return nil
	}
	return fmt.Errorf("unknown packing command: %s", args[0])
}

func (s *Shell) tips(ctx context.Context, args []string) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	tips, err := s.planner.Tips(ctx, trip.ID)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Tips for %s\n", trip.Destination)
		for i, tip := range tips {
			mark := ""
			if tip.Auto {
				mark = " (suggested)"
			}
			fmt.Fprintf(s.out, "%3d. %s%s\n", i+1, tip.Content, mark)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: tips add <text>")
		}
		if _, err := s.planner.AddTip(ctx, trip.ID, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Tip added")
		return nil
	case "rm":
		i, err := position(args, len(tips), "tips rm <n>")
		if err != nil {
			return err
		}
		if err := s.planner.RemoveTip(ctx, trip.ID, tips[i].ID); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Tip removed")
		return nil
	}
	return fmt.Errorf("unknown tips command: %s", args[0])
}

func (s *Shell) moodboard(ctx context.Context, args []string) error {
	trip, err := s.activeTrip(ctx)
	if err != nil {
		return err
	}
	items, err := s.planner.Moodboard(ctx, trip.ID)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if len(items) == 0 {
			fmt.Fprintln(s.out, "Moodboard is empty")
			return nil
		}
		for i, it := range items {
			line := fmt.Sprintf("%3d. [%s] %s", i+1, it.Kind, it.URL)
			if it.Title != "" {
				line += "  " + it.Title
			}
			fmt.Fprintln(s.out, line)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: moodboard add <url> [title]")
		}
		title := ""
		if len(args) == 3 {
			title = args[2]
		}
		item, err := s.planner.AddMoodboardItem(ctx, trip.ID, args[1], title)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Pinned %s\n", item.Kind)
		return nil
	case "rm":
		i, err := position(args, len(items), "moodboard rm <n>")
		if err != nil {
			return err
		}
		if err := s.planner.RemoveMoodboardItem(ctx, trip.ID, items[i].ID); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Unpinned")
		return nil
	}
	return fmt.Errorf("unknown moodboard command: %s", args[0])
}

// position parses args[1] as a 1-based entry number and returns its index.
func position(args []string, count int, usage string) (int, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("no entry %s (1..%d)", args[1], count)
	}
	return n - 1, nil
}
