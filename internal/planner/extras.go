package planner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
)

// Extras is the side material kept beside a trip's board: the packing
// checklist, local tips and the moodboard. Like Board it is a plain value.
type Extras struct {
	Packing   []board.PackingItem
	Tips      []board.Tip
	Moodboard []board.MoodboardItem
}

// NewExtras seeds the extras of a trip lasting days: the default packing
// list, the suggested tips and an empty moodboard.
func NewExtras(days int) Extras {
	return Extras{
		Packing:   board.PackingList(days),
		Tips:      board.DefaultTips(),
		Moodboard: []board.MoodboardItem{},
	}
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(it T) bool { return idOf(it) == id })
}

func packingID(it board.PackingItem) string { return it.ID }
func tipID(t board.Tip) string              { return t.ID }
func moodID(m board.MoodboardItem) string   { return m.ID }

// TogglePacking flips the checked state of a packing item.
func (e Extras) TogglePacking(id string) (Extras, board.PackingItem, error) {
	i := indexByID(e.Packing, id, packingID)
	if i < 0 {
		return e, board.PackingItem{}, fmt.Errorf("packing item %s: %w", id, domain.ErrNotFound)
	}
	next := e
	next.Packing = slices.Clone(e.Packing)
	next.Packing[i].Checked = !next.Packing[i].Checked
	return next, next.Packing[i], nil
}

// AddPacking appends an unchecked item. Blank text is rejected.
func (e Extras) AddPacking(id, text string) (Extras, board.PackingItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return e, board.PackingItem{}, fmt.Errorf("%w: packing item text is required", domain.ErrValidation)
	}
	item := board.PackingItem{ID: id, Text: text}
	next := e
	next.Packing = append(slices.Clone(e.Packing), item)
	return next, item, nil
}

// RemovePacking deletes a packing item.
func (e Extras) RemovePacking(id string) (Extras, error) {
	i := indexByID(e.Packing, id, packingID)
	if i < 0 {
		return e, fmt.Errorf("packing item %s: %w", id, domain.ErrNotFound)
	}
	next := e
	next.Packing = slices.Delete(slices.Clone(e.Packing), i, i+1)
	return next, nil
}

// AddTip appends a user tip. Blank content is rejected.
func (e Extras) AddTip(id, content string) (Extras, board.Tip, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return e, board.Tip{}, fmt.Errorf("%w: tip content is required", domain.ErrValidation)
	}
	tip := board.Tip{ID: id, Content: content}
	next := e
	next.Tips = append(slices.Clone(e.Tips), tip)
	return next, tip, nil
}

// RemoveTip deletes a user tip. Suggested tips cannot be removed.
func (e Extras) RemoveTip(id string) (Extras, error) {
	i := indexByID(e.Tips, id, tipID)
	if i < 0 {
		return e, fmt.Errorf("tip %s: %w", id, domain.ErrNotFound)
	}
	if e.Tips[i].Auto {
		return e, fmt.Errorf("%w: tip %s is a suggestion and cannot be removed", domain.ErrValidation, id)
	}
	next := e
	next.Tips = slices.Delete(slices.Clone(e.Tips), i, i+1)
	return next, nil
}

// AddMoodboardItem pins url to the moodboard, classified by its extension.
// A blank url is rejected.
func (e Extras) AddMoodboardItem(id, url, title string) (Extras, board.MoodboardItem, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return e, board.MoodboardItem{}, fmt.Errorf("%w: moodboard url is required", domain.ErrValidation)
	}
	item := board.MoodboardItem{ID: id, Kind: board.MoodKindOf(url), URL: url, Title: strings.TrimSpace(title)}
	next := e
	next.Moodboard = append(slices.Clone(e.Moodboard), item)
	return next, item, nil
}

// RemoveMoodboardItem unpins a moodboard entry.
func (e Extras) RemoveMoodboardItem(id string) (Extras, error) {
	i := indexByID(e.Moodboard, id, moodID)
	if i < 0 {
		return e, fmt.Errorf("moodboard item %s: %w", id, domain.ErrNotFound)
	}
	next := e
	next.Moodboard = slices.Delete(slices.Clone(e.Moodboard), i, i+1)
	return next, nil
}
