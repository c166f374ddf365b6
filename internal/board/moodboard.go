package board

import "regexp"

// MoodKind tells how a moodboard entry is rendered.
type MoodKind string

const (
	MoodImage MoodKind = "image"
	MoodLink  MoodKind = "link"
)

// MoodboardItem is one inspiration URL pinned to a trip.
type MoodboardItem struct {
	ID    string   `json:"id"`
	Kind  MoodKind `json:"type"`
	URL   string   `json:"url"`
	Title string   `json:"title,omitempty"`
}

var imageURL = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// MoodKindOf classifies url by its extension: common image suffixes are
// images, anything else is a link. Query strings defeat the match.
func MoodKindOf(url string) MoodKind {
	if imageURL.MatchString(url) {
		return MoodImage
	}
	return MoodLink
}
