package model

import "fmt"

// Album is one entry from the account album list. It is produced read-only
// from the API response and never mutated.
type Album struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Privacy string `json:"privacy"` // public, hidden or secret
}

// Display returns the menu label used by the album chooser,
// e.g. "Holiday pics(hidden)".
func (a Album) Display() string {
	return fmt.Sprintf("%s(%s)", a.Title, a.Privacy)
}
