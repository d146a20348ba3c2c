package services

import (
	"fmt"
	"strings"

	"showscraper/internal/models"
)

// DigestSubject is the subject line for the new-shows email.
const DigestSubject = "New shows on the radar"

// DigestBody renders the plain-text digest for a batch of newly persisted
// shows, ordered as persisted.
func DigestBody(shows []models.Show) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d new show(s) found:\n\n", len(shows))
	for _, show := range shows {
		fmt.Fprintf(&b, "%s @ %s\n", show.ShowDate.Format("Mon Jan 2 2006"), show.Venue)
		fmt.Fprintf(&b, "  %s\n", show.Title)
		fmt.Fprintf(&b, "  bands: %s\n", strings.Join(show.Bands, ", "))
		if show.DoorTime != nil {
			fmt.Fprintf(&b, "  doors: %s\n", show.DoorTime.Format("3:04 PM"))
		}
		if show.ShowTime != nil {
			fmt.Fprintf(&b, "  music: %s\n", show.ShowTime.Format("3:04 PM"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
