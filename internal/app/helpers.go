package app

import (
	"fmt"

	"github.com/nhle/mailpost/internal/mail"
	"github.com/nhle/mailpost/internal/post"
)

// titleSuggestions builds the candidates offered by the initialize
// form: the already-bound title when there is one, then the draft
// name, then the line under the cursor.
func titleSuggestions(p post.Post, path, line string) []string {
	name := "untitled"
	if path != "" {
		name = post.DraftStem(path)
	}
	if p.Title != "" {
		return post.SuggestTitles(p.Title, name, line)
	}
	return post.SuggestTitles(name, line)
}

// scanSummary formats the result of a posts-directory scan.
func scanSummary(added, removed int) string {
	return fmt.Sprintf("Draft scan: %d added, %d removed", added, removed)
}

// sentStatus formats the status line after a successful send.
func sentStatus(title, recipient string) string {
	if title == "" {
		title = "post"
	}
	if recipient == "" {
		return fmt.Sprintf("Sent %q", title)
	}
	return fmt.Sprintf("Sent %q to %s", title, recipient)
}

// sendFailureStatus formats a failed send, pointing at the password
// command when the relay rejected our credentials.
func sendFailureStatus(err error) string {
	if mail.IsAuthError(err) {
		return err.Error() + " (store a password with: mailpost password)"
	}
	return "send failed: " + err.Error()
}
