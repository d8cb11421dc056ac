// Package timeline turns a post timeline page into events and finds the
// latest reopen review since the question was last closed.
package timeline

import "fmt"

// Verbs recognised by the resolver. Other verbs are carried through but ignored.
const (
	VerbClosed    = "closed"
	VerbReopen    = "reopen"
	VerbCompleted = "completed"
)

// Event is one row of the timeline's event list.
type Event struct {
	// Verb is the trimmed text of the row's verb marker.
	Verb string `yaml:"verb"`
	// HasVerb is false for rows without a verb marker.
	HasVerb bool `yaml:"hasVerb"`
	// ReviewURL is the absolute link inside the verb marker, if any.
	ReviewURL string `yaml:"reviewUrl,omitempty"`
}

// ReopenStatus describes the most recent reopen review since the last close.
type ReopenStatus struct {
	// ReviewURL links to the reopen review.
	ReviewURL string `yaml:"reviewUrl"`
	// IsCompleted is true when the review is known to have finished.
	IsCompleted bool `yaml:"isCompleted"`
}

// MissingElementError reports a required element absent from a document.
type MissingElementError struct {
	Selector string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("element %q not found", e.Selector)
}
