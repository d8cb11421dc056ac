package timeline

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Resolve scans events newest first and stops at the first decisive row.
//
// A closed event yields no status. A reopen event yields its review link,
// completed only when the very next row is a completed event. Intervening
// rows are not searched past, so a completion further down is not seen.
func Resolve(events []Event) (ReopenStatus, bool) {
	for i, ev := range events {
		if !ev.HasVerb {
			continue
		}
		switch ev.Verb {
		case VerbClosed:
			return ReopenStatus{}, false
		case VerbReopen:
			status := ReopenStatus{ReviewURL: ev.ReviewURL}
			if i+1 < len(events) {
				next := events[i+1]
				status.IsCompleted = next.HasVerb && next.Verb == VerbCompleted
			}
			return status, true
		}
	}
	return ReopenStatus{}, false
}

// ResolveDocument normalizes doc and resolves the latest reopen.
func ResolveDocument(doc *goquery.Document) (ReopenStatus, bool, error) {
	events, err := Events(doc)
	if err != nil {
		return ReopenStatus{}, false, err
	}
	status, ok := Resolve(events)
	return status, ok, nil
}

// Source provides a post's timeline document.
type Source interface {
	FetchTimeline(ctx context.Context, postID string) (*goquery.Document, error)
}

// LastReopen fetches the timeline for postID and resolves it.
func LastReopen(ctx context.Context, src Source, postID string) (ReopenStatus, bool, error) {
	doc, err := src.FetchTimeline(ctx, postID)
	if err != nil {
		return ReopenStatus{}, false, err
	}
	return ResolveDocument(doc)
}
