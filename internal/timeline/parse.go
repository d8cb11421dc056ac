package timeline

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	rowsSelector = ".event-rows"
	verbSelector = ".event-verb"
)

// Events normalizes the timeline document into rows, newest first.
// Rows without a verb marker are kept with HasVerb unset so that row
// adjacency survives normalization.
func Events(doc *goquery.Document) ([]Event, error) {
	container := doc.Find(rowsSelector).First()
	if container.Length() == 0 {
		return nil, &MissingElementError{Selector: rowsSelector}
	}

	rows := container.Children()
	events := make([]Event, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		events = append(events, eventFromRow(row, doc.Url))
	})
	return events, nil
}

func eventFromRow(row *goquery.Selection, base *url.URL) Event {
	verbNode := row.Find(verbSelector).First()
	if verbNode.Length() == 0 {
		return Event{}
	}

	ev := Event{
		Verb:    strings.TrimSpace(verbNode.Text()),
		HasVerb: true,
	}
	if href, ok := verbNode.Find("a").First().Attr("href"); ok {
		ev.ReviewURL = absoluteURL(base, href)
	}
	return ev
}

// absoluteURL resolves href against base the way a browser resolves an
// anchor's href property. Unparseable values are returned trimmed.
func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
