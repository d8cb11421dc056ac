// Package page answers questions about a rendered question page.
package page

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// State reports what the current question page shows.
type State interface {
	IsQuestionPage() bool
	IsClosed() bool
	IsLoggedIn() bool
	HasReviewPrivileges() bool
	QuestionID() string
}

// Markers used by the host site's question page.
const (
	questionPageSelector = "body.question-page"
	closedSelector       = ".close-status-suffix"
	questionSelector     = "#question"
	profileSelector      = ".s-topbar a.my-profile"
	reviewSelector       = `.s-topbar a.js-review-button, .s-topbar a[href="/review"]`
)

// Document reads page state from a parsed question page.
type Document struct {
	doc *goquery.Document
}

func FromDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

func (d *Document) IsQuestionPage() bool {
	return d.doc.Find(questionPageSelector).Length() > 0
}

func (d *Document) IsClosed() bool {
	return d.doc.Find(closedSelector).Length() > 0
}

func (d *Document) IsLoggedIn() bool {
	return d.doc.Find(profileSelector).Length() > 0
}

func (d *Document) HasReviewPrivileges() bool {
	return d.doc.Find(reviewSelector).Length() > 0
}

// QuestionID returns the data-questionid of #question, or "" when absent.
func (d *Document) QuestionID() string {
	id, _ := d.doc.Find(questionSelector).First().Attr("data-questionid")
	return strings.TrimSpace(id)
}

// Static is a fixed State.
type Static struct {
	QuestionPage bool
	Closed       bool
	LoggedIn     bool
	Reviewer     bool
	ID           string
}

func (s Static) IsQuestionPage() bool      { return s.QuestionPage }
func (s Static) IsClosed() bool            { return s.Closed }
func (s Static) IsLoggedIn() bool          { return s.LoggedIn }
func (s Static) HasReviewPrivileges() bool { return s.Reviewer }
func (s Static) QuestionID() string        { return s.ID }

// Override forces viewer predicates on top of another State. Nil fields
// defer to the wrapped State.
type Override struct {
	State
	LoggedIn *bool
	Reviewer *bool
}

func (o Override) IsLoggedIn() bool {
	if o.LoggedIn != nil {
		return *o.LoggedIn
	}
	return o.State.IsLoggedIn()
}

func (o Override) HasReviewPrivileges() bool {
	if o.Reviewer != nil {
		return *o.Reviewer
	}
	return o.State.HasReviewPrivileges()
}
