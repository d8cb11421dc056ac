// Package notice builds and renders the reopen review warning.
package notice

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"text/template"

	"github.com/PuerkitoBio/goquery"

	"github.com/vulpin/reopenwarn/internal/timeline"
)

//go:embed templates/*.tmpl
var noticeTemplates embed.FS

const (
	textTemplate = "templates/notice.txt.tmpl"
	htmlTemplate = "templates/notice.html.tmpl"

	// anchorSelector is the status block the notice is placed after.
	anchorSelector = ".special-status>.question-status"
)

const (
	completedBody = "Reopen review has been completed. This question will not appear in the Reopen Review queue again. " +
		"If you believe it should be reopened, please use other means to have it reconsidered."
	pendingBody = "Any existing votes will not be reset by future edits."

	anonymousCaveat = "You are not logged in. The timeline hides review details from anonymous users, so this status may be inaccurate."
	reviewerCaveat  = "You do not have access to the review queues. The timeline hides review details from you, so this status may be inaccurate."
)

// Viewer describes who is looking at the page.
type Viewer struct {
	LoggedIn bool
	Reviewer bool
}

// Notice is the rendered-ready warning.
type Notice struct {
	// State is "completed" or "pending".
	State     string `yaml:"state"`
	Heading   string `yaml:"heading"`
	ReviewURL string `yaml:"reviewUrl"`
	Body      string `yaml:"body"`
	Caveat    string `yaml:"caveat,omitempty"`
}

// Build turns a resolved reopen status into a notice for viewer.
func Build(status timeline.ReopenStatus, viewer Viewer) Notice {
	n := Notice{
		State:     "pending",
		ReviewURL: status.ReviewURL,
		Body:      pendingBody,
	}
	if status.IsCompleted {
		n.State = "completed"
		n.Body = completedBody
	}
	n.Heading = fmt.Sprintf("A %s reopen review has been found", n.State)

	switch {
	case !viewer.LoggedIn:
		n.Caveat = anonymousCaveat
	case !viewer.Reviewer:
		n.Caveat = reviewerCaveat
	}
	return n
}

// RenderText writes a plain-text rendering of n to w.
func RenderText(w io.Writer, n Notice) error {
	data, err := noticeTemplates.ReadFile(textTemplate)
	if err != nil {
		return fmt.Errorf("load notice template %s: %w", textTemplate, err)
	}
	tmpl, err := template.New(textTemplate).Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse notice template: %w", err)
	}
	if err := tmpl.Execute(w, n); err != nil {
		return fmt.Errorf("execute notice template: %w", err)
	}
	return nil
}

// RenderHTML returns the notice as a special-status fragment.
func RenderHTML(n Notice) (string, error) {
	data, err := noticeTemplates.ReadFile(htmlTemplate)
	if err != nil {
		return "", fmt.Errorf("load notice template %s: %w", htmlTemplate, err)
	}
	tmpl, err := htmltemplate.New(htmlTemplate).Parse(string(data))
	if err != nil {
		return "", fmt.Errorf("parse notice template: %w", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, n); err != nil {
		return "", fmt.Errorf("execute notice template: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// Insert places the notice right after the page's existing question status.
func Insert(doc *goquery.Document, n Notice) error {
	anchor := doc.Find(anchorSelector).First()
	if anchor.Length() == 0 {
		return &timeline.MissingElementError{Selector: anchorSelector}
	}
	fragment, err := RenderHTML(n)
	if err != nil {
		return err
	}
	anchor.AfterHtml(fragment)
	return nil
}
