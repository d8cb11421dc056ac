// Package output renders command results for the terminal.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vulpin/reopenwarn/internal/timeline"
)

var (
	red    = color.New(color.FgHiRed).SprintFunc()
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// VerbColor colors the verbs the resolver cares about.
func VerbColor(verb string) string {
	switch verb {
	case timeline.VerbClosed:
		return red(verb)
	case timeline.VerbReopen:
		return yellow(verb)
	case timeline.VerbCompleted:
		return green(verb)
	default:
		return verb
	}
}

// Events prints the normalized timeline rows as a table.
func Events(w io.Writer, events []timeline.Event) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"#", "Verb", "Link"})

	for i, ev := range events {
		v := faint("-")
		if ev.HasVerb {
			v = VerbColor(ev.Verb)
		}
		if err := table.Append([]string{fmt.Sprintf("%d", i), v, ev.ReviewURL}); err != nil {
			return err
		}
	}
	return table.Render()
}

// Status prints a one-line summary of the resolved reopen status.
func Status(w io.Writer, status timeline.ReopenStatus, found bool) {
	switch {
	case !found:
		fmt.Fprintln(w, faint("no reopen review since last close"))
	case status.IsCompleted:
		fmt.Fprintf(w, "%s reopen review: %s\n", green("completed"), status.ReviewURL)
	default:
		fmt.Fprintf(w, "%s reopen review: %s\n", yellow("pending"), status.ReviewURL)
	}
}
