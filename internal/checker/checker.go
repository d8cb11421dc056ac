// Package checker decides whether a question page needs a reopen review notice.
package checker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vulpin/reopenwarn/internal/notice"
	"github.com/vulpin/reopenwarn/internal/page"
	"github.com/vulpin/reopenwarn/internal/timeline"
)

// Checker runs one page check against a timeline source.
type Checker struct {
	logger *slog.Logger
	source timeline.Source
}

func New(logger *slog.Logger, source timeline.Source) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{logger: logger, source: source}
}

// Check returns the notice to show for state, or nil when none applies.
// Pages that are not closed questions never touch the timeline.
func (c *Checker) Check(ctx context.Context, state page.State) (*notice.Notice, error) {
	if !state.IsQuestionPage() {
		c.logger.Debug("not a question page, skipping")
		return nil, nil
	}
	if !state.IsClosed() {
		c.logger.Debug("question is open, skipping")
		return nil, nil
	}

	id := state.QuestionID()
	if id == "" {
		return nil, &timeline.MissingElementError{Selector: "#question[data-questionid]"}
	}

	status, ok, err := timeline.LastReopen(ctx, c.source, id)
	if err != nil {
		return nil, fmt.Errorf("resolve reopen for question %s: %w", id, err)
	}
	if !ok {
		c.logger.Info("no reopen review since last close", "question", id)
		return nil, nil
	}

	c.logger.Info("reopen review found",
		"question", id,
		"review", status.ReviewURL,
		"completed", status.IsCompleted,
	)

	n := notice.Build(status, notice.Viewer{
		LoggedIn: state.IsLoggedIn(),
		Reviewer: state.HasReviewPrivileges(),
	})
	return &n, nil
}
