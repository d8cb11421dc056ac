package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vulpin/reopenwarn/internal/checker"
	"github.com/vulpin/reopenwarn/internal/ghoutput"
	"github.com/vulpin/reopenwarn/internal/notice"
	"github.com/vulpin/reopenwarn/internal/page"
)

const (
	formatText = "text"
	formatHTML = "html"
	formatYAML = "yaml"
)

// newCheckCommand creates "check", which fetches a question page and prints its reopen notice.
func newCheckCommand(opts *Options) *cobra.Command {
	var (
		format         string
		strict         bool
		assumeLoggedIn bool
		assumeReviewer bool
	)

	cmd := &cobra.Command{
		Use:   "check <question-url|question-id>",
		Short: "Print the reopen review notice for a closed question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			if err := validateFormat(format); err != nil {
				return err
			}

			cfg := opts.Config
			target, err := cfg.ResolveTarget(args[0])
			if err != nil {
				return err
			}
			client, err := newSiteClient(logger, cfg, target.BaseURL)
			if err != nil {
				return err
			}

			n, err := func() (*notice.Notice, error) {
				doc, err := client.FetchQuestion(cmd.Context(), target.PostID)
				if err != nil {
					return nil, err
				}
				state := page.Override{
					State:    page.FromDocument(doc),
					LoggedIn: boolFlag(cmd.Flags().Changed("assume-logged-in"), assumeLoggedIn),
					Reviewer: boolFlag(cmd.Flags().Changed("assume-reviewer"), assumeReviewer),
				}
				return checker.New(logger, client).Check(cmd.Context(), state)
			}()
			if err != nil {
				if strict {
					return err
				}
				logger.Warn("reopen check skipped", "question", target.PostID, "error", err)
				return nil
			}

			if err := publishOutputs(n); err != nil {
				logger.Warn("cannot write GitHub outputs", "error", err)
			}
			if n == nil {
				logger.Info("no reopen notice for question", "question", target.PostID)
				return nil
			}
			return writeNotice(cmd.OutOrStdout(), format, *n)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, html, yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on fetch or markup errors instead of skipping the notice")
	cmd.Flags().BoolVar(&assumeLoggedIn, "assume-logged-in", false, "Override the logged-in state read from the page")
	cmd.Flags().BoolVar(&assumeReviewer, "assume-reviewer", false, "Override the review privilege state read from the page")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatHTML, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q, expected text, html or yaml", format)
	}
}

func writeNotice(w io.Writer, format string, n notice.Notice) error {
	switch format {
	case formatHTML:
		fragment, err := notice.RenderHTML(n)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, fragment)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode notice: %w", err)
		}
		return enc.Close()
	default:
		return notice.RenderText(w, n)
	}
}

func publishOutputs(n *notice.Notice) error {
	values := map[string]string{"reopen_review": "none"}
	if n != nil {
		values["reopen_review"] = n.State
		values["review_url"] = n.ReviewURL
		values["caveat"] = strings.TrimSpace(n.Caveat)
	}
	return ghoutput.Write(values)
}
