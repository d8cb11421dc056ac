package cli

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/vulpin/reopenwarn/internal/checker"
	"github.com/vulpin/reopenwarn/internal/notice"
	"github.com/vulpin/reopenwarn/internal/page"
	"github.com/vulpin/reopenwarn/internal/timeline"
)

// newAnnotateCommand creates "annotate", which injects the notice into a saved question page.
func newAnnotateCommand(opts *Options) *cobra.Command {
	var (
		pagePath     string
		timelinePath string
		baseURL      string
		outPath      string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Insert the reopen review notice into a saved question page",
		Long: "annotate reads a saved question page, resolves the question's timeline (from --timeline or the site) " +
			"and writes the page back with the notice placed after the closed status.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			site := opts.Config.BaseURL
			if baseURL != "" {
				var err error
				if site, err = opts.Config.SiteBaseURL(baseURL); err != nil {
					return err
				}
			}
			doc, err := timeline.LoadDocument(pagePath, site)
			if err != nil {
				return fmt.Errorf("load page: %w", err)
			}

			var source timeline.Source
			if timelinePath != "" {
				source = timeline.FileSource{Path: timelinePath, BaseURL: site}
			} else {
				client, err := newSiteClient(logger, opts.Config, site)
				if err != nil {
					return err
				}
				source = client
			}

			err = func() error {
				n, err := checker.New(logger, source).Check(cmd.Context(), page.FromDocument(doc))
				if err != nil || n == nil {
					return err
				}
				return notice.Insert(doc, *n)
			}()
			if err != nil {
				if strict {
					return err
				}
				logger.Warn("page left unannotated", "page", pagePath, "error", err)
			}

			html, err := doc.Html()
			if err != nil {
				return fmt.Errorf("render page: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), outPath, html)
		},
	}

	cmd.Flags().StringVar(&pagePath, "page", "", "Saved question page HTML (required)")
	_ = cmd.MarkFlagRequired("page")
	cmd.Flags().StringVar(&timelinePath, "timeline", "", "Saved timeline HTML; fetched from the site when empty")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Site the page was saved from (defaults to config base URL)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the annotated page here instead of stdout")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of writing the page unannotated")

	return cmd
}

func writeOutput(stdout io.Writer, path, content string) error {
	if strings.TrimSpace(path) == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewBufferString(content)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
