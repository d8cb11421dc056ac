package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vulpin/reopenwarn/internal/output"
	"github.com/vulpin/reopenwarn/internal/timeline"
)

// timelineReport is the YAML shape of the timeline command.
type timelineReport struct {
	PostID string                 `yaml:"postId"`
	Events []timeline.Event       `yaml:"events"`
	Reopen *timeline.ReopenStatus `yaml:"reopen"`
}

// newTimelineCommand creates "timeline", which lists a post's events and the resolved reopen.
func newTimelineCommand(opts *Options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "timeline <post-url|post-id>",
		Short: "List a post's timeline events and the latest reopen review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())
			if outputFormat != "table" && outputFormat != formatYAML {
				return fmt.Errorf("unknown output %q, expected table or yaml", outputFormat)
			}

			target, err := opts.Config.ResolveTarget(args[0])
			if err != nil {
				return err
			}
			client, err := newSiteClient(logger, opts.Config, target.BaseURL)
			if err != nil {
				return err
			}

			doc, err := client.FetchTimeline(cmd.Context(), target.PostID)
			if err != nil {
				return err
			}
			events, err := timeline.Events(doc)
			if err != nil {
				return err
			}
			status, found := timeline.Resolve(events)
			logger.Debug("timeline resolved", "post", target.PostID, "rows", len(events), "found", found)

			out := cmd.OutOrStdout()
			if outputFormat == formatYAML {
				report := timelineReport{PostID: target.PostID, Events: events}
				if found {
					report.Reopen = &status
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode timeline: %w", err)
				}
				return enc.Close()
			}

			if err := output.Events(out, events); err != nil {
				return err
			}
			output.Status(out, status, found)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, yaml)")

	return cmd
}
