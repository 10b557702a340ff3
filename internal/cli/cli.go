// Package cli drives the rating API from a terminal through the same
// parse, call and render path as the console page.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/ratingdesk/internal/app"
	"github.com/okian/ratingdesk/internal/domain/action"
	"github.com/okian/ratingdesk/internal/domain/render"
)

// ErrSubmissionFailed is returned when a command's result is styled as an error.
var ErrSubmissionFailed = errors.New("submission failed")

// Reads "-" as standard input.
const stdinPath = "-"

// Dispatcher runs submissions and health probes. *app.Router satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub app.Submission) (render.Display, bool)
	Health(ctx context.Context, baseURL string) render.Display
	DefaultBaseURL() string
}

type runner struct {
	dispatcher Dispatcher
	base       string
}

// NewRootCommand builds the ratingctl command tree around d.
func NewRootCommand(d Dispatcher) *cobra.Command {
	r := &runner{dispatcher: d}

	root := &cobra.Command{
		Use:   "ratingctl",
		Short: "Operate a remote rating prediction API",
		Long: `ratingctl sends the console's operations to a rating API.

Available commands:
  update   - rebuild ratings from an event
  push     - push live match results
  team     - look up one team's rating
  predict  - predict a single match
  batch    - predict many matches
  health   - probe the API`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&r.base, "base", "", "API base URL (default "+d.DefaultBaseURL()+")")

	root.AddCommand(
		r.updateCmd(),
		r.pushCmd(),
		r.teamCmd(),
		r.predictCmd(),
		r.batchCmd(),
		r.healthCmd(),
	)
	return root
}

func (r *runner) updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update EVENT_KEY",
		Short: "Rebuild ratings from an event's matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.submit(cmd, action.Update, app.Fields{EventKey: firstArg(args)})
		},
	}
}

func (r *runner) pushCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a JSON array of played matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readPayload(cmd, path)
			if err != nil {
				return err
			}
			return r.submit(cmd, action.PushResults, app.Fields{PushJSON: raw})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", stdinPath, "JSON file to send, - for stdin")
	return cmd
}

func (r *runner) teamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team TEAM_KEY",
		Short: "Show one team's rating",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.submit(cmd, action.TeamLookup, app.Fields{TeamKey: firstArg(args)})
		},
	}
}

func (r *runner) predictCmd() *cobra.Command {
	var teams1, teams2 string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict one match between two alliances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.submit(cmd, action.PredictOne, app.Fields{Teams1: teams1, Teams2: teams2})
		},
	}
	cmd.Flags().StringVar(&teams1, "teams1", "", "alliance 1, space or comma separated")
	cmd.Flags().StringVar(&teams2, "teams2", "", "alliance 2, space or comma separated")
	return cmd
}

func (r *runner) batchCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Predict a JSON array of matchups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readPayload(cmd, path)
			if err != nil {
				return err
			}
			return r.submit(cmd, action.PredictBatch, app.Fields{BatchJSON: raw})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", stdinPath, "JSON file to send, - for stdin")
	return cmd
}

func (r *runner) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the API's health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report(cmd, r.dispatcher.Health(cmd.Context(), r.base))
		},
	}
}

func (r *runner) submit(cmd *cobra.Command, a action.Action, f app.Fields) error {
	d, ok := r.dispatcher.Dispatch(cmd.Context(), app.Submission{Action: a, BaseURL: r.base, Fields: f})
	if !ok {
		return fmt.Errorf("%w: %s was not dispatched", ErrSubmissionFailed, a)
	}
	return report(cmd, d)
}

// report prints the result and turns an error style into ErrSubmissionFailed.
func report(cmd *cobra.Command, d render.Display) error {
	fmt.Fprintln(cmd.OutOrStdout(), d.Text)
	if d.OK() {
		return nil
	}
	if d.Local {
		return ErrSubmissionFailed
	}
	return fmt.Errorf("%w: HTTP %d", ErrSubmissionFailed, d.Status)
}

func readPayload(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read payload %q: %w", path, err)
	}
	return string(data), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
