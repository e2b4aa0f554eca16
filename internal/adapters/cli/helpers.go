package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// runFunc is a command body running against an open session
type runFunc func(cmd *cobra.Command, s *session, args []string) error

// withSession opens a session around fn. When mutates is set the autosave is
// written after fn succeeds.
func withSession(mutates bool, fn runFunc) func(cmd *cobra.Command, args []string) error {
	return withSessionOptions(sessionOptions{}, mutates, fn)
}

func withSessionOptions(opts sessionOptions, mutates bool, fn runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer s.close()

		if err := fn(cmd, s, args); err != nil {
			return err
		}
		if mutates {
			if err := s.save(); err != nil {
				return fmt.Errorf("failed to save game: %w", err)
			}
		}
		return nil
	}
}

// printJSON writes v indented
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newFormatter() *TreeFormatter {
	return NewTreeFormatter(!noColor)
}
