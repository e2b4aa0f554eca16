package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
)

// NewMissionCommand creates the mission command with subcommands
func NewMissionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Track and complete missions",
	}
	cmd.AddCommand(newMissionListCommand())
	cmd.AddCommand(newMissionEvaluateCommand())
	cmd.AddCommand(newMissionCompleteCommand())
	return cmd
}

// newMissionListCommand creates the mission list subcommand
func newMissionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List missions with their objectives",
		Args:  cobra.NoArgs,
		RunE: withSession(false, func(cmd *cobra.Command, s *session, args []string) error {
			missions := s.store.Snapshot().Missions
			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), missions)
			}
			if len(missions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No missions.")
				return nil
			}
			f := newFormatter()
			for _, m := range missions {
				fmt.Fprintln(cmd.OutOrStdout(), f.FormatMission(m))
			}
			return nil
		}),
	}
}

// newMissionEvaluateCommand creates the mission evaluate subcommand
func newMissionEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <mission-id>",
		Short: "Tick off objectives the ship's performance already meets",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			resp, err := s.send(&appGame.EvaluateObjectivesCommand{MissionID: args[0]})
			if err != nil {
				return err
			}
			result := resp.(*appGame.EvaluateObjectivesResponse)
			fmt.Fprintf(cmd.OutOrStdout(), "%d objective(s) completed.\n", result.NewlyCompleted)
			return nil
		}),
	}
}

// newMissionCompleteCommand creates the mission complete subcommand
func newMissionCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <mission-id>",
		Short: "Complete a mission and collect its rewards",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(true, func(cmd *cobra.Command, s *session, args []string) error {
			state, err := s.sendState(&appGame.CompleteMissionCommand{MissionID: args[0]})
			if err != nil {
				return err
			}
			_, m, err := state.FindMission(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mission %q completed. Credits: %d, experience: %d.\n",
				m.Name, state.Credits, state.Player.Experience)
			return nil
		}),
	}
}
