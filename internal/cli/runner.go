package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRunnerCmd создаёт группу команд для работы с runner'ами.
func NewRunnerCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Draw and inspect runners",
	}

	cmd.AddCommand(
		newRunnerDrawCmd(clientFn, outputFn),
		newRunnerShowCmd(clientFn, outputFn),
		newRunnerAssignCmd(clientFn, outputFn),
		newRunnerOrderedCmd(clientFn, outputFn),
	)

	return cmd
}

func newRunnerDrawCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "draw SITE_ID RANK",
		Short: "Draw a runner by weighted random selection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runner, err := client.DrawRunner(args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner drawn: %s", runner.DisplayName))
			out.Print(
				[]string{"ID", "NAME"},
				[][]string{{runner.ID, runner.DisplayName}},
				runner,
			)
			return nil
		},
	}
}

func newRunnerShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show SITE_ID RANK",
		Short: "Show current and last runner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			state, err := client.GetRunnerState(args[0], args[1])
			if err != nil {
				return err
			}

			current, last := "-", "-"
			if state.Current != nil {
				current = state.Current.DisplayName
			}
			if state.Last != nil {
				last = state.Last.DisplayName
			}

			out.Print(
				[]string{"SITE_ID", "RANK", "CURRENT", "LAST"},
				[][]string{{state.SiteID, state.Rank, current, last}},
				state,
			)
			return nil
		},
	}
}

func newRunnerAssignCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "assign SITE_ID RANK",
		Short: "Assign a runner directly (volunteer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			runner, err := client.AssignRunner(args[0], args[1], accountID)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Runner assigned: %s", runner.DisplayName))
			out.Print(
				[]string{"ID", "NAME"},
				[][]string{{runner.ID, runner.DisplayName}},
				runner,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID of the volunteer (required)")
	cmd.MarkFlagRequired("account")

	return cmd
}

func newRunnerOrderedCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var mark string

	cmd := &cobra.Command{
		Use:   "ordered RANK",
		Short: "List sites the rank has ordered at, or mark one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if mark != "" {
				if err := client.SetOrdered(mark, args[0]); err != nil {
					return err
				}
				out.Success(fmt.Sprintf("Marked ordered: site %s, rank %s", mark, args[0]))
				return nil
			}

			ids, err := client.ListOrdered(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, len(ids))
			for i, id := range ids {
				rows[i] = []string{id}
			}
			out.Print([]string{"SITE_ID"}, rows, ids)
			return nil
		},
	}

	cmd.Flags().StringVar(&mark, "mark", "", "Mark this site as ordered instead of listing")

	return cmd
}
