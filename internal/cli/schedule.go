package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewScheduleCmd создаёт группу команд для управления расписаниями
// reset job'ов.
func NewScheduleCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage daily reset schedules",
	}

	cmd.AddCommand(
		newScheduleShowCmd(clientFn, outputFn),
		newScheduleSetCmd(clientFn, outputFn),
		newScheduleEnableCmd(clientFn, outputFn),
		newScheduleDisableCmd(clientFn, outputFn),
	)

	return cmd
}

func newScheduleShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show SITE_ID",
		Short: "Show the reset schedule of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.GetSchedule(args[0])
			if err != nil {
				return err
			}

			out.Print(scheduleHeaders, [][]string{scheduleRow(schedule)}, schedule)
			return nil
		},
	}
}

func newScheduleSetCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var hour, minute int
	var disabled bool

	cmd := &cobra.Command{
		Use:   "set SITE_ID",
		Short: "Set the daily reset time of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			schedule, err := client.UpdateSchedule(args[0], UpdateScheduleRequest{
				Hour:    hour,
				Minute:  minute,
				Enabled: !disabled,
			})
			if err != nil {
				return err
			}

			out.Success("Schedule updated")
			out.Print(scheduleHeaders, [][]string{scheduleRow(schedule)}, schedule)
			return nil
		},
	}

	cmd.Flags().IntVar(&hour, "hour", 0, "Reset hour, 0-23 (required)")
	cmd.Flags().IntVar(&minute, "minute", 0, "Reset minute, 0-59")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Keep the timer disarmed")
	cmd.MarkFlagRequired("hour")

	return cmd
}

func newScheduleEnableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "enable SITE_ID",
		Short: "Arm the reset timer with the saved trigger time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(clientFn(), outputFn(), args[0], true)
		},
	}
}

func newScheduleDisableCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "disable SITE_ID",
		Short: "Disarm the reset timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(clientFn(), outputFn(), args[0], false)
		},
	}
}

// setEnabled перечитывает текущее время срабатывания и переключает
// только флаг enabled: PUT принимает полное расписание.
func setEnabled(client *Client, out *Output, siteID string, enabled bool) error {
	current, err := client.GetSchedule(siteID)
	if err != nil {
		return err
	}

	schedule, err := client.UpdateSchedule(siteID, UpdateScheduleRequest{
		Hour:    current.Hour,
		Minute:  current.Minute,
		Enabled: enabled,
	})
	if err != nil {
		return err
	}

	if enabled {
		out.Success(fmt.Sprintf("Schedule enabled: %s", siteID))
	} else {
		out.Success(fmt.Sprintf("Schedule disabled: %s", siteID))
	}
	out.Print(scheduleHeaders, [][]string{scheduleRow(schedule)}, schedule)
	return nil
}

var scheduleHeaders = []string{"SITE_ID", "RESET_AT", "ENABLED", "STATE", "NEXT_RUN"}

func scheduleRow(s *ScheduleResponse) []string {
	return []string{
		s.SiteID, formatTrigger(s.Hour, s.Minute),
		strconv.FormatBool(s.Enabled), s.State, s.NextRun,
	}
}
