package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewSiteCmd создаёт группу команд для управления сайтами.
func NewSiteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage canteen sites",
	}

	cmd.AddCommand(
		newSiteListCmd(clientFn, outputFn),
		newSiteCreateCmd(clientFn, outputFn),
		newSiteShowCmd(clientFn, outputFn),
		newSiteDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newSiteListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			sites, err := client.ListSites()
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "RESET_AT", "ENABLED", "CREATED"}
			rows := make([][]string, len(sites))
			for i, s := range sites {
				rows[i] = []string{
					s.ID, s.Name, formatTrigger(s.Hour, s.Minute),
					strconv.FormatBool(s.Enabled), s.CreatedAt,
				}
			}

			out.Print(headers, rows, sites)
			return nil
		},
	}
}

func newSiteCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var name string
	var hour, minute int
	var disabled bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			site, err := client.CreateSite(CreateSiteRequest{
				Name:    name,
				Hour:    hour,
				Minute:  minute,
				Enabled: !disabled,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Site created: %s", site.ID))
			out.Print(
				[]string{"ID", "NAME", "RESET_AT", "ENABLED"},
				[][]string{{
					site.ID, site.Name, formatTrigger(site.Hour, site.Minute),
					strconv.FormatBool(site.Enabled),
				}},
				site,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Site name (required)")
	cmd.Flags().IntVar(&hour, "hour", 0, "Daily reset hour, 0-23")
	cmd.Flags().IntVar(&minute, "minute", 0, "Daily reset minute, 0-59")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Create with reset job disabled")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newSiteShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show SITE_ID",
		Short: "Show site details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			site, err := client.GetSite(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "NAME", "RESET_AT", "ENABLED", "CREATED"},
				[][]string{{
					site.ID, site.Name, formatTrigger(site.Hour, site.Minute),
					strconv.FormatBool(site.Enabled), site.CreatedAt,
				}},
				site,
			)
			return nil
		},
	}
}

func newSiteDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SITE_ID",
		Short: "Delete a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteSite(args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Site deleted: %s", args[0]))
			return nil
		},
	}
}

// formatTrigger форматирует время срабатывания как "HH:MM".
func formatTrigger(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
