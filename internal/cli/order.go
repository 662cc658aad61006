package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewOrderCmd создаёт группу команд для работы с заказами.
func NewOrderCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders of the current cycle",
	}

	cmd.AddCommand(
		newOrderCreateCmd(clientFn, outputFn),
		newOrderListCmd(clientFn, outputFn),
	)

	return cmd
}

func newOrderCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var accountID, item, comment string

	cmd := &cobra.Command{
		Use:   "create SITE_ID",
		Short: "Create an order at a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			order, err := client.CreateOrder(CreateOrderRequest{
				AccountID: accountID,
				SiteID:    args[0],
				Item:      item,
				Comment:   comment,
			})
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Order created: %s", order.ID))
			out.Print(
				[]string{"ID", "ACCOUNT_ID", "ITEM", "COMMENT"},
				[][]string{{order.ID, order.AccountID, order.Item, order.Comment}},
				order,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID (required)")
	cmd.Flags().StringVar(&item, "item", "", "Ordered item (required)")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment for the kitchen")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("item")

	return cmd
}

func newOrderListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list SITE_ID",
		Short: "List orders of a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			orders, err := client.ListOrders(args[0])
			if err != nil {
				return err
			}

			headers := []string{"ID", "ACCOUNT_ID", "ITEM", "COMMENT", "CREATED"}
			rows := make([][]string, len(orders))
			for i, o := range orders {
				rows[i] = []string{o.ID, o.AccountID, o.Item, o.Comment, o.CreatedAt}
			}

			out.Print(headers, rows, orders)
			return nil
		},
	}
}
