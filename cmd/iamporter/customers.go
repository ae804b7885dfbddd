package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iamporter/iamporter-go/client"
)

func newBillingKeyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing-key",
		Short: "Manage cards stored under a customer_uid",
	}
	cmd.AddCommand(newCreateBillingKeyCmd(opts), newGetBillingKeyCmd(opts), newDeleteBillingKeyCmd(opts))
	return cmd
}

func newCreateBillingKeyCmd(opts *rootOptions) *cobra.Command {
	var req client.BillingKeyRequest

	cmd := &cobra.Command{
		Use:   "create <customer_uid>",
		Short: "Register or replace the card stored for a customer_uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.CreateBillingKey(ctx, args[0], req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.CardNumber, "card-number", "", "Card number, dashes allowed")
	f.StringVar(&req.Expiry, "expiry", "", "Card expiry as YYYY-MM")
	f.StringVar(&req.Birth, "birth", "", "Holder birth date YYMMDD, or business number")
	f.StringVar(&req.Pwd2Digit, "pwd-2digit", "", "First two digits of the card password")
	f.StringVar(&req.CustomerName, "customer-name", "", "Customer name")
	f.StringVar(&req.CustomerTel, "customer-tel", "", "Customer phone")
	f.StringVar(&req.CustomerEmail, "customer-email", "", "Customer email")
	return cmd
}

func newGetBillingKeyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <customer_uid>",
		Short: "Show the card stored for a customer_uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.GetBillingKey(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}
}

func newDeleteBillingKeyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <customer_uid>",
		Short: "Remove the card stored for a customer_uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.DeleteBillingKey(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}
}
