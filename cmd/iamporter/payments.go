package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iamporter/iamporter-go/client"
)

func newFindCmd(opts *rootOptions) *cobra.Command {
	var impUID, merchantUID string

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Look up one payment by imp_uid or merchant_uid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				log.Debug().Str("imp_uid", impUID).Str("merchant_uid", merchantUID).Msg("finding payment")

				var (
					res *client.Result[client.Payment]
					err error
				)
				switch {
				case impUID != "":
					res, err = c.FindByImpUID(ctx, impUID)
				case merchantUID != "":
					res, err = c.FindByMerchantUID(ctx, merchantUID)
				default:
					return errors.New(client.MsgIdentifierRequired)
				}
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&impUID, "imp-uid", "", "Vendor payment id")
	cmd.Flags().StringVar(&merchantUID, "merchant-uid", "", "Merchant order id")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		status, merchantUID, from, to, sorting string
		page, limit                            int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments by status, optionally for one merchant_uid",
		RunE: func(cmd *cobra.Command, args []string) error {
			lo := client.ListOptions{Page: page, Limit: limit, Sorting: sorting}
			var err error
			if lo.From, err = parseTime(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if lo.To, err = parseTime(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				var res *client.Result[client.PaymentList]
				if merchantUID != "" {
					res, err = c.FindAllByMerchantUID(ctx, merchantUID, client.PaymentStatus(status), lo)
				} else {
					res, err = c.FindAllByStatus(ctx, client.PaymentStatus(status), lo)
				}
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "all|ready|paid|cancelled|failed")
	cmd.Flags().StringVar(&merchantUID, "merchant-uid", "", "Only attempts for this order id")
	cmd.Flags().IntVar(&page, "page", 0, "1-based page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&from, "from", "", "Start of the time window (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "End of the time window (RFC 3339)")
	cmd.Flags().StringVar(&sorting, "sorting", "", "Sort order, e.g. -started, paid")
	return cmd
}

func newFindAllCmd(opts *rootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "find-all <merchant_uid>",
		Short: "List every attempt made for one merchant_uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.FindAllByMerchantUID(ctx, args[0], client.PaymentStatus(status), client.ListOptions{})
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "all|ready|paid|cancelled|failed")
	return cmd
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func newCancelCmd(opts *rootOptions) *cobra.Command {
	var req client.CancelRequest

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a payment fully, or partially with --amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				start := time.Now()
				res, err := c.Cancel(ctx, req)
				if err != nil {
					log.Error().Err(err).Str("imp_uid", req.ImpUID).Str("merchant_uid", req.MerchantUID).Dur("elapsed", time.Since(start)).Msg("cancel failed")
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&req.ImpUID, "imp-uid", "", "Vendor payment id")
	cmd.Flags().StringVar(&req.MerchantUID, "merchant-uid", "", "Merchant order id")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Partial amount; omit for the remaining balance")
	cmd.Flags().Float64Var(&req.TaxFree, "tax-free", 0, "Tax-free part of the amount")
	cmd.Flags().Float64Var(&req.Checksum, "checksum", 0, "Cancellable balance the caller expects")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Cancellation reason")
	cmd.Flags().StringVar(&req.RefundHolder, "refund-holder", "", "Refund account holder (virtual account payments)")
	cmd.Flags().StringVar(&req.RefundBank, "refund-bank", "", "Refund bank code")
	cmd.Flags().StringVar(&req.RefundAccount, "refund-account", "", "Refund account number")
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue an access token and print it with its expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				if _, err := c.GetToken(ctx); err != nil {
					return err
				}
				tok, exp := c.Token()
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tok, exp.Format(time.RFC3339))
				return err
			})
		},
	}
}
