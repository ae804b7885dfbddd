package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iamporter/iamporter-go/client"
)

// orderID returns id, or a fresh merchant_uid when it is empty.
func orderID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func newPrepareCmd(opts *rootOptions) *cobra.Command {
	var req client.PreparePaymentRequest

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Register the amount expected for a merchant_uid",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MerchantUID = orderID(req.MerchantUID)
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.CreatePreparedPayment(ctx, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&req.MerchantUID, "merchant-uid", "", "Order id (generated when omitted)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Expected amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newGetPreparedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get-prepared <merchant_uid>",
		Short: "Show the amount registered for a merchant_uid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.GetPreparedPayment(ctx, args[0])
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}
}

func newPayOnetimeCmd(opts *rootOptions) *cobra.Command {
	var req client.OnetimePaymentRequest

	cmd := &cobra.Command{
		Use:   "pay-onetime",
		Short: "Charge a card directly; with --customer-uid the card is also kept as a billing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MerchantUID = orderID(req.MerchantUID)
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.PayOnetime(ctx, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.MerchantUID, "merchant-uid", "", "Order id (generated when omitted)")
	f.Float64Var(&req.Amount, "amount", 0, "Amount to charge")
	f.StringVar(&req.CardNumber, "card-number", "", "Card number, dashes allowed")
	f.StringVar(&req.Expiry, "expiry", "", "Card expiry as YYYY-MM")
	f.StringVar(&req.Birth, "birth", "", "Holder birth date YYMMDD, or business number")
	f.StringVar(&req.Pwd2Digit, "pwd-2digit", "", "First two digits of the card password")
	f.StringVar(&req.CustomerUID, "customer-uid", "", "Store the card under this customer_uid")
	f.StringVar(&req.Name, "name", "", "Order name")
	f.IntVar(&req.CardQuota, "card-quota", 0, "Installment months")
	f.StringVar(&req.BuyerName, "buyer-name", "", "Buyer name")
	f.StringVar(&req.BuyerEmail, "buyer-email", "", "Buyer email")
	f.StringVar(&req.BuyerTel, "buyer-tel", "", "Buyer phone")
	return cmd
}

func newPayAgainCmd(opts *rootOptions) *cobra.Command {
	var req client.SubscriptionPaymentRequest

	cmd := &cobra.Command{
		Use:   "pay-again",
		Short: "Charge a stored billing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MerchantUID = orderID(req.MerchantUID)
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.PaySubscription(ctx, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.CustomerUID, "customer-uid", "", "Billing key owner")
	f.StringVar(&req.MerchantUID, "merchant-uid", "", "Order id (generated when omitted)")
	f.Float64Var(&req.Amount, "amount", 0, "Amount to charge")
	f.StringVar(&req.Name, "name", "", "Order name")
	f.IntVar(&req.CardQuota, "card-quota", 0, "Installment months")
	f.StringVar(&req.BuyerName, "buyer-name", "", "Buyer name")
	f.StringVar(&req.BuyerEmail, "buyer-email", "", "Buyer email")
	f.StringVar(&req.BuyerTel, "buyer-tel", "", "Buyer phone")
	return cmd
}

func newPayForeignCmd(opts *rootOptions) *cobra.Command {
	var req client.ForeignPaymentRequest

	cmd := &cobra.Command{
		Use:   "pay-foreign",
		Short: "Charge a card issued abroad",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MerchantUID = orderID(req.MerchantUID)
			return opts.run(cmd, func(ctx context.Context, c *client.Client) error {
				res, err := c.PayForeign(ctx, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.MerchantUID, "merchant-uid", "", "Order id (generated when omitted)")
	f.Float64Var(&req.Amount, "amount", 0, "Amount to charge")
	f.StringVar(&req.CardNumber, "card-number", "", "Card number")
	f.StringVar(&req.Expiry, "expiry", "", "Card expiry as YYYY-MM")
	f.StringVar(&req.CVC, "cvc", "", "Card verification code")
	f.StringVar(&req.Name, "name", "", "Order name")
	f.StringVar(&req.BuyerName, "buyer-name", "", "Buyer name")
	f.StringVar(&req.BuyerEmail, "buyer-email", "", "Buyer email")
	f.StringVar(&req.BuyerTel, "buyer-tel", "", "Buyer phone")
	return cmd
}
