package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/iamporter/iamporter-go/client"
)

// PaymentHandler exposes payment lookup and cancellation tools.
type PaymentHandler struct {
	client *client.Client
}

func NewPaymentHandler(c *client.Client) *PaymentHandler { return &PaymentHandler{client: c} }

func (ph *PaymentHandler) RegisterTools(s *server.MCPServer) error {
	find := mcp.NewTool("find_payment",
		mcp.WithDescription("Look up a payment by imp_uid or merchant_uid; found=false when it does not exist"),
		mcp.WithString("imp_uid", mcp.Description("Vendor payment id (takes precedence)")),
		mcp.WithString("merchant_uid", mcp.Description("Merchant order id")),
	)
	list := mcp.NewTool("list_payments",
		mcp.WithDescription("List payments by status, optionally restricted to one merchant_uid"),
		mcp.WithString("status", mcp.Description("all|ready|paid|cancelled|failed (default all)")),
		mcp.WithString("merchant_uid", mcp.Description("Only attempts for this order id")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("limit", mcp.Description("Page size")),
	)
	cancel := mcp.NewTool("cancel_payment",
		mcp.WithDescription("Cancel a payment fully, or partially when amount is given"),
		mcp.WithString("imp_uid", mcp.Description("Vendor payment id")),
		mcp.WithString("merchant_uid", mcp.Description("Merchant order id")),
		mcp.WithNumber("amount", mcp.Description("Partial amount; omit for the remaining balance")),
		mcp.WithString("reason", mcp.Description("Cancellation reason shown to the buyer")),
	)
	s.AddTool(find, ph.handleFindPayment)
	s.AddTool(list, ph.handleListPayments)
	s.AddTool(cancel, ph.handleCancelPayment)
	return nil
}

func (ph *PaymentHandler) handleFindPayment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	impUID := optString(req, "imp_uid")
	merchantUID := optString(req, "merchant_uid")

	log.Debug().Str("imp_uid", impUID).Str("merchant_uid", merchantUID).Msg("find_payment invoked")

	start := time.Now()
	var (
		res *client.Result[client.Payment]
		err error
	)
	switch {
	case impUID != "":
		res, err = ph.client.FindByImpUID(ctx, impUID)
	case merchantUID != "":
		res, err = ph.client.FindByMerchantUID(ctx, merchantUID)
	default:
		return mcp.NewToolResultError(client.MsgIdentifierRequired), nil
	}
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("find_payment failed")
		return errorResult("find payment", err), nil
	}
	return resultJSON(res), nil
}

func (ph *PaymentHandler) handleListPayments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := client.PaymentStatus(optString(req, "status"))
	merchantUID := optString(req, "merchant_uid")
	page, err := optNumber(req, "page")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit, err := optNumber(req, "limit")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := client.ListOptions{Page: int(page), Limit: int(limit)}

	log.Debug().Str("status", string(status)).Str("merchant_uid", merchantUID).Int("page", opts.Page).Msg("list_payments invoked")

	start := time.Now()
	var res *client.Result[client.PaymentList]
	if merchantUID != "" {
		res, err = ph.client.FindAllByMerchantUID(ctx, merchantUID, status, opts)
	} else {
		res, err = ph.client.FindAllByStatus(ctx, status, opts)
	}
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_payments failed")
		return errorResult("list payments", err), nil
	}
	return resultJSON(res), nil
}

func (ph *PaymentHandler) handleCancelPayment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := optNumber(req, "amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cr := client.CancelRequest{
		ImpUID:      optString(req, "imp_uid"),
		MerchantUID: optString(req, "merchant_uid"),
		Amount:      amount,
		Reason:      optString(req, "reason"),
	}

	log.Debug().Str("imp_uid", cr.ImpUID).Str("merchant_uid", cr.MerchantUID).Float64("amount", amount).Msg("cancel_payment invoked")

	start := time.Now()
	res, err := ph.client.Cancel(ctx, cr)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("cancel_payment failed")
		return errorResult("cancel payment", err), nil
	}
	return resultJSON(res), nil
}
