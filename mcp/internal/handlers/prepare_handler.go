package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/iamporter/iamporter-go/client"
)

// PrepareHandler exposes amount pre-registration tools.
type PrepareHandler struct {
	client *client.Client
}

func NewPrepareHandler(c *client.Client) *PrepareHandler { return &PrepareHandler{client: c} }

func (h *PrepareHandler) RegisterTools(s *server.MCPServer) error {
	prepare := mcp.NewTool("prepare_payment",
		mcp.WithDescription("Register the amount the vendor must see for a merchant_uid before checkout; returns the merchant_uid"),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Expected amount in KRW")),
		mcp.WithString("merchant_uid", mcp.Description("Order id; generated when omitted")),
	)
	get := mcp.NewTool("get_prepared_payment",
		mcp.WithDescription("Read a registered amount back; found=false when none exists"),
		mcp.WithString("merchant_uid", mcp.Required(), mcp.Description("Order id")),
	)
	s.AddTool(prepare, h.handlePrepare)
	s.AddTool(get, h.handleGetPrepared)
	return nil
}

func (h *PrepareHandler) handlePrepare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, err := optNumber(req, "amount")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	merchantUID := optString(req, "merchant_uid")
	if merchantUID == "" {
		merchantUID = uuid.NewString()
	}

	log.Debug().Str("merchant_uid", merchantUID).Float64("amount", amount).Msg("prepare_payment invoked")

	start := time.Now()
	res, err := h.client.CreatePreparedPayment(ctx, client.PreparePaymentRequest{MerchantUID: merchantUID, Amount: amount})
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("prepare_payment failed")
		return errorResult("prepare payment", err), nil
	}
	return resultJSON(res), nil
}

func (h *PrepareHandler) handleGetPrepared(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	merchantUID, _ := req.RequireString("merchant_uid")

	log.Debug().Str("merchant_uid", merchantUID).Msg("get_prepared_payment invoked")

	start := time.Now()
	res, err := h.client.GetPreparedPayment(ctx, merchantUID)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("get_prepared_payment failed")
		return errorResult("get prepared payment", err), nil
	}
	return resultJSON(res), nil
}
