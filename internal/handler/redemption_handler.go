package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/skylabrooks/mi-rosarita-deals/internal/action"
	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// RedemptionStoreInterface defines the redemption operations the HTTP layer exposes.
type RedemptionStoreInterface interface {
	RedeemDeal(ctx context.Context, dealID string) action.Result[model.RedemptionResult]
	FetchMyRedemptions(ctx context.Context) action.Result[[]model.Redemption]
}

// RedemptionHandler handles HTTP requests for redemption operations.
type RedemptionHandler struct {
	store RedemptionStoreInterface
}

// NewRedemptionHandler creates a new RedemptionHandler with the given store.
func NewRedemptionHandler(store RedemptionStoreInterface) *RedemptionHandler {
	return &RedemptionHandler{store: store}
}

// RedeemDeal handles POST /api/deals/:id/redeem requests.
func (h *RedemptionHandler) RedeemDeal(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: id is required",
		})
	}

	res := h.store.RedeemDeal(c.Context(), id)
	if res.Rejected {
		log.Warn().
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("deal_id", id).
			Str("reason", res.Reason).
			Msg("deal redemption rejected")
		return rejectedJSON(c, res.Reason)
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("deal_id", res.Value.DealID).
		Str("code", res.Value.Code).
		Msg("deal redeemed successfully")

	return fulfilledJSON(c, res.Value)
}

// MyRedemptions handles GET /api/redemptions/me requests.
func (h *RedemptionHandler) MyRedemptions(c *fiber.Ctx) error {
	res := h.store.FetchMyRedemptions(c.Context())
	if res.Rejected {
		return rejectedJSON(c, res.Reason)
	}
	return fulfilledJSON(c, res.Value)
}
