package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/skylabrooks/mi-rosarita-deals/internal/action"
	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// DealsStoreInterface defines the deal operations the HTTP layer exposes.
type DealsStoreInterface interface {
	FetchDeals(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal]
	FetchNearbyDeals(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal]
	FetchDealByID(ctx context.Context, id string) action.Result[model.Deal]
	RefreshDeals(ctx context.Context) action.Result[[]model.Deal]
}

// DealHandler handles HTTP requests for deal operations.
type DealHandler struct {
	store     DealsStoreInterface
	validator *validator.Validate
}

// NewDealHandler creates a new DealHandler with the given store and validator.
func NewDealHandler(store DealsStoreInterface, v *validator.Validate) *DealHandler {
	return &DealHandler{store: store, validator: v}
}

// fulfilledJSON writes a 200 response carrying the action's success payload.
func fulfilledJSON(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// rejectedJSON writes a 502 response carrying the normalized rejection
// reason. The reason string is surfaced verbatim for user display.
func rejectedJSON(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"message": reason},
	})
}

// formatDealsValidationError converts validator errors on the deal listing
// query into descriptive messages.
func formatDealsValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "Category", "Location":
				name := "category"
				if field == "Location" {
					name = "location"
				}
				if tag == "notblank" {
					return "invalid request: " + name + " cannot be whitespace only"
				}
				if tag == "max" {
					return "invalid request: " + name + " exceeds maximum length of 255"
				}
				return "invalid request: " + name + " is invalid"
			case "Limit":
				return "invalid request: limit must be between 1 and 100"
			case "Offset":
				return "invalid request: offset cannot be negative"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// formatNearbyValidationError converts validator errors on the nearby query
// into descriptive messages.
func formatNearbyValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "Latitude":
				if tag == "required" {
					return "invalid request: latitude is required"
				}
				return "invalid request: latitude must be between -90 and 90"
			case "Longitude":
				if tag == "required" {
					return "invalid request: longitude is required"
				}
				return "invalid request: longitude must be between -180 and 180"
			case "Radius":
				return "invalid request: radius cannot be negative"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// ListDeals handles GET /api/deals requests.
func (h *DealHandler) ListDeals(c *fiber.Ctx) error {
	var req model.ListDealsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatDealsValidationError(err)})
	}

	// An unfiltered request dispatches with no query at all.
	var q *model.DealsQuery
	if req != (model.ListDealsRequest{}) {
		q = &model.DealsQuery{
			Category: req.Category,
			Location: req.Location,
			Limit:    req.Limit,
			Offset:   req.Offset,
		}
	}

	res := h.store.FetchDeals(c.Context(), q)
	if res.Rejected {
		return rejectedJSON(c, res.Reason)
	}
	return fulfilledJSON(c, res.Value)
}

// NearbyDeals handles GET /api/deals/nearby requests.
func (h *DealHandler) NearbyDeals(c *fiber.Ctx) error {
	var req model.NearbyDealsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatNearbyValidationError(err)})
	}

	q := model.NearbyQuery{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}
	if req.Radius != nil {
		q.Radius = *req.Radius
	}

	res := h.store.FetchNearbyDeals(c.Context(), q)
	if res.Rejected {
		return rejectedJSON(c, res.Reason)
	}
	return fulfilledJSON(c, res.Value)
}

// GetDeal handles GET /api/deals/:id requests.
func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: id is required",
		})
	}

	res := h.store.FetchDealByID(c.Context(), id)
	if res.Rejected {
		return rejectedJSON(c, res.Reason)
	}

	log.Info().
		Str("deal_id", res.Value.ID).
		Str("title", res.Value.Title).
		Msg("deal retrieved")

	return fulfilledJSON(c, res.Value)
}

// RefreshDeals handles POST /api/deals/refresh requests.
func (h *DealHandler) RefreshDeals(c *fiber.Ctx) error {
	res := h.store.RefreshDeals(c.Context())
	if res.Rejected {
		return rejectedJSON(c, res.Reason)
	}
	return fulfilledJSON(c, res.Value)
}
