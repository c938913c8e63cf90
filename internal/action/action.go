// Package action normalizes backend deal operations into uniform
// fulfilled/rejected results for the state layer. Every operation makes
// exactly one backend call and never lets an error escape its boundary:
// transport failures and success=false envelopes both become a plain
// rejection reason, falling back to an operation-specific message when
// nothing better is available.
package action

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// Fallback messages used when neither the transport error nor the backend
// envelope carries a usable message.
const (
	fallbackFetchDeals         = "Failed to fetch deals"
	fallbackFetchNearbyDeals   = "Failed to fetch nearby deals"
	fallbackFetchDealByID      = "Deal not found"
	fallbackRedeemDeal         = "Failed to redeem deal"
	fallbackFetchMyRedemptions = "Failed to fetch redemptions"
	fallbackRefreshDeals       = "Failed to refresh deals"
)

// DealsClient defines the backend operations the dispatcher consumes.
// Each method returns the backend's envelope, or an error when the call
// itself failed (network, serialization, and similar transport faults).
type DealsClient interface {
	GetDeals(ctx context.Context, q *model.DealsQuery) (*model.Response[[]model.Deal], error)
	GetNearbyDeals(ctx context.Context, q model.NearbyQuery) (*model.Response[[]model.Deal], error)
	GetDealByID(ctx context.Context, id string) (*model.Response[model.Deal], error)
	RedeemDeal(ctx context.Context, id string) (*model.Response[model.RedemptionResult], error)
	GetMyRedemptions(ctx context.Context) (*model.Response[[]model.Redemption], error)
}

// Dispatcher runs deal actions against a backend client.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	client DealsClient
}

// NewDispatcher creates a Dispatcher backed by the given client.
func NewDispatcher(client DealsClient) *Dispatcher {
	return &Dispatcher{client: client}
}

// run executes one backend call and normalizes its outcome.
// transform adjusts the success payload before it is surfaced; nil means
// the payload passes through unchanged.
func run[T any](ctx context.Context, typ, fallback string,
	call func(context.Context) (*model.Response[T], error),
	transform func(T) T,
) Result[T] {
	requestID := uuid.NewString()
	log.Debug().Str("action", typ).Str("request_id", requestID).Msg("dispatching action")

	resp, err := call(ctx)
	if err != nil {
		reason := err.Error()
		if reason == "" {
			reason = fallback
		}
		log.Warn().Str("action", typ).Str("request_id", requestID).Str("reason", reason).Msg("action rejected")
		return rejected[T](typ, requestID, reason)
	}

	if resp == nil || !resp.Success {
		reason := fallback
		if resp != nil && resp.Error != nil && resp.Error.Message != "" {
			reason = resp.Error.Message
		}
		log.Warn().Str("action", typ).Str("request_id", requestID).Str("reason", reason).Msg("action rejected")
		return rejected[T](typ, requestID, reason)
	}

	value := resp.Data
	if transform != nil {
		value = transform(value)
	}
	return fulfilled(typ, requestID, value)
}

// FetchDeals lists deals matching the optional filters.
// A nil query fetches with no filters.
func (d *Dispatcher) FetchDeals(ctx context.Context, q *model.DealsQuery) Result[[]model.Deal] {
	return run(ctx, TypeFetchDeals, fallbackFetchDeals,
		func(ctx context.Context) (*model.Response[[]model.Deal], error) {
			return d.client.GetDeals(ctx, q)
		}, nil)
}

// FetchNearbyDeals lists deals around the given coordinates.
func (d *Dispatcher) FetchNearbyDeals(ctx context.Context, q model.NearbyQuery) Result[[]model.Deal] {
	return run(ctx, TypeFetchNearbyDeals, fallbackFetchNearbyDeals,
		func(ctx context.Context) (*model.Response[[]model.Deal], error) {
			return d.client.GetNearbyDeals(ctx, q)
		}, nil)
}

// FetchDealByID retrieves a single deal.
func (d *Dispatcher) FetchDealByID(ctx context.Context, id string) Result[model.Deal] {
	return run(ctx, TypeFetchDealByID, fallbackFetchDealByID,
		func(ctx context.Context) (*model.Response[model.Deal], error) {
			return d.client.GetDealByID(ctx, id)
		}, nil)
}

// RedeemDeal redeems a deal for the current user. The success payload always
// carries the redeemed deal's id, replacing any id the backend echoed back.
func (d *Dispatcher) RedeemDeal(ctx context.Context, dealID string) Result[model.RedemptionResult] {
	return run(ctx, TypeRedeemDeal, fallbackRedeemDeal,
		func(ctx context.Context) (*model.Response[model.RedemptionResult], error) {
			return d.client.RedeemDeal(ctx, dealID)
		},
		func(r model.RedemptionResult) model.RedemptionResult {
			r.DealID = dealID
			return r
		})
}

// FetchMyRedemptions lists the current user's redemptions.
func (d *Dispatcher) FetchMyRedemptions(ctx context.Context) Result[[]model.Redemption] {
	return run(ctx, TypeFetchMyRedemptions, fallbackFetchMyRedemptions,
		func(ctx context.Context) (*model.Response[[]model.Redemption], error) {
			return d.client.GetMyRedemptions(ctx)
		}, nil)
}

// RefreshDeals re-fetches the unfiltered deal list.
func (d *Dispatcher) RefreshDeals(ctx context.Context) Result[[]model.Deal] {
	return run(ctx, TypeRefreshDeals, fallbackRefreshDeals,
		func(ctx context.Context) (*model.Response[[]model.Deal], error) {
			return d.client.GetDeals(ctx, nil)
		}, nil)
}
