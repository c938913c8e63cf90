// Package store holds the client-facing deals state and folds dispatched
// action results into it. It is the consumer side of the action layer:
// fulfilled results replace state, rejected results surface their reason
// string for display. Concurrent dispatches are allowed; the last writer
// wins and no superseding logic is applied.
package store

import (
	"context"
	"sync"

	"github.com/skylabrooks/mi-rosarita-deals/internal/action"
	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// Status is the lifecycle state of one action type within the store.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusRejected  Status = "rejected"
)

// Dispatcher defines the action operations the store drives.
type Dispatcher interface {
	FetchDeals(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal]
	FetchNearbyDeals(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal]
	FetchDealByID(ctx context.Context, id string) action.Result[model.Deal]
	RedeemDeal(ctx context.Context, dealID string) action.Result[model.RedemptionResult]
	FetchMyRedemptions(ctx context.Context) action.Result[[]model.Redemption]
	RefreshDeals(ctx context.Context) action.Result[[]model.Deal]
}

// Snapshot is a point-in-time copy of the store's state.
type Snapshot struct {
	Deals         []model.Deal
	NearbyDeals   []model.Deal
	SelectedDeal  *model.Deal
	MyRedemptions []model.Redemption
	LastError     string
}

// DealsStore is a concurrency-safe deals state container.
type DealsStore struct {
	dispatcher Dispatcher

	mu            sync.RWMutex
	deals         []model.Deal
	nearbyDeals   []model.Deal
	selectedDeal  *model.Deal
	myRedemptions []model.Redemption
	lastError     string
	statuses      map[string]Status
}

// New creates a DealsStore driving the given dispatcher.
func New(dispatcher Dispatcher) *DealsStore {
	return &DealsStore{
		dispatcher: dispatcher,
		statuses:   make(map[string]Status),
	}
}

// FetchDeals loads the deal list into the store.
func (s *DealsStore) FetchDeals(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
	s.setStatus(action.TypeFetchDeals, StatusPending)
	res := s.dispatcher.FetchDeals(ctx, q)
	s.foldDeals(&s.deals, res)
	return res
}

// FetchNearbyDeals loads the nearby deal list into the store.
func (s *DealsStore) FetchNearbyDeals(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal] {
	s.setStatus(action.TypeFetchNearbyDeals, StatusPending)
	res := s.dispatcher.FetchNearbyDeals(ctx, q)
	s.foldDeals(&s.nearbyDeals, res)
	return res
}

// FetchDealByID loads a single deal as the store's selected deal.
func (s *DealsStore) FetchDealByID(ctx context.Context, id string) action.Result[model.Deal] {
	s.setStatus(action.TypeFetchDealByID, StatusPending)
	res := s.dispatcher.FetchDealByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Rejected {
		s.lastError = res.Reason
		s.statuses[res.Type] = StatusRejected
		return res
	}
	deal := res.Value
	s.selectedDeal = &deal
	s.lastError = ""
	s.statuses[res.Type] = StatusFulfilled
	return res
}

// RedeemDeal redeems a deal and records the redemption locally on success.
func (s *DealsStore) RedeemDeal(ctx context.Context, dealID string) action.Result[model.RedemptionResult] {
	s.setStatus(action.TypeRedeemDeal, StatusPending)
	res := s.dispatcher.RedeemDeal(ctx, dealID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Rejected {
		s.lastError = res.Reason
		s.statuses[res.Type] = StatusRejected
		return res
	}
	s.myRedemptions = append(s.myRedemptions, model.Redemption{
		ID:         res.Value.ID,
		DealID:     res.Value.DealID,
		Code:       res.Value.Code,
		Points:     res.Value.Points,
		RedeemedAt: res.Value.RedeemedAt,
	})
	s.lastError = ""
	s.statuses[res.Type] = StatusFulfilled
	return res
}

// FetchMyRedemptions replaces the store's redemption list.
func (s *DealsStore) FetchMyRedemptions(ctx context.Context) action.Result[[]model.Redemption] {
	s.setStatus(action.TypeFetchMyRedemptions, StatusPending)
	res := s.dispatcher.FetchMyRedemptions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Rejected {
		s.lastError = res.Reason
		s.statuses[res.Type] = StatusRejected
		return res
	}
	s.myRedemptions = res.Value
	s.lastError = ""
	s.statuses[res.Type] = StatusFulfilled
	return res
}

// RefreshDeals replaces the store's deal list with a fresh unfiltered fetch.
func (s *DealsStore) RefreshDeals(ctx context.Context) action.Result[[]model.Deal] {
	s.setStatus(action.TypeRefreshDeals, StatusPending)
	res := s.dispatcher.RefreshDeals(ctx)
	s.foldDeals(&s.deals, res)
	return res
}

// Snapshot returns a copy of the current state.
func (s *DealsStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Deals:         append([]model.Deal(nil), s.deals...),
		NearbyDeals:   append([]model.Deal(nil), s.nearbyDeals...),
		MyRedemptions: append([]model.Redemption(nil), s.myRedemptions...),
		LastError:     s.lastError,
	}
	if s.selectedDeal != nil {
		deal := *s.selectedDeal
		snap.SelectedDeal = &deal
	}
	return snap
}

// Status returns the lifecycle state of the given action type.
func (s *DealsStore) Status(actionType string) Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.statuses[actionType]; ok {
		return st
	}
	return StatusIdle
}

func (s *DealsStore) setStatus(actionType string, st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[actionType] = st
}

func (s *DealsStore) foldDeals(target *[]model.Deal, res action.Result[[]model.Deal]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Rejected {
		s.lastError = res.Reason
		s.statuses[res.Type] = StatusRejected
		return
	}
	*target = res.Value
	s.lastError = ""
	s.statuses[res.Type] = StatusFulfilled
}
