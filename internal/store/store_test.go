package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylabrooks/mi-rosarita-deals/internal/action"
	"github.com/skylabrooks/mi-rosarita-deals/internal/model"
)

// mockDispatcher is a mock implementation of Dispatcher.
type mockDispatcher struct {
	fetchDealsFn         func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal]
	fetchNearbyDealsFn   func(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal]
	fetchDealByIDFn      func(ctx context.Context, id string) action.Result[model.Deal]
	redeemDealFn         func(ctx context.Context, dealID string) action.Result[model.RedemptionResult]
	fetchMyRedemptionsFn func(ctx context.Context) action.Result[[]model.Redemption]
	refreshDealsFn       func(ctx context.Context) action.Result[[]model.Deal]
}

func (m *mockDispatcher) FetchDeals(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
	if m.fetchDealsFn != nil {
		return m.fetchDealsFn(ctx, q)
	}
	return action.Result[[]model.Deal]{Type: action.TypeFetchDeals}
}

func (m *mockDispatcher) FetchNearbyDeals(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal] {
	if m.fetchNearbyDealsFn != nil {
		return m.fetchNearbyDealsFn(ctx, q)
	}
	return action.Result[[]model.Deal]{Type: action.TypeFetchNearbyDeals}
}

func (m *mockDispatcher) FetchDealByID(ctx context.Context, id string) action.Result[model.Deal] {
	if m.fetchDealByIDFn != nil {
		return m.fetchDealByIDFn(ctx, id)
	}
	return action.Result[model.Deal]{Type: action.TypeFetchDealByID}
}

func (m *mockDispatcher) RedeemDeal(ctx context.Context, dealID string) action.Result[model.RedemptionResult] {
	if m.redeemDealFn != nil {
		return m.redeemDealFn(ctx, dealID)
	}
	return action.Result[model.RedemptionResult]{Type: action.TypeRedeemDeal}
}

func (m *mockDispatcher) FetchMyRedemptions(ctx context.Context) action.Result[[]model.Redemption] {
	if m.fetchMyRedemptionsFn != nil {
		return m.fetchMyRedemptionsFn(ctx)
	}
	return action.Result[[]model.Redemption]{Type: action.TypeFetchMyRedemptions}
}

func (m *mockDispatcher) RefreshDeals(ctx context.Context) action.Result[[]model.Deal] {
	if m.refreshDealsFn != nil {
		return m.refreshDealsFn(ctx)
	}
	return action.Result[[]model.Deal]{Type: action.TypeRefreshDeals}
}

func TestFetchDeals_FulfilledUpdatesState(t *testing.T) {
	deals := []model.Deal{{ID: "d1", Title: "50% off tacos"}}
	dispatcher := &mockDispatcher{
		fetchDealsFn: func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{Type: action.TypeFetchDeals, Value: deals}
		},
	}

	s := New(dispatcher)
	res := s.FetchDeals(context.Background(), nil)

	require.True(t, res.Fulfilled())
	snap := s.Snapshot()
	assert.Equal(t, deals, snap.Deals)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, StatusFulfilled, s.Status(action.TypeFetchDeals))
}

func TestFetchDeals_RejectedStoresReason(t *testing.T) {
	dispatcher := &mockDispatcher{
		fetchDealsFn: func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{
				Type:     action.TypeFetchDeals,
				Rejected: true,
				Reason:   "Failed to fetch deals",
			}
		},
	}

	s := New(dispatcher)
	res := s.FetchDeals(context.Background(), nil)

	require.True(t, res.Rejected)
	snap := s.Snapshot()
	assert.Empty(t, snap.Deals)
	assert.Equal(t, "Failed to fetch deals", snap.LastError)
	assert.Equal(t, StatusRejected, s.Status(action.TypeFetchDeals))
}

func TestFetchDeals_FulfilledClearsPreviousError(t *testing.T) {
	failing := true
	dispatcher := &mockDispatcher{
		fetchDealsFn: func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
			if failing {
				return action.Result[[]model.Deal]{Type: action.TypeFetchDeals, Rejected: true, Reason: "boom"}
			}
			return action.Result[[]model.Deal]{Type: action.TypeFetchDeals, Value: []model.Deal{{ID: "d1"}}}
		},
	}

	s := New(dispatcher)
	s.FetchDeals(context.Background(), nil)
	require.Equal(t, "boom", s.Snapshot().LastError)

	failing = false
	s.FetchDeals(context.Background(), nil)
	assert.Empty(t, s.Snapshot().LastError, "a later success clears the displayed error")
}

func TestFetchNearbyDeals_FulfilledUpdatesNearbyOnly(t *testing.T) {
	nearby := []model.Deal{{ID: "d3", Title: "Beach day pass"}}
	dispatcher := &mockDispatcher{
		fetchNearbyDealsFn: func(ctx context.Context, q model.NearbyQuery) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{Type: action.TypeFetchNearbyDeals, Value: nearby}
		},
	}

	s := New(dispatcher)
	s.FetchNearbyDeals(context.Background(), model.NearbyQuery{Latitude: 1, Longitude: 2})

	snap := s.Snapshot()
	assert.Equal(t, nearby, snap.NearbyDeals)
	assert.Empty(t, snap.Deals, "nearby fetch must not touch the main deal list")
}

func TestFetchDealByID_SetsSelectedDeal(t *testing.T) {
	dispatcher := &mockDispatcher{
		fetchDealByIDFn: func(ctx context.Context, id string) action.Result[model.Deal] {
			return action.Result[model.Deal]{
				Type:  action.TypeFetchDealByID,
				Value: model.Deal{ID: id, Title: "50% off"},
			}
		},
	}

	s := New(dispatcher)
	s.FetchDealByID(context.Background(), "d1")

	snap := s.Snapshot()
	require.NotNil(t, snap.SelectedDeal)
	assert.Equal(t, "d1", snap.SelectedDeal.ID)
}

func TestFetchDealByID_RejectedKeepsSelectedDeal(t *testing.T) {
	found := true
	dispatcher := &mockDispatcher{
		fetchDealByIDFn: func(ctx context.Context, id string) action.Result[model.Deal] {
			if found {
				return action.Result[model.Deal]{Type: action.TypeFetchDealByID, Value: model.Deal{ID: id}}
			}
			return action.Result[model.Deal]{Type: action.TypeFetchDealByID, Rejected: true, Reason: "Deal not found"}
		},
	}

	s := New(dispatcher)
	s.FetchDealByID(context.Background(), "d1")

	found = false
	s.FetchDealByID(context.Background(), "missing")

	snap := s.Snapshot()
	require.NotNil(t, snap.SelectedDeal, "a failed lookup keeps the previous selection")
	assert.Equal(t, "d1", snap.SelectedDeal.ID)
	assert.Equal(t, "Deal not found", snap.LastError)
}

func TestRedeemDeal_AppendsRedemption(t *testing.T) {
	dispatcher := &mockDispatcher{
		redeemDealFn: func(ctx context.Context, dealID string) action.Result[model.RedemptionResult] {
			return action.Result[model.RedemptionResult]{
				Type:  action.TypeRedeemDeal,
				Value: model.RedemptionResult{DealID: dealID, Code: "XYZ", Points: 50},
			}
		},
	}

	s := New(dispatcher)
	s.RedeemDeal(context.Background(), "d2")

	snap := s.Snapshot()
	require.Len(t, snap.MyRedemptions, 1)
	assert.Equal(t, "d2", snap.MyRedemptions[0].DealID)
	assert.Equal(t, "XYZ", snap.MyRedemptions[0].Code)
	assert.Equal(t, 50, snap.MyRedemptions[0].Points)
}

func TestFetchMyRedemptions_ReplacesList(t *testing.T) {
	dispatcher := &mockDispatcher{
		redeemDealFn: func(ctx context.Context, dealID string) action.Result[model.RedemptionResult] {
			return action.Result[model.RedemptionResult]{
				Type:  action.TypeRedeemDeal,
				Value: model.RedemptionResult{DealID: dealID},
			}
		},
		fetchMyRedemptionsFn: func(ctx context.Context) action.Result[[]model.Redemption] {
			return action.Result[[]model.Redemption]{
				Type:  action.TypeFetchMyRedemptions,
				Value: []model.Redemption{{ID: "r1", DealID: "d9"}},
			}
		},
	}

	s := New(dispatcher)
	s.RedeemDeal(context.Background(), "d2")
	s.FetchMyRedemptions(context.Background())

	snap := s.Snapshot()
	require.Len(t, snap.MyRedemptions, 1, "fetch replaces the local view entirely")
	assert.Equal(t, "d9", snap.MyRedemptions[0].DealID)
}

func TestRefreshDeals_ReplacesDealList(t *testing.T) {
	dispatcher := &mockDispatcher{
		fetchDealsFn: func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{
				Type:  action.TypeFetchDeals,
				Value: []model.Deal{{ID: "stale"}},
			}
		},
		refreshDealsFn: func(ctx context.Context) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{
				Type:  action.TypeRefreshDeals,
				Value: []model.Deal{{ID: "fresh"}},
			}
		},
	}

	s := New(dispatcher)
	s.FetchDeals(context.Background(), nil)
	s.RefreshDeals(context.Background())

	snap := s.Snapshot()
	require.Len(t, snap.Deals, 1)
	assert.Equal(t, "fresh", snap.Deals[0].ID)
	assert.Equal(t, StatusFulfilled, s.Status(action.TypeRefreshDeals))
}

func TestStatus_DefaultsToIdle(t *testing.T) {
	s := New(&mockDispatcher{})
	assert.Equal(t, StatusIdle, s.Status(action.TypeRedeemDeal))
}

func TestStore_ConcurrentDispatches(t *testing.T) {
	dispatcher := &mockDispatcher{
		fetchDealsFn: func(ctx context.Context, q *model.DealsQuery) action.Result[[]model.Deal] {
			return action.Result[[]model.Deal]{Type: action.TypeFetchDeals, Value: []model.Deal{{ID: "d1"}}}
		},
		redeemDealFn: func(ctx context.Context, dealID string) action.Result[model.RedemptionResult] {
			return action.Result[model.RedemptionResult]{
				Type:  action.TypeRedeemDeal,
				Value: model.RedemptionResult{DealID: dealID},
			}
		},
	}

	s := New(dispatcher)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.FetchDeals(context.Background(), nil)
		}()
		go func() {
			defer wg.Done()
			s.RedeemDeal(context.Background(), "d2")
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Len(t, snap.Deals, 1)
	assert.Len(t, snap.MyRedemptions, 50)
}
