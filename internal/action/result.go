package action

// Action type tags. Each dispatched operation is identified by one of these
// for tracing and for routing its result in the state layer.
const (
	TypeFetchDeals         = "deals/fetchDeals"
	TypeFetchNearbyDeals   = "deals/fetchNearbyDeals"
	TypeFetchDealByID      = "deals/fetchDealById"
	TypeRedeemDeal         = "deals/redeemDeal"
	TypeFetchMyRedemptions = "deals/fetchMyRedemptions"
	TypeRefreshDeals       = "deals/refreshDeals"
)

// Result is the outcome of a single dispatched action. Exactly one of the
// two channels is populated: Value when Rejected is false, Reason when true.
// Reason is a ready-to-display string; no structured error survives past
// the dispatcher.
type Result[T any] struct {
	// Type is the action tag the result belongs to, e.g. "deals/fetchDeals".
	Type string
	// RequestID uniquely identifies this invocation for tracing.
	RequestID string
	// Value carries the success payload when the action fulfilled.
	Value T
	// Rejected reports whether the action failed.
	Rejected bool
	// Reason is the human-readable failure message when Rejected is true.
	Reason string
}

// Fulfilled reports whether the action succeeded.
func (r Result[T]) Fulfilled() bool {
	return !r.Rejected
}

func fulfilled[T any](typ, requestID string, value T) Result[T] {
	return Result[T]{Type: typ, RequestID: requestID, Value: value}
}

func rejected[T any](typ, requestID, reason string) Result[T] {
	return Result[T]{Type: typ, RequestID: requestID, Rejected: true, Reason: reason}
}
