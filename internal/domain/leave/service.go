package leave

import "context"

type Service interface {
	// Submit validates a request against the remaining balance and creates
	// it in pending state. The balance itself is not debited until approval.
	Submit(ctx context.Context, req SubmitRequest) (*RequestResponse, error)
	// Approve moves a pending request to approved and debits the balance
	// for tracked types.
	Approve(ctx context.Context, requestID string) (*RequestResponse, error)
	// Reject moves a pending request to rejected. Balances are untouched.
	Reject(ctx context.Context, requestID string, req RejectRequest) (*RequestResponse, error)
	// Cancel moves a pending or approved request to cancelled. Cancelling
	// an approved request credits the debited days back.
	Cancel(ctx context.Context, requestID string) (*RequestResponse, error)
	// Get returns a single request visible to the caller.
	Get(ctx context.Context, requestID string) (*RequestResponse, error)
	// List returns requests in the caller's company. Regular employees only
	// see their own.
	List(ctx context.Context, filter ListRequestsFilter) ([]RequestResponse, error)
	// GetBalance returns the calling employee's balance for the current
	// year, creating it with the default allotment if absent.
	GetBalance(ctx context.Context) (*BalanceResponse, error)
}
