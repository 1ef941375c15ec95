package contracts

import "context"

type TransactionRunner interface {
	// WithinTransaction runs fn atomically when the runner is transactional.
	// Repositories called inside fn must use the ctx it receives.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	IsTransactional() bool
}
