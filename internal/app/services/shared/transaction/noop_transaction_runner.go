package transaction

import (
	"clinic-service/internal/app/contracts"
	"context"
)

// noopTransactionRunner runs fn directly. Callers compensate on failure.
type noopTransactionRunner struct{}

func NewNoopTransactionRunner() contracts.TransactionRunner {
	return noopTransactionRunner{}
}

func (noopTransactionRunner) IsTransactional() bool {
	return false
}

func (noopTransactionRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
