package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopTransactionRunner(t *testing.T) {
	runner := NewNoopTransactionRunner()

	t.Run("Not Transactional", func(t *testing.T) {
		assert.False(t, runner.IsTransactional())
	})

	t.Run("Runs Function With Same Context", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "value")

		var seen interface{}
		err := runner.WithinTransaction(ctx, func(ctx context.Context) error {
			seen = ctx.Value(key{})
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, "value", seen)
	})

	t.Run("Returns Function Error", func(t *testing.T) {
		boom := errors.New("boom")
		err := runner.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})
}
