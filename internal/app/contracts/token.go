package contracts

import "context"

type TokenManager interface {
	Issue(ctx context.Context, subjectID string) (string, error)
	Verify(ctx context.Context, token string) (string, error)
}
