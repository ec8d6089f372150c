package tx

import "context"

// Manager runs fn inside one transactional boundary. Stores that take part
// read the transaction from the context passed to fn.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
