package memory

import (
	"context"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/store"
)

func init() {
	store.RegisterAdapter(adapter{})
}

type adapter struct{}

func (adapter) Name() string { return "memory" }

func (adapter) Open(ctx context.Context, _ store.Config) (repository.Store, error) {
	return New(), nil
}
