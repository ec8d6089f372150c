package out

import (
	"context"

	"pmhub/internal/modules/timeline/domain"
)

// ProjectSource returns a fresh snapshot of every project on each call.
type ProjectSource interface {
	ListProjects(ctx context.Context) ([]domain.ProjectRecord, error)
}
