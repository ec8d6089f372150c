package out

import (
	"context"

	"pmhub/internal/modules/extract/domain"
)

type ImageLoader interface {
	Load(ctx context.Context, path string) (domain.Image, error)
}

// Extractor proposes tasks found in an image.
type Extractor interface {
	Extract(ctx context.Context, image domain.Image) ([]domain.Candidate, error)
}

// TaskSink turns an accepted candidate into a stored todo and returns its id.
type TaskSink interface {
	CreateTask(ctx context.Context, projectID string, candidate domain.Candidate) (string, error)
}
