package in

import (
	"context"

	"pmhub/internal/modules/extract/dto"
)

type Usecase interface {
	ExtractImage(ctx context.Context, input dto.ExtractImageInput) (dto.ExtractImageOutput, error)
}
