package in

import (
	"context"

	"pmhub/internal/modules/extract/dto"
	extractin "pmhub/internal/modules/extract/port/in"
)

type CLIHandler struct {
	usecase extractin.Usecase
}

func NewCLIHandler(usecase extractin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// ExtractImage passes minConfidence through only when it is non-nil.
func (h CLIHandler) ExtractImage(ctx context.Context, projectID, path string, minConfidence *float64) (dto.ExtractImageOutput, error) {
	return h.usecase.ExtractImage(ctx, dto.ExtractImageInput{ProjectID: projectID, Path: path, MinConfidence: minConfidence})
}
