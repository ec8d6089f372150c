package usecase

import (
	"context"

	"pmhub/internal/modules/extract/dto"
	extractin "pmhub/internal/modules/extract/port/in"
	"pmhub/internal/modules/extract/service"
)

type Interactor struct {
	svc *service.ExtractService
}

func NewInteractor(svc *service.ExtractService) extractin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ExtractImage(ctx context.Context, input dto.ExtractImageInput) (dto.ExtractImageOutput, error) {
	minConfidence := i.svc.MinConfidence()
	if input.MinConfidence != nil {
		minConfidence = *input.MinConfidence
	}
	result, err := i.svc.ExtractImage(ctx, input.ProjectID, input.Path, minConfidence)
	if err != nil {
		return dto.ExtractImageOutput{}, err
	}
	out := dto.ExtractImageOutput{
		ProjectID: input.ProjectID,
		Accepted:  make([]dto.CreatedTaskOutput, 0, len(result.Accepted)),
		Rejected:  make([]dto.RejectedCandidateOutput, 0, len(result.Rejected)),
	}
	for _, created := range result.Accepted {
		out.Accepted = append(out.Accepted, dto.CreatedTaskOutput{
			TodoID:     created.TodoID,
			Title:      created.Candidate.Title,
			StartDate:  created.Candidate.StartDate,
			EndDate:    created.Candidate.EndDate,
			Priority:   created.Candidate.Priority,
			Confidence: created.Candidate.Confidence,
		})
	}
	for _, rejected := range result.Rejected {
		out.Rejected = append(out.Rejected, dto.RejectedCandidateOutput{
			Title:      rejected.Candidate.Title,
			Reason:     rejected.Reason.Error(),
			Confidence: rejected.Candidate.Confidence,
		})
	}
	return out, nil
}
