package service

import (
	"context"
	"fmt"
	"strings"

	"pmhub/internal/modules/extract/domain"
	extractout "pmhub/internal/modules/extract/port/out"
	apperrors "pmhub/internal/platform/errors"

	"github.com/rs/zerolog"
)

type Created struct {
	TodoID    string
	Candidate domain.Candidate
}

type Rejected struct {
	Candidate domain.Candidate
	Reason    error
}

type Result struct {
	Accepted []Created
	Rejected []Rejected
}

type ExtractService struct {
	loader        extractout.ImageLoader
	extractor     extractout.Extractor
	sink          extractout.TaskSink
	minConfidence float64
	log           zerolog.Logger
}

// NewExtractService wires the pipeline. A nil extractor leaves the service
// disabled; ExtractImage then returns apperrors.ErrExtractorDisabled.
func NewExtractService(loader extractout.ImageLoader, extractor extractout.Extractor, sink extractout.TaskSink, minConfidence float64, logger zerolog.Logger) *ExtractService {
	return &ExtractService{
		loader:        loader,
		extractor:     extractor,
		sink:          sink,
		minConfidence: minConfidence,
		log:           logger,
	}
}

func (s *ExtractService) MinConfidence() float64 {
	return s.minConfidence
}

func (s *ExtractService) ExtractImage(ctx context.Context, projectID, path string, minConfidence float64) (Result, error) {
	if s.extractor == nil {
		return Result{}, apperrors.ErrExtractorDisabled
	}
	if strings.TrimSpace(projectID) == "" {
		return Result{}, fmt.Errorf("project id is required: %w", apperrors.ErrInvalidInput)
	}
	if minConfidence < 0 || minConfidence > 1 {
		return Result{}, fmt.Errorf("min confidence must be within 0..1: %w", apperrors.ErrInvalidInput)
	}
	image, err := s.loader.Load(ctx, path)
	if err != nil {
		return Result{}, err
	}
	if err := image.Validate(); err != nil {
		return Result{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}

	candidates, err := s.extractor.Extract(ctx, image)
	if err != nil {
		return Result{}, fmt.Errorf("extract tasks: %w", err)
	}
	s.log.Info().Str("image", image.Name).Int("candidates", len(candidates)).Msg("tasks extracted")

	result := Result{}
	for _, candidate := range candidates {
		candidate = candidate.Normalize()
		if err := candidate.Accept(minConfidence); err != nil {
			s.log.Debug().Str("title", candidate.Title).Err(err).Msg("candidate rejected")
			result.Rejected = append(result.Rejected, Rejected{Candidate: candidate, Reason: err})
			continue
		}
		todoID, err := s.sink.CreateTask(ctx, projectID, candidate)
		if err != nil {
			return result, fmt.Errorf("create task %q: %w", candidate.Title, err)
		}
		result.Accepted = append(result.Accepted, Created{TodoID: todoID, Candidate: candidate})
	}
	return result, nil
}
