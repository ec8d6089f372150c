package service

import (
	"context"
	"fmt"
	"time"

	"pmhub/internal/modules/timeline/domain"
	timelineout "pmhub/internal/modules/timeline/port/out"
	"pmhub/internal/platform/clock"

	"github.com/rs/zerolog"
)

type TimelineService struct {
	clock  clock.Clock
	source timelineout.ProjectSource
	log    zerolog.Logger
}

func NewTimelineService(clock clock.Clock, source timelineout.ProjectSource, logger zerolog.Logger) *TimelineService {
	return &TimelineService{clock: clock, source: source, log: logger}
}

func (s *TimelineService) Now() time.Time {
	return s.clock.Now()
}

// Tasks loads the current snapshot and materializes it. The returned time is
// the single "now" used for the pass; callers reuse it for the today marker.
func (s *TimelineService) Tasks(ctx context.Context) ([]domain.TimelineTask, time.Time, error) {
	projects, err := s.source.ListProjects(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load projects: %w", err)
	}
	now := s.clock.Now()
	skipped := 0
	tasks := domain.Materialize(projects, now, func(skip domain.Skip) {
		skipped++
		s.log.Debug().
			Str("project", skip.ProjectID).
			Str("task", skip.Ref.Key()).
			Err(skip.Reason).
			Msg("task left off timeline")
	})
	s.log.Debug().
		Int("projects", len(projects)).
		Int("tasks", len(tasks)).
		Int("skipped", skipped).
		Msg("timeline materialized")
	return tasks, now, nil
}
