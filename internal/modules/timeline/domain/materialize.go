package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Skip describes a record left off the timeline.
type Skip struct {
	ProjectID string
	Ref       TaskRef
	Reason    error
}

// SkipFunc receives records that could not be placed; it may be nil.
type SkipFunc func(Skip)

// Materialize flattens project todos and meeting action items into timeline
// tasks. now is read once for the whole pass and its location is the local
// zone for every date. Records without a usable end date are skipped.
func Materialize(projects []ProjectRecord, now time.Time, onSkip SkipFunc) []TimelineTask {
	loc := now.Location()
	today := StartOfLocalDay(now)
	skip := func(projectID string, ref TaskRef, reason error) {
		if onSkip != nil {
			onSkip(Skip{ProjectID: projectID, Ref: ref, Reason: reason})
		}
	}

	out := make([]TimelineTask, 0)
	for _, project := range projects {
		for _, todo := range project.Todos {
			ref := TodoRef{ID: todo.ID}
			start, end, err := resolveTodoSpan(todo, loc)
			if err != nil {
				skip(project.ID, ref, err)
				continue
			}
			out = append(out, newTask(project, ref, todo.Title, start, end, todo.Priority, todo.Completed, today))
		}
		for _, meeting := range project.Meetings {
			for _, item := range meeting.Todos {
				ref := MeetingTodoRef{MeetingID: meeting.ID, ID: item.ID}
				end, err := ParseLocalDay(item.DueDate, loc)
				if err != nil {
					skip(project.ID, ref, fmt.Errorf("due date: %w", err))
					continue
				}
				start, err := ParseLocalDay(meeting.Date, loc)
				if err != nil {
					start = end
				}
				if start.After(end) {
					start = end
				}
				out = append(out, newTask(project, ref, meetingTitle(item), start, end, item.Priority, item.Completed, today))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Start.Compare(out[j].Start); c != 0 {
			return c < 0
		}
		if c := out[i].End.Compare(out[j].End); c != 0 {
			return c < 0
		}
		return out[i].ID() < out[j].ID()
	})
	return out
}

func resolveTodoSpan(todo TodoRecord, loc *time.Location) (LocalDay, LocalDay, error) {
	rawEnd := todo.EndDate
	if strings.TrimSpace(rawEnd) == "" {
		rawEnd = todo.DueDate
	}
	end, err := ParseLocalDay(rawEnd, loc)
	if err != nil {
		return LocalDay{}, LocalDay{}, fmt.Errorf("end date: %w", err)
	}
	start, err := ParseLocalDay(todo.StartDate, loc)
	if err != nil {
		start, err = ParseLocalDay(todo.CreatedAt, loc)
		if err != nil {
			start = end
		}
	}
	if start.After(end) {
		start = end
	}
	return start, end, nil
}

func meetingTitle(item MeetingTodoRecord) string {
	assignee := strings.TrimSpace(item.Assignee)
	if assignee == "" {
		return item.Title
	}
	return fmt.Sprintf("%s (%s)", item.Title, assignee)
}

func newTask(project ProjectRecord, ref TaskRef, title string, start, end LocalDay, priority string, completed bool, today LocalDay) TimelineTask {
	return TimelineTask{
		Ref:          ref,
		Title:        title,
		Start:        start,
		End:          end,
		Progress:     DeriveProgress(completed, start, end, today),
		ProjectID:    project.ID,
		ProjectTitle: project.Title,
		ProjectColor: project.Color,
		Priority:     ParsePriority(priority),
		Completed:    completed,
		Status:       DeriveStatus(completed, start, end, today),
	}
}
