package domain

import (
	"fmt"
	"strings"
)

type Source string

const (
	SourceProject Source = "project"
	SourceMeeting Source = "meeting"
)

// TaskRef identifies the record a timeline task was built from.
// Implementations are TodoRef and MeetingTodoRef.
type TaskRef interface {
	Source() Source
	Key() string
	isTaskRef()
}

type TodoRef struct {
	ID string
}

func (TodoRef) Source() Source { return SourceProject }
func (r TodoRef) Key() string { return "todo/" + r.ID }
func (TodoRef) isTaskRef() {}
func (r TodoRef) String() string { return r.Key() }

type MeetingTodoRef struct {
	MeetingID string
	ID        string
}

func (MeetingTodoRef) Source() Source { return SourceMeeting }
func (r MeetingTodoRef) Key() string { return "meeting/" + r.MeetingID + "/todo/" + r.ID }
func (MeetingTodoRef) isTaskRef() {}
func (r MeetingTodoRef) String() string { return r.Key() }

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps free-form input onto the three levels; anything
// unrecognized is medium.
func ParsePriority(raw string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusOnHold     Status = "on_hold"
)

func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusComplete:
		return "Complete"
	case StatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

// TimelineTask is one bar on the chart. It is rebuilt on every pass and
// never written back.
type TimelineTask struct {
	Ref          TaskRef
	Title        string
	Start        LocalDay
	End          LocalDay
	Progress     float64
	ProjectID    string
	ProjectTitle string
	ProjectColor string
	Priority     Priority
	Completed    bool
	Status       Status
}

func (t TimelineTask) ID() string {
	if t.Ref == nil {
		return ""
	}
	return t.Ref.Key()
}

func (t TimelineTask) Source() Source {
	if t.Ref == nil {
		return ""
	}
	return t.Ref.Source()
}

func (t TimelineTask) String() string {
	return fmt.Sprintf("%s %q %s..%s %s %.0f%%", t.ID(), t.Title, t.Start, t.End, t.Status, t.Progress)
}

// Records below are the snapshot shape the engine reads. Dates are kept as
// the raw strings the data store holds.

type ProjectRecord struct {
	ID       string
	Title    string
	Color    string
	Status   string
	Todos    []TodoRecord
	Meetings []MeetingRecord
}

type TodoRecord struct {
	ID        string
	Title     string
	StartDate string
	DueDate   string
	EndDate   string
	CreatedAt string
	Priority  string
	Completed bool
}

type MeetingRecord struct {
	ID    string
	Title string
	Date  string
	Todos []MeetingTodoRecord
}

type MeetingTodoRecord struct {
	ID        string
	Title     string
	DueDate   string
	Assignee  string
	Priority  string
	Completed bool
}
