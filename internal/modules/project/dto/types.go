package dto

import "time"

type CreateProjectInput struct {
	Title  string
	Color  string
	Status string
}

type ProjectOutput struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

type ProjectDetailOutput struct {
	ProjectOutput
	Todos    []TodoOutput    `json:"todos"`
	Meetings []MeetingOutput `json:"meetings"`
}

type CreateTodoInput struct {
	ProjectID string
	Title     string
	StartDate string
	DueDate   string
	EndDate   string
	Priority  string
}

type CompleteTodoInput struct {
	ID        string
	Completed bool
}

type TodoOutput struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	StartDate string    `json:"start_date,omitempty"`
	DueDate   string    `json:"due_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	Priority  string    `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMeetingInput struct {
	ProjectID string
	Title     string
	Date      string
}

type MeetingOutput struct {
	ID        string              `json:"id"`
	ProjectID string              `json:"project_id"`
	Title     string              `json:"title"`
	Date      string              `json:"date,omitempty"`
	Todos     []MeetingTodoOutput `json:"todos"`
}

type CreateMeetingTodoInput struct {
	MeetingID string
	Title     string
	DueDate   string
	Assignee  string
	Priority  string
}

type MeetingTodoOutput struct {
	ID        string `json:"id"`
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	DueDate   string `json:"due_date,omitempty"`
	Assignee  string `json:"assignee,omitempty"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
}

type SnapshotOutput struct {
	Projects []ProjectDetailOutput `json:"projects"`
}

type ImportInput struct {
	Path string
}

type ImportOutput struct {
	Projects     int `json:"projects"`
	Todos        int `json:"todos"`
	Meetings     int `json:"meetings"`
	MeetingTodos int `json:"meeting_todos"`
}
