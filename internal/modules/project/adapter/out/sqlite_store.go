package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pmhub/internal/modules/project/domain"
	apperrors "pmhub/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

type SQLiteProjectStore struct {
	db *sql.DB
}

type txKey struct{}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewSQLiteProjectStore(dbPath string) (*SQLiteProjectStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	store := &SQLiteProjectStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteProjectStore) Close() error {
	return s.db.Close()
}

// Within runs fn in one sqlite transaction. Store calls made with the ctx
// handed to fn join it; fn's error rolls everything back. Nested calls
// reuse the outer transaction.
func (s *SQLiteProjectStore) Within(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// conn returns the transaction carried by ctx, or the pool. With a single
// pooled connection, calls inside Within must go through the transaction.
func (s *SQLiteProjectStore) conn(ctx context.Context) execer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *SQLiteProjectStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS projects (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  color TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS todos (
  id TEXT PRIMARY KEY,
  project_id TEXT NOT NULL,
  title TEXT NOT NULL,
  start_date TEXT NOT NULL DEFAULT '',
  due_date TEXT NOT NULL DEFAULT '',
  end_date TEXT NOT NULL DEFAULT '',
  priority TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS todos_project_idx ON todos(project_id);
CREATE TABLE IF NOT EXISTS meetings (
  id TEXT PRIMARY KEY,
  project_id TEXT NOT NULL,
  title TEXT NOT NULL,
  date TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS meetings_project_idx ON meetings(project_id);
CREATE TABLE IF NOT EXISTS meeting_todos (
  id TEXT PRIMARY KEY,
  meeting_id TEXT NOT NULL,
  title TEXT NOT NULL,
  due_date TEXT NOT NULL DEFAULT '',
  assignee TEXT NOT NULL DEFAULT '',
  priority TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS meeting_todos_meeting_idx ON meeting_todos(meeting_id);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create project tables: %w", err)
	}
	return nil
}

func (s *SQLiteProjectStore) SaveProject(ctx context.Context, project domain.Project) error {
	const stmt = `
INSERT INTO projects (id, title, color, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  color=excluded.color,
  status=excluded.status,
  updated_at=excluded.updated_at;
`
	_, err := s.conn(ctx).ExecContext(ctx, stmt,
		project.ID,
		project.Title,
		project.Color,
		string(project.Status),
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

func (s *SQLiteProjectStore) FindProject(ctx context.Context, id string) (domain.Project, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT id, title, color, status, created_at, updated_at FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Project{}, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

func (s *SQLiteProjectStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT id, title, color, status, created_at, updated_at FROM projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	out := make([]domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

func (s *SQLiteProjectStore) SaveTodo(ctx context.Context, todo domain.Todo) error {
	const stmt = `
INSERT INTO todos (id, project_id, title, start_date, due_date, end_date, priority, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  project_id=excluded.project_id,
  title=excluded.title,
  start_date=excluded.start_date,
  due_date=excluded.due_date,
  end_date=excluded.end_date,
  priority=excluded.priority,
  completed=excluded.completed,
  updated_at=excluded.updated_at;
`
	_, err := s.conn(ctx).ExecContext(ctx, stmt,
		todo.ID,
		todo.ProjectID,
		todo.Title,
		todo.StartDate,
		todo.DueDate,
		todo.EndDate,
		string(todo.Priority),
		todo.Completed,
		formatTime(todo.CreatedAt),
		formatTime(todo.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert todo: %w", err)
	}
	return nil
}

func (s *SQLiteProjectStore) FindTodo(ctx context.Context, id string) (domain.Todo, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
SELECT id, project_id, title, start_date, due_date, end_date, priority, completed, created_at, updated_at
FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, fmt.Errorf("todo %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Todo{}, fmt.Errorf("find todo: %w", err)
	}
	return todo, nil
}

func (s *SQLiteProjectStore) SetTodoCompleted(ctx context.Context, id string, completed bool, updatedAt time.Time) error {
	res, err := s.conn(ctx).ExecContext(ctx, `UPDATE todos SET completed = ?, updated_at = ? WHERE id = ?`, completed, formatTime(updatedAt), id)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteProjectStore) SaveMeeting(ctx context.Context, meeting domain.Meeting) error {
	const stmt = `
INSERT INTO meetings (id, project_id, title, date, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  project_id=excluded.project_id,
  title=excluded.title,
  date=excluded.date;
`
	_, err := s.conn(ctx).ExecContext(ctx, stmt,
		meeting.ID,
		meeting.ProjectID,
		meeting.Title,
		meeting.Date,
		formatTime(meeting.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert meeting: %w", err)
	}
	return nil
}

func (s *SQLiteProjectStore) FindMeeting(ctx context.Context, id string) (domain.Meeting, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `SELECT id, project_id, title, date, created_at FROM meetings WHERE id = ?`, id)
	meeting, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Meeting{}, fmt.Errorf("meeting %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("find meeting: %w", err)
	}
	return meeting, nil
}

func (s *SQLiteProjectStore) SaveMeetingTodo(ctx context.Context, todo domain.MeetingTodo) error {
	const stmt = `
INSERT INTO meeting_todos (id, meeting_id, title, due_date, assignee, priority, completed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  meeting_id=excluded.meeting_id,
  title=excluded.title,
  due_date=excluded.due_date,
  assignee=excluded.assignee,
  priority=excluded.priority,
  completed=excluded.completed;
`
	_, err := s.conn(ctx).ExecContext(ctx, stmt,
		todo.ID,
		todo.MeetingID,
		todo.Title,
		todo.DueDate,
		todo.Assignee,
		string(todo.Priority),
		todo.Completed,
		formatTime(todo.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert meeting todo: %w", err)
	}
	return nil
}

// LoadTree reads every project with its todos, meetings and meeting todos.
// Records whose parent no longer exists are left out.
func (s *SQLiteProjectStore) LoadTree(ctx context.Context) ([]domain.ProjectTree, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	trees := make([]domain.ProjectTree, len(projects))
	byProject := make(map[string]*domain.ProjectTree, len(projects))
	for i, project := range projects {
		trees[i] = domain.ProjectTree{Project: project}
		byProject[project.ID] = &trees[i]
	}

	todos, err := s.queryTodos(ctx)
	if err != nil {
		return nil, err
	}
	for _, todo := range todos {
		if tree, ok := byProject[todo.ProjectID]; ok {
			tree.Todos = append(tree.Todos, todo)
		}
	}

	meetings, err := s.queryMeetings(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.queryMeetingTodos(ctx)
	if err != nil {
		return nil, err
	}
	byMeeting := map[string][]domain.MeetingTodo{}
	for _, item := range items {
		byMeeting[item.MeetingID] = append(byMeeting[item.MeetingID], item)
	}
	for _, meeting := range meetings {
		if tree, ok := byProject[meeting.ProjectID]; ok {
			tree.Meetings = append(tree.Meetings, domain.MeetingTree{Meeting: meeting, Todos: byMeeting[meeting.ID]})
		}
	}
	return trees, nil
}

func (s *SQLiteProjectStore) queryTodos(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
SELECT id, project_id, title, start_date, due_date, end_date, priority, completed, created_at, updated_at
FROM todos ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()
	var out []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func (s *SQLiteProjectStore) queryMeetings(ctx context.Context) ([]domain.Meeting, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT id, project_id, title, date, created_at FROM meetings ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()
	var out []domain.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		out = append(out, meeting)
	}
	return out, rows.Err()
}

func (s *SQLiteProjectStore) queryMeetingTodos(ctx context.Context) ([]domain.MeetingTodo, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `
SELECT id, meeting_id, title, due_date, assignee, priority, completed, created_at
FROM meeting_todos ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list meeting todos: %w", err)
	}
	defer rows.Close()
	var out []domain.MeetingTodo
	for rows.Next() {
		var (
			item      domain.MeetingTodo
			priority  string
			createdAt string
		)
		if err := rows.Scan(&item.ID, &item.MeetingID, &item.Title, &item.DueDate, &item.Assignee, &priority, &item.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan meeting todo: %w", err)
		}
		item.Priority = domain.Priority(priority)
		item.CreatedAt = parseTime(createdAt)
		out = append(out, item)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (domain.Project, error) {
	var (
		project              domain.Project
		status               string
		createdAt, updatedAt string
	)
	if err := row.Scan(&project.ID, &project.Title, &project.Color, &status, &createdAt, &updatedAt); err != nil {
		return domain.Project{}, err
	}
	project.Status = domain.ProjectStatus(status)
	project.CreatedAt = parseTime(createdAt)
	project.UpdatedAt = parseTime(updatedAt)
	return project, nil
}

func scanTodo(row scanner) (domain.Todo, error) {
	var (
		todo                 domain.Todo
		priority             string
		createdAt, updatedAt string
	)
	if err := row.Scan(&todo.ID, &todo.ProjectID, &todo.Title, &todo.StartDate, &todo.DueDate, &todo.EndDate, &priority, &todo.Completed, &createdAt, &updatedAt); err != nil {
		return domain.Todo{}, err
	}
	todo.Priority = domain.Priority(priority)
	todo.CreatedAt = parseTime(createdAt)
	todo.UpdatedAt = parseTime(updatedAt)
	return todo, nil
}

func scanMeeting(row scanner) (domain.Meeting, error) {
	var (
		meeting   domain.Meeting
		createdAt string
	)
	if err := row.Scan(&meeting.ID, &meeting.ProjectID, &meeting.Title, &meeting.Date, &createdAt); err != nil {
		return domain.Meeting{}, err
	}
	meeting.CreatedAt = parseTime(createdAt)
	return meeting, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
