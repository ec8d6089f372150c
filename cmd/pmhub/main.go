package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pmhub/internal/bootstrap"
	timelinedto "pmhub/internal/modules/timeline/dto"
	"pmhub/internal/platform/config"
	"pmhub/internal/ui/svg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspace string

	root := &cobra.Command{
		Use:           "pmhub",
		Short:         "Project management hub with a Gantt timeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workspace, "workspace", ".", "workspace directory holding .pmhub/")

	root.AddCommand(newTUICmd(&workspace))
	root.AddCommand(newProjectCmd(&workspace))
	root.AddCommand(newTodoCmd(&workspace))
	root.AddCommand(newMeetingCmd(&workspace))
	root.AddCommand(newImportCmd(&workspace))
	root.AddCommand(newTimelineCmd(&workspace))
	root.AddCommand(newExtractCmd(&workspace))
	return root
}

// withApp opens the workspace for one command and closes it afterwards.
func withApp(workspace string, fn func(app *bootstrap.App) error) error {
	cfg, err := config.New(workspace)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func required(flag, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", flag)
	}
	return nil
}

func newTUICmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the pmhub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(*workspace, bootstrap.RunTUI)
		},
	}
}

func newProjectCmd(workspace *string) *cobra.Command {
	project := &cobra.Command{Use: "project", Short: "Project commands"}

	var title, color, status string
	create := &cobra.Command{
		Use:   "create --title <title>",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.CreateProject(context.Background(), title, color, status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "project created: %s (%s) color=%s\n", out.Title, out.ID, out.Color)
				return nil
			})
		},
	}
	create.Flags().StringVar(&title, "title", "", "project title")
	create.Flags().StringVar(&color, "color", "", "hex color, e.g. #3b82f6 (defaults to the next palette color)")
	create.Flags().StringVar(&status, "status", "", "active|on_hold|completed|archived")

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*workspace, func(app *bootstrap.App) error {
				projects, err := app.ProjectCLI.ListProjects(context.Background())
				if err != nil {
					return err
				}
				if len(projects) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no projects")
					return nil
				}
				for _, p := range projects {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.ID, p.Status, p.Color, p.Title)
				}
				return nil
			})
		},
	}

	var projectID string
	var asJSON bool
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a project with its todos and meetings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", projectID); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				p, err := app.ProjectCLI.GetProject(context.Background(), projectID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, p)
				}
				_, _ = fmt.Fprintf(out, "id: %s\ntitle: %s\nstatus: %s\ncolor: %s\n", p.ID, p.Title, p.Status, p.Color)
				_, _ = fmt.Fprintf(out, "todos: %d\n", len(p.Todos))
				for _, t := range p.Todos {
					_, _ = fmt.Fprintf(out, "  %s\t%s\t%s..%s\tdone=%t\t%s\n", t.ID, t.Priority, t.StartDate, t.EndDate, t.Completed, t.Title)
				}
				_, _ = fmt.Fprintf(out, "meetings: %d\n", len(p.Meetings))
				for _, m := range p.Meetings {
					_, _ = fmt.Fprintf(out, "  %s\t%s\t%s\n", m.ID, m.Date, m.Title)
					for _, mt := range m.Todos {
						_, _ = fmt.Fprintf(out, "    %s\tdue=%s\t%s\tdone=%t\t%s\n", mt.ID, mt.DueDate, mt.Assignee, mt.Completed, mt.Title)
					}
				}
				return nil
			})
		},
	}
	show.Flags().StringVar(&projectID, "id", "", "project id")
	show.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	project.AddCommand(create, list, show)
	return project
}

func newTodoCmd(workspace *string) *cobra.Command {
	todo := &cobra.Command{Use: "todo", Short: "Project todo commands"}

	var projectID, title, start, due, end, priority string
	add := &cobra.Command{
		Use:   "add --project-id <id> --title <title>",
		Short: "Add a todo to a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("project-id", projectID); err != nil {
				return err
			}
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.AddTodo(context.Background(), projectID, title, start, due, end, priority)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "todo added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&projectID, "project-id", "", "project id")
	add.Flags().StringVar(&title, "title", "", "todo title")
	add.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	add.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	add.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	add.Flags().StringVar(&priority, "priority", "", "low|medium|high")

	var todoID string
	var reopen bool
	done := &cobra.Command{
		Use:   "done --id <id>",
		Short: "Mark a todo completed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("id", todoID); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.CompleteTodo(context.Background(), todoID, !reopen)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "todo %s completed=%t\n", out.ID, out.Completed)
				return nil
			})
		},
	}
	done.Flags().StringVar(&todoID, "id", "", "todo id")
	done.Flags().BoolVar(&reopen, "reopen", false, "mark the todo open again")

	todo.AddCommand(add, done)
	return todo
}

func newMeetingCmd(workspace *string) *cobra.Command {
	meeting := &cobra.Command{Use: "meeting", Short: "Meeting commands"}

	var projectID, title, date string
	add := &cobra.Command{
		Use:   "add --project-id <id> --title <title>",
		Short: "Record a meeting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("project-id", projectID); err != nil {
				return err
			}
			if err := required("title", title); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.AddMeeting(context.Background(), projectID, title, date)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "meeting added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&projectID, "project-id", "", "project id")
	add.Flags().StringVar(&title, "title", "", "meeting title")
	add.Flags().StringVar(&date, "date", "", "meeting date YYYY-MM-DD")

	var meetingID, todoTitle, due, assignee, priority string
	todo := &cobra.Command{
		Use:   "todo --meeting-id <id> --title <title> --due <date>",
		Short: "Add an action item to a meeting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := required("meeting-id", meetingID); err != nil {
				return err
			}
			if err := required("title", todoTitle); err != nil {
				return err
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.AddMeetingTodo(context.Background(), meetingID, todoTitle, due, assignee, priority)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "meeting todo added: %s (%s)\n", out.Title, out.ID)
				return nil
			})
		},
	}
	todo.Flags().StringVar(&meetingID, "meeting-id", "", "meeting id")
	todo.Flags().StringVar(&todoTitle, "title", "", "action item title")
	todo.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD")
	todo.Flags().StringVar(&assignee, "assignee", "", "assignee")
	todo.Flags().StringVar(&priority, "priority", "", "low|medium|high")

	meeting.AddCommand(add, todo)
	return meeting
}

func newImportCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import projects, todos and meetings from a YAML snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ProjectCLI.Import(context.Background(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported projects=%d todos=%d meetings=%d meeting_todos=%d\n",
					out.Projects, out.Todos, out.Meetings, out.MeetingTodos)
				return nil
			})
		},
	}
}

type chartFlags struct {
	month, project, source string
	dayWidth, leftOffset   float64
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.month, "month", "", "first month of the window, YYYY-MM (default: current month)")
	cmd.Flags().StringVar(&f.project, "project", "all", "project id or all")
	cmd.Flags().StringVar(&f.source, "source", "all", "all|project|meeting")
	cmd.Flags().Float64Var(&f.dayWidth, "day-width", 0, "pixels per day (default from config)")
	cmd.Flags().Float64Var(&f.leftOffset, "left-offset", 0, "label gutter in pixels (default from config)")
}

// chart fills unset geometry flags from config. Values given on the command
// line go to the timeline as typed, invalid ones included.
func (f chartFlags) chart(cmd *cobra.Command, app *bootstrap.App) (timelinedto.ChartOutput, error) {
	dw, left := app.Config.Timeline.DayWidth, app.Config.Timeline.LeftOffset
	if cmd.Flags().Changed("day-width") {
		dw = f.dayWidth
	}
	if cmd.Flags().Changed("left-offset") {
		left = f.leftOffset
	}
	return app.TimelineCLI.Chart(context.Background(), f.month, f.project, f.source, dw, left)
}

func newTimelineCmd(workspace *string) *cobra.Command {
	timeline := &cobra.Command{Use: "timeline", Short: "Gantt timeline commands"}

	var showFlags chartFlags
	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the two-month timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*workspace, func(app *bootstrap.App) error {
				chart, err := showFlags.chart(cmd, app)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, chart)
				}
				_, _ = fmt.Fprintf(out, "window %s..%s (%d days)  tasks %d/%d\n",
					chart.Window.First, chart.Window.Last, chart.Window.Days, chart.Counts.Visible, chart.Counts.Total)
				if chart.Today.Visible {
					_, _ = fmt.Fprintf(out, "today %s (day %d)\n", chart.Today.Date, chart.Today.Index)
				}
				for _, t := range chart.Tasks {
					_, _ = fmt.Fprintf(out, "%s\t%s..%s\t%3.0f%%\t%s\t%s\t%s\n",
						t.ID, t.Start, t.End, t.Progress, t.StatusLabel, t.ProjectTitle, t.Title)
				}
				return nil
			})
		},
	}
	showFlags.register(show)
	show.Flags().BoolVar(&asJSON, "json", false, "print the full chart as JSON")

	var svgFlags chartFlags
	var outPath string
	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "Render the timeline as an SVG document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*workspace, func(app *bootstrap.App) error {
				chart, err := svgFlags.chart(cmd, app)
				if err != nil {
					return err
				}
				doc := svg.Render(chart, svg.DefaultOptions())
				if outPath == "" || outPath == "-" {
					_, err = io.WriteString(cmd.OutOrStdout(), doc)
					return err
				}
				if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
					return fmt.Errorf("write svg: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
				return nil
			})
		},
	}
	svgFlags.register(svgCmd)
	svgCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	var windowMonth string
	window := &cobra.Command{
		Use:   "window",
		Short: "List the days of the two-month window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ref time.Time
			if windowMonth != "" {
				parsed, err := time.Parse("2006-01", windowMonth)
				if err != nil {
					return fmt.Errorf("--month must be YYYY-MM: %w", err)
				}
				ref = parsed
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				w, err := app.TimelineCLI.Window(context.Background(), ref)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, month := range w.Months {
					_, _ = fmt.Fprintf(out, "%s (%d days)\n", month.Label, len(month.Days))
					for _, d := range month.Days {
						marker := ""
						switch {
						case d.Today:
							marker = "  <- today"
						case d.Weekend:
							marker = "  weekend"
						}
						_, _ = fmt.Fprintf(out, "  %s %s%s\n", d.Date, d.Weekday, marker)
					}
				}
				return nil
			})
		},
	}
	window.Flags().StringVar(&windowMonth, "month", "", "first month, YYYY-MM (default: current month)")

	timeline.AddCommand(show, svgCmd, window)
	return timeline
}

func newExtractCmd(workspace *string) *cobra.Command {
	extract := &cobra.Command{Use: "extract", Short: "Extract tasks with an AI model"}

	var projectID string
	var minConfidence float64
	image := &cobra.Command{
		Use:   "image --project-id <id> <path>",
		Short: "Create todos from a photo or screenshot of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := required("project-id", projectID); err != nil {
				return err
			}
			var threshold *float64
			if cmd.Flags().Changed("min-confidence") {
				threshold = &minConfidence
			}
			return withApp(*workspace, func(app *bootstrap.App) error {
				out, err := app.ExtractCLI.ExtractImage(context.Background(), projectID, args[0], threshold)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, c := range out.Accepted {
					_, _ = fmt.Fprintf(w, "created %s\t%s..%s\t%.2f\t%s\n", c.TodoID, c.StartDate, c.EndDate, c.Confidence, c.Title)
				}
				for _, r := range out.Rejected {
					_, _ = fmt.Fprintf(w, "skipped\t%.2f\t%s: %s\n", r.Confidence, r.Title, r.Reason)
				}
				_, _ = fmt.Fprintf(w, "accepted=%d rejected=%d\n", len(out.Accepted), len(out.Rejected))
				return nil
			})
		},
	}
	image.Flags().StringVar(&projectID, "project-id", "", "project id")
	image.Flags().Float64Var(&minConfidence, "min-confidence", 0, "override the configured confidence threshold (0..1)")

	extract.AddCommand(image)
	return extract
}
