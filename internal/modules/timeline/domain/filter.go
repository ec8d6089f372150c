package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectFilter selects one project id; empty or "all" selects every project.
type ProjectFilter string

const AllProjects ProjectFilter = "all"

func (f ProjectFilter) Matches(projectID string) bool {
	return f == "" || f == AllProjects || string(f) == projectID
}

type SourceFilter string

const (
	SourceFilterAll     SourceFilter = "all"
	SourceFilterProject SourceFilter = "project"
	SourceFilterMeeting SourceFilter = "meeting"
)

func ParseSourceFilter(raw string) (SourceFilter, error) {
	switch f := SourceFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", SourceFilterAll:
		return SourceFilterAll, nil
	case SourceFilterProject, SourceFilterMeeting:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported source filter %q", raw)
	}
}

func (f SourceFilter) Matches(s Source) bool {
	switch f {
	case "", SourceFilterAll:
		return true
	default:
		return string(f) == string(s)
	}
}

// FilterTasks keeps tasks matching both filters, preserving order.
func FilterTasks(tasks []TimelineTask, project ProjectFilter, source SourceFilter) []TimelineTask {
	out := make([]TimelineTask, 0, len(tasks))
	for _, task := range tasks {
		if project.Matches(task.ProjectID) && source.Matches(task.Source()) {
			out = append(out, task)
		}
	}
	return out
}

type ProjectCount struct {
	ProjectID    string
	ProjectTitle string
	ProjectColor string
	Count        int
}

type Counts struct {
	Total     int
	Visible   int
	BySource  map[Source]int
	ByProject []ProjectCount
}

// CountTasks builds badge counts. Each dimension is counted under the other
// dimension's filter, so a source badge reflects the chosen project and a
// project badge reflects the chosen source.
func CountTasks(tasks []TimelineTask, project ProjectFilter, source SourceFilter) Counts {
	counts := Counts{
		Total:    len(tasks),
		BySource: map[Source]int{SourceProject: 0, SourceMeeting: 0},
	}
	byProject := map[string]*ProjectCount{}
	for _, task := range tasks {
		inProject := project.Matches(task.ProjectID)
		inSource := source.Matches(task.Source())
		if inProject && inSource {
			counts.Visible++
		}
		if inProject {
			counts.BySource[task.Source()]++
		}
		if inSource {
			pc, ok := byProject[task.ProjectID]
			if !ok {
				pc = &ProjectCount{ProjectID: task.ProjectID, ProjectTitle: task.ProjectTitle, ProjectColor: task.ProjectColor}
				byProject[task.ProjectID] = pc
			}
			pc.Count++
		}
	}
	counts.ByProject = make([]ProjectCount, 0, len(byProject))
	for _, pc := range byProject {
		counts.ByProject = append(counts.ByProject, *pc)
	}
	sort.Slice(counts.ByProject, func(i, j int) bool {
		a, b := counts.ByProject[i], counts.ByProject[j]
		if a.ProjectTitle != b.ProjectTitle {
			return a.ProjectTitle < b.ProjectTitle
		}
		return a.ProjectID < b.ProjectID
	})
	return counts
}
