package views

import (
	"strings"
	"time"

	"terralot/internal/model"
	"terralot/internal/query"
)

// TaskSort selects the ordering of the task list screen.
type TaskSort string

const (
	TaskSortDueDate  TaskSort = "dueDate"
	TaskSortPriority TaskSort = "priority"
	TaskSortStatus   TaskSort = "status"
	TaskSortCategory TaskSort = "category"
)

// TaskListFilter narrows the task list. Empty fields match everything.
type TaskListFilter struct {
	Search   string
	Status   model.TaskStatus
	Priority model.Priority
	Category string
	LotID    string
}

func (f TaskListFilter) matches(task model.Task) bool {
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(task.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Status != "" && task.Status != f.Status {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.Category != "" && task.Category != f.Category {
		return false
	}
	if f.LotID != "" && task.LotID != f.LotID {
		return false
	}
	return true
}

// TaskList produces the exact sequence the task list screen renders:
// filtered, then stably sorted by the requested key. Domain orderings
// go through the rank tables, never lexical comparison.
func TaskList(tasks []model.Task, filter TaskListFilter, sortBy TaskSort) []model.Task {
	filtered := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.matches(task) {
			filtered = append(filtered, task)
		}
	}
	return sortTasksBy(filtered, sortBy)
}

func sortTasksBy(tasks []model.Task, sortBy TaskSort) []model.Task {
	var cmp query.Comparator[model.Task]
	switch sortBy {
	case TaskSortPriority:
		cmp = query.ByRank(query.PriorityRank, func(t model.Task) string { return string(t.Priority) })
	case TaskSortStatus:
		cmp = query.ByRank(query.StatusRank, func(t model.Task) string { return string(t.Status) })
	case TaskSortCategory:
		cmp = query.ByRank(query.CategoryRank, func(t model.Task) string { return t.Category })
	default:
		cmp = query.ByTime(func(t model.Task) time.Time { return t.DueDate }, query.Ascending)
	}
	return query.SortStable(tasks, cmp)
}

// InfrastructureFilter narrows the infrastructure list.
type InfrastructureFilter struct {
	LotID  string
	Type   string
	Status string
}

func (f InfrastructureFilter) matches(inf model.Infrastructure) bool {
	if f.LotID != "" && inf.LotID != f.LotID {
		return false
	}
	if f.Type != "" && inf.Type != f.Type {
		return false
	}
	if f.Status != "" && inf.Status != f.Status {
		return false
	}
	return true
}

// InfrastructureList produces the maintenance screen's sequence: worst
// condition first, then nearest inspection, ties in input order.
func InfrastructureList(items []model.Infrastructure, filter InfrastructureFilter) []model.Infrastructure {
	filtered := make([]model.Infrastructure, 0, len(items))
	for _, inf := range items {
		if filter.matches(inf) {
			filtered = append(filtered, inf)
		}
	}
	cmp := query.Chain(
		query.ByRank(query.ConditionRank, func(i model.Infrastructure) string { return i.Status }),
		query.ByTime(func(i model.Infrastructure) time.Time { return i.NextInspection }, query.Ascending),
	)
	return query.SortStable(filtered, cmp)
}
