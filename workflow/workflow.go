// Package workflow implements the task and project lifecycle rules applied before records are
// written to the store.
package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uhppoted/uhppote-core/types"

	"github.com/uhppoted/uhppoted-app-tracker/store"
)

var ErrOpenTasks = errors.New("project has tasks that are not completed")

// Task statuses that block completing the project the task belongs to.
var open = map[string]bool{
	store.StatusNotStarted: true,
	store.StatusPlanned:    true,
	store.StatusInProgress: true,
	store.StatusBlocked:    true,
}

type Summary struct {
	Total      int
	Completed  int
	Incomplete int
	Overdue    int
}

// Today returns the current local calendar date.
func Today() *types.Date {
	now := time.Now()

	return store.NewDate(now.Year(), now.Month(), now.Day())
}

// CanComplete returns ErrOpenTasks if any of the project tasks is still open.
func CanComplete(project string, tasks []store.Task) error {
	pending := []string{}
	for _, t := range tasks {
		if t.Project == project && open[t.Status] {
			pending = append(pending, t.Name)
		}
	}

	if len(pending) > 0 {
		return fmt.Errorf("%w (%v)", ErrOpenTasks, strings.Join(pending, ", "))
	}

	return nil
}

// StampTask sets the completion date of a completed task to today if it does not already have one
// and clears it for any other status.
func StampTask(task store.Task, today *types.Date) store.Task {
	if task.Status == store.StatusCompleted {
		if task.CompletionDate == nil {
			task.CompletionDate = today
		}
	} else {
		task.CompletionDate = nil
	}

	return task
}

// StampProject sets the end date of a completed project to today if it does not already have one
// and clears it for any other status.
func StampProject(project store.Project, today *types.Date) store.Project {
	if project.Status == store.StatusCompleted {
		if project.EndDate == nil {
			project.EndDate = today
		}
	} else {
		project.EndDate = nil
	}

	return project
}

// Summarise counts the completed, incomplete and overdue tasks. A task is overdue if it is not
// completed and its due date is before today.
func Summarise(tasks []store.Task, today *types.Date) Summary {
	summary := Summary{}

	for _, t := range tasks {
		summary.Total++

		if t.Status == store.StatusCompleted {
			summary.Completed++
			continue
		}

		summary.Incomplete++
		if t.DueDate != nil && today != nil && store.FormatDate(t.DueDate) < store.FormatDate(today) {
			summary.Overdue++
		}
	}

	return summary
}

// Filter selects the tasks assigned to a user and/or starting on a date. Empty fields match
// everything.
type Filter struct {
	AssignedTo string
	StartDate  *types.Date
}

// Select returns the tasks matching the filter. Assignees are compared case-insensitively.
func Select(tasks []store.Task, filter Filter) []store.Task {
	assignee := strings.ToLower(strings.TrimSpace(filter.AssignedTo))
	list := []store.Task{}

	for _, t := range tasks {
		if assignee != "" && strings.ToLower(strings.TrimSpace(t.AssignedTo)) != assignee {
			continue
		}

		if filter.StartDate != nil && (t.StartDate == nil || store.FormatDate(t.StartDate) != store.FormatDate(filter.StartDate)) {
			continue
		}

		list = append(list, t)
	}

	return list
}
