package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppote-core/types"

	"github.com/uhppoted/uhppoted-app-tracker/store"
)

var ErrInvalidRequest = errors.New("invalid request")

type task struct {
	Name           string `json:"task_name"`
	Description    string `json:"description"`
	Project        string `json:"project_name"`
	AssignedTo     string `json:"assigned_to"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date"`
	DueDate        string `json:"due_date"`
	CompletionDate string `json:"completion_date"`
	Comments       string `json:"comments"`
	CreatedBy      string `json:"created_by"`
}

type project struct {
	Name        string `json:"project_name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedBy   string `json:"created_by"`
}

type user struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Authorised *bool  `json:"authorised,omitempty"`
}

type summary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
	Overdue    int `json:"overdue"`
}

type failure struct {
	Error   string `json:"error"`
	Request string `json:"request,omitempty"`
}

func fromTask(t store.Task) task {
	return task{
		Name:           t.Name,
		Description:    t.Description,
		Project:        t.Project,
		AssignedTo:     t.AssignedTo,
		Priority:       t.Priority,
		Status:         t.Status,
		StartDate:      store.FormatDate(t.StartDate),
		DueDate:        store.FormatDate(t.DueDate),
		CompletionDate: store.FormatDate(t.CompletionDate),
		Comments:       t.Comments,
		CreatedBy:      t.CreatedBy,
	}
}

func (t task) toTask() (store.Task, error) {
	task := store.Task{
		Name:        strings.TrimSpace(t.Name),
		Description: t.Description,
		Project:     strings.TrimSpace(t.Project),
		AssignedTo:  strings.TrimSpace(t.AssignedTo),
		Priority:    t.Priority,
		Status:      t.Status,
		Comments:    t.Comments,
		CreatedBy:   strings.TrimSpace(t.CreatedBy),
	}

	var err error
	if task.StartDate, err = date("start_date", t.StartDate); err != nil {
		return task, err
	}

	if task.DueDate, err = date("due_date", t.DueDate); err != nil {
		return task, err
	}

	if task.CompletionDate, err = date("completion_date", t.CompletionDate); err != nil {
		return task, err
	}

	return task, nil
}

func fromProject(p store.Project) project {
	return project{
		Name:        p.Name,
		Description: p.Description,
		StartDate:   store.FormatDate(p.StartDate),
		EndDate:     store.FormatDate(p.EndDate),
		Status:      p.Status,
		Priority:    p.Priority,
		CreatedBy:   p.CreatedBy,
	}
}

func (p project) toProject() (store.Project, error) {
	project := store.Project{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		CreatedBy:   strings.TrimSpace(p.CreatedBy),
	}

	var err error
	if project.StartDate, err = date("start_date", p.StartDate); err != nil {
		return project, err
	}

	if project.EndDate, err = date("end_date", p.EndDate); err != nil {
		return project, err
	}

	return project, nil
}

// date parses an optional YYYY-MM-DD date. Unlike worksheet cells, a malformed date in a request
// is an error rather than a missing value.
func date(field, v string) (*types.Date, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}

	if d := store.ParseDate(v); d != nil {
		return d, nil
	}

	return nil, fmt.Errorf("%w: invalid %v '%v'", ErrInvalidRequest, field, v)
}
