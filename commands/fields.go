package commands

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/uhppoted/uhppote-core/types"

	"github.com/uhppoted/uhppoted-app-tracker/store"
)

var statuses = []string{
	store.StatusNotStarted,
	store.StatusPlanned,
	store.StatusInProgress,
	store.StatusBlocked,
	store.StatusCompleted,
}

var priorities = []string{
	store.PriorityLow,
	store.PriorityMedium,
	store.PriorityHigh,
}

// optional is a string flag that records whether it was set on the command line.
type optional struct {
	value string
	set   bool
}

func (o *optional) String() string {
	return o.value
}

func (o *optional) Set(v string) error {
	o.value = strings.TrimSpace(v)
	o.set = true

	return nil
}

func (o *optional) apply(v *string) {
	if o.set {
		*v = o.value
	}
}

func (o *optional) date(field string, d **types.Date) error {
	if o.set {
		if o.value == "" {
			*d = nil
		} else if date := store.ParseDate(o.value); date == nil {
			return fmt.Errorf("invalid %v '%v' - expected YYYY-MM-DD", field, o.value)
		} else {
			*d = date
		}
	}

	return nil
}

func (o *optional) oneOf(field string, list []string, v *string) error {
	if o.set {
		for _, s := range list {
			if strings.EqualFold(s, o.value) {
				*v = s
				return nil
			}
		}

		if o.value != "" {
			return fmt.Errorf("invalid %v '%v' - expected one of %v", field, o.value, strings.Join(list, ", "))
		}

		*v = ""
	}

	return nil
}

type taskFields struct {
	name           optional
	description    optional
	project        optional
	assignedTo     optional
	priority       optional
	status         optional
	startDate      optional
	dueDate        optional
	completionDate optional
	comments       optional
	createdBy      optional
}

func (f *taskFields) register(flagset *flag.FlagSet, name string) {
	flagset.Var(&f.name, name, "Task name")
	flagset.Var(&f.description, "description", "Task description")
	flagset.Var(&f.project, "project", "Project name")
	flagset.Var(&f.assignedTo, "assigned-to", "Assignee email address")
	flagset.Var(&f.priority, "priority", "Task priority ("+strings.Join(priorities, ", ")+")")
	flagset.Var(&f.status, "status", "Task status ("+strings.Join(statuses, ", ")+")")
	flagset.Var(&f.startDate, "start-date", "Start date (YYYY-MM-DD)")
	flagset.Var(&f.dueDate, "due-date", "Due date (YYYY-MM-DD)")
	flagset.Var(&f.completionDate, "completion-date", "Completion date (YYYY-MM-DD). Defaults to today for completed tasks")
	flagset.Var(&f.comments, "comments", "Comments")
	flagset.Var(&f.createdBy, "created-by", "Email address of the user creating the task")
}

// update overwrites the fields of a task with the values set on the command line.
func (f *taskFields) update(task store.Task) (store.Task, error) {
	f.name.apply(&task.Name)
	f.description.apply(&task.Description)
	f.project.apply(&task.Project)
	f.assignedTo.apply(&task.AssignedTo)
	f.comments.apply(&task.Comments)
	f.createdBy.apply(&task.CreatedBy)

	if err := f.priority.oneOf("priority", priorities, &task.Priority); err != nil {
		return task, err
	}

	if err := f.status.oneOf("status", statuses, &task.Status); err != nil {
		return task, err
	}

	if err := f.startDate.date("start date", &task.StartDate); err != nil {
		return task, err
	}

	if err := f.dueDate.date("due date", &task.DueDate); err != nil {
		return task, err
	}

	if err := f.completionDate.date("completion date", &task.CompletionDate); err != nil {
		return task, err
	}

	return task, nil
}

type projectFields struct {
	name        optional
	description optional
	startDate   optional
	endDate     optional
	status      optional
	priority    optional
	createdBy   optional
}

func (f *projectFields) register(flagset *flag.FlagSet, name string) {
	flagset.Var(&f.name, name, "Project name")
	flagset.Var(&f.description, "description", "Project description")
	flagset.Var(&f.startDate, "start-date", "Start date (YYYY-MM-DD)")
	flagset.Var(&f.endDate, "end-date", "End date (YYYY-MM-DD). Defaults to today for completed projects")
	flagset.Var(&f.status, "status", "Project status ("+strings.Join(statuses, ", ")+")")
	flagset.Var(&f.priority, "priority", "Project priority ("+strings.Join(priorities, ", ")+")")
	flagset.Var(&f.createdBy, "created-by", "Email address of the user creating the project")
}

func (f *projectFields) update(project store.Project) (store.Project, error) {
	f.name.apply(&project.Name)
	f.description.apply(&project.Description)
	f.createdBy.apply(&project.CreatedBy)

	if err := f.priority.oneOf("priority", priorities, &project.Priority); err != nil {
		return project, err
	}

	if err := f.status.oneOf("status", statuses, &project.Status); err != nil {
		return project, err
	}

	if err := f.startDate.date("start date", &project.StartDate); err != nil {
		return project, err
	}

	if err := f.endDate.date("end date", &project.EndDate); err != nil {
		return project, err
	}

	return project, nil
}

func findTask(tasks []store.Task, name string) (store.Task, bool) {
	ix := slices.IndexFunc(tasks, func(t store.Task) bool { return t.Name == name })
	if ix < 0 {
		return store.Task{}, false
	}

	return tasks[ix], true
}

func findProject(projects []store.Project, name string) (store.Project, bool) {
	ix := slices.IndexFunc(projects, func(p store.Project) bool { return p.Name == name })
	if ix < 0 {
		return store.Project{}, false
	}

	return projects[ix], true
}
