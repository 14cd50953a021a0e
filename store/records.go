package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/uhppoted/uhppote-core/types"
)

const (
	StatusNotStarted = "Not Started"
	StatusPlanned    = "Planned"
	StatusInProgress = "In Progress"
	StatusBlocked    = "Blocked"
	StatusCompleted  = "Completed"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is a single tracked work item, identified by its name.
type Task struct {
	Name           string
	Description    string
	Project        string
	AssignedTo     string
	Priority       string
	Status         string
	StartDate      *types.Date
	DueDate        *types.Date
	CompletionDate *types.Date
	Comments       string
	CreatedBy      string
}

// Project groups tasks, identified by its name.
type Project struct {
	Name        string
	Description string
	StartDate   *types.Date
	EndDate     *types.Date
	Status      string
	Priority    string
	CreatedBy   string
}

type User struct {
	Email string
	Name  string
}

// Accepted date layouts for worksheet cells. Cells entered through the Sheets UI are rendered in
// the spreadsheet locale so the common US and ISO forms are all accepted.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006",
	time.RFC3339,
}

// ParseDate parses a worksheet date. Blank and unparseable values are returned as nil, i.e. a
// missing date.
func ParseDate(s string) *types.Date {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nat") {
		return nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			if d, err := types.ParseDate(t.Format("2006-01-02")); err == nil {
				return &d
			}
		}
	}

	return nil
}

// NewDate returns the calendar date for year, month and day.
func NewDate(year int, month time.Month, day int) *types.Date {
	return ParseDate(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
}

// FormatDate formats a date as YYYY-MM-DD, with a missing date formatted as a blank string.
func FormatDate(d *types.Date) string {
	if d == nil {
		return ""
	}

	return d.String()
}

func (t Task) record() record {
	return record{
		"task_name":       t.Name,
		"description":     t.Description,
		"project_name":    t.Project,
		"assigned_to":     t.AssignedTo,
		"priority":        t.Priority,
		"status":          t.Status,
		"start_date":      FormatDate(t.StartDate),
		"due_date":        FormatDate(t.DueDate),
		"completion_date": FormatDate(t.CompletionDate),
		"comments":        t.Comments,
		"created_by":      t.CreatedBy,
	}
}

func taskFromRecord(r record) Task {
	return Task{
		Name:           r["task_name"],
		Description:    r["description"],
		Project:        r["project_name"],
		AssignedTo:     r["assigned_to"],
		Priority:       r["priority"],
		Status:         r["status"],
		StartDate:      ParseDate(r["start_date"]),
		DueDate:        ParseDate(r["due_date"]),
		CompletionDate: ParseDate(r["completion_date"]),
		Comments:       r["comments"],
		CreatedBy:      r["created_by"],
	}
}

func (p Project) record() record {
	return record{
		"project_name": p.Name,
		"description":  p.Description,
		"start_date":   FormatDate(p.StartDate),
		"end_date":     FormatDate(p.EndDate),
		"status":       p.Status,
		"priority":     p.Priority,
		"created_by":   p.CreatedBy,
	}
}

func projectFromRecord(r record) Project {
	return Project{
		Name:        r["project_name"],
		Description: r["description"],
		StartDate:   ParseDate(r["start_date"]),
		EndDate:     ParseDate(r["end_date"]),
		Status:      r["status"],
		Priority:    r["priority"],
		CreatedBy:   r["created_by"],
	}
}

func userFromRecord(r record) User {
	return User{
		Email: r["email"],
		Name:  r["name"],
	}
}
