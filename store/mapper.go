package store

import (
	"fmt"
	"strings"
)

type Dataset string

const (
	Tasks       Dataset = "tasks"
	Projects    Dataset = "projects"
	Credentials Dataset = "credentials"
)

// Cache keys
const (
	KeyTasks        = "tasks"
	KeyProjectsList = "projects_list"
	KeyProjectsDF   = "projects_df"
	KeyUsers        = "users"
)

// KeyUserName returns the cache key for the display name of a user.
func KeyUserName(email string) string {
	return "user_name_" + email
}

// record is a worksheet row keyed by canonical field name.
type record map[string]string

type field struct {
	name    string
	aliases []string
}

type schema struct {
	dataset  Dataset
	fields   []field
	identity string
	required []string
	keys     []string
}

var taskSchema = schema{
	dataset: Tasks,
	fields: []field{
		{"task_name", []string{"task_name", "Task Name", "Task", "task", "name"}},
		{"description", []string{"description", "Description", "desc", "Desc"}},
		{"project_name", []string{"project_name", "Project Name", "Project", "project"}},
		{"assigned_to", []string{"assigned_to", "Assigned To", "Assignee", "assignee", "assigned"}},
		{"priority", []string{"priority", "Priority", "pri"}},
		{"status", []string{"status", "Status", "stat"}},
		{"start_date", []string{"start_date", "Start Date", "start", "Start"}},
		{"due_date", []string{"due_date", "Due Date", "due", "Due"}},
		{"completion_date", []string{"completion_date", "Completion Date", "completed", "Completed"}},
		{"comments", []string{"comments", "Comments", "comment", "Comment", "notes", "Notes"}},
		{"created_by", []string{"created_by", "Created By", "creator", "Creator"}},
	},
	identity: "task_name",
	required: []string{"task_name", "project_name", "assigned_to"},
	keys:     []string{KeyTasks},
}

var projectSchema = schema{
	dataset: Projects,
	fields: []field{
		{"project_name", []string{"project_name", "Project Name", "Project", "project", "name"}},
		{"description", []string{"description", "Description", "desc", "Desc"}},
		{"start_date", []string{"start_date", "Start Date", "start", "Start"}},
		{"end_date", []string{"end_date", "End Date", "end", "End"}},
		{"status", []string{"status", "Status", "stat"}},
		{"priority", []string{"priority", "Priority", "pri"}},
		{"created_by", []string{"created_by", "Created By", "creator", "Creator"}},
	},
	identity: "project_name",
	required: []string{"project_name"},
	keys:     []string{KeyProjectsList, KeyProjectsDF},
}

// The credentials worksheet is read-only. The name aliases are in order of preference.
var userSchema = schema{
	dataset: Credentials,
	fields: []field{
		{"email", []string{"email", "e-mail", "Email Address"}},
		{"name", []string{"Name", "username", "full_name"}},
	},
	identity: "email",
	keys:     []string{KeyUsers},
}

func (s schema) header() []string {
	header := make([]string, len(s.fields))
	for i, f := range s.fields {
		header[i] = f.name
	}

	return header
}

// validate checks that all the required fields of a record have a value.
func (s schema) validate(r record) error {
	for _, f := range s.required {
		if strings.TrimSpace(r[f]) == "" {
			return fmt.Errorf("%w '%v'", ErrMissingField, f)
		}
	}

	return nil
}

// columns is the mapping from canonical field to the physical column in a worksheet.
type columns struct {
	header []string
	index  map[string]int
}

// mapColumns matches the canonical fields against the actual worksheet header. Each field takes the
// column matching its most preferred alias, comparing case-insensitively and ignoring spaces and
// underscores. Fields with no matching column are left unmapped.
func mapColumns(s schema, header []string) columns {
	cols := columns{
		header: header,
		index:  map[string]int{},
	}

	taken := map[int]bool{}
	for _, f := range s.fields {
	aliases:
		for _, alias := range f.aliases {
			k := normalise(alias)
			for i, h := range header {
				if !taken[i] && normalise(h) == k {
					cols.index[f.name] = i
					taken[i] = true
					break aliases
				}
			}
		}
	}

	return cols
}

func (c columns) mapped(f string) bool {
	_, ok := c.index[f]
	return ok
}

// unmapped returns the canonical fields that have no column in the worksheet.
func (c columns) unmapped(s schema) []string {
	list := []string{}
	for _, f := range s.fields {
		if !c.mapped(f.name) {
			list = append(list, f.name)
		}
	}

	return list
}

// needsRepair is true if the worksheet has no header at all or if the header is both shorter
// than the canonical header and missing the identity column.
func needsRepair(s schema, c columns) bool {
	if blank(c.header) {
		return true
	}

	return len(c.header) < len(s.fields) && !c.mapped(s.identity)
}

// parse converts a worksheet row to a record. Cells missing from the end of a row are treated
// as blank.
func (c columns) parse(row []string) record {
	r := record{}
	for f, ix := range c.index {
		if ix < len(row) {
			r[f] = clean(row[ix])
		} else {
			r[f] = ""
		}
	}

	return r
}

// row lays out a record in worksheet column order. Unmapped columns are left blank.
func (c columns) row(r record) []string {
	return c.overlay(nil, r)
}

// overlay writes the mapped fields of a record over an existing worksheet row, preserving the
// values in any columns that are not mapped to a canonical field.
func (c columns) overlay(existing []string, r record) []string {
	N := len(c.header)
	if len(existing) > N {
		N = len(existing)
	}

	row := make([]string, N)
	copy(row, existing)

	for f, ix := range c.index {
		row[ix] = r[f]
	}

	return row
}

// identify builds the index from identity value to data row offset. The first occurrence of a
// duplicated identity wins.
func (c columns) identify(s schema, rows [][]string) map[string]int {
	index := map[string]int{}
	if ix, ok := c.index[s.identity]; ok {
		for i, row := range rows {
			if ix < len(row) {
				if k := clean(row[ix]); k != "" {
					if _, ok := index[k]; !ok {
						index[k] = i
					}
				}
			}
		}
	}

	return index
}

func blank(row []string) bool {
	for _, v := range row {
		if clean(v) != "" {
			return false
		}
	}

	return true
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "_", "").Replace(strings.TrimSpace(v)))
}
