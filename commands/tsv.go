package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/uhppoted/uhppoted-app-tracker/store"
)

var taskColumns = []string{
	"Task Name",
	"Description",
	"Project Name",
	"Assigned To",
	"Priority",
	"Status",
	"Start Date",
	"Due Date",
	"Completion Date",
	"Comments",
	"Created By",
}

var projectColumns = []string{
	"Project Name",
	"Description",
	"Start Date",
	"End Date",
	"Status",
	"Priority",
	"Created By",
}

func taskRow(t store.Task) []string {
	return []string{
		t.Name,
		t.Description,
		t.Project,
		t.AssignedTo,
		t.Priority,
		t.Status,
		store.FormatDate(t.StartDate),
		store.FormatDate(t.DueDate),
		store.FormatDate(t.CompletionDate),
		t.Comments,
		t.CreatedBy,
	}
}

func projectRow(p store.Project) []string {
	return []string{
		p.Name,
		p.Description,
		store.FormatDate(p.StartDate),
		store.FormatDate(p.EndDate),
		p.Status,
		p.Priority,
		p.CreatedBy,
	}
}

func tasksToTSV(f io.Writer, tasks []store.Task) error {
	rows := [][]string{}
	for _, t := range tasks {
		rows = append(rows, taskRow(t))
	}

	return writeTSV(f, taskColumns, rows)
}

func projectsToTSV(f io.Writer, projects []store.Project) error {
	rows := [][]string{}
	for _, p := range projects {
		rows = append(rows, projectRow(p))
	}

	return writeTSV(f, projectColumns, rows)
}

func tsvToTasks(f io.Reader) ([]store.Task, error) {
	records, err := readTSV(f, taskColumns, "Task Name")
	if err != nil {
		return nil, err
	}

	tasks := []store.Task{}
	for _, r := range records {
		tasks = append(tasks, store.Task{
			Name:           r["taskname"],
			Description:    r["description"],
			Project:        r["projectname"],
			AssignedTo:     r["assignedto"],
			Priority:       r["priority"],
			Status:         r["status"],
			StartDate:      store.ParseDate(r["startdate"]),
			DueDate:        store.ParseDate(r["duedate"]),
			CompletionDate: store.ParseDate(r["completiondate"]),
			Comments:       r["comments"],
			CreatedBy:      r["createdby"],
		})
	}

	return tasks, nil
}

func tsvToProjects(f io.Reader) ([]store.Project, error) {
	records, err := readTSV(f, projectColumns, "Project Name")
	if err != nil {
		return nil, err
	}

	projects := []store.Project{}
	for _, r := range records {
		projects = append(projects, store.Project{
			Name:        r["projectname"],
			Description: r["description"],
			StartDate:   store.ParseDate(r["startdate"]),
			EndDate:     store.ParseDate(r["enddate"]),
			Status:      r["status"],
			Priority:    r["priority"],
			CreatedBy:   r["createdby"],
		})
	}

	return projects, nil
}

func writeTSV(f io.Writer, header []string, rows [][]string) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// readTSV reads the rows of a TSV file into records keyed by the normalised column name. Columns
// are matched by name and may be in any order. Unknown columns and blank rows are ignored.
func readTSV(f io.Reader, columns []string, identity string) ([]map[string]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	// .. build index
	known := map[string]bool{}
	for _, c := range columns {
		known[normalise(c)] = true
	}

	index := map[string]int{}
	for i, v := range rows[0] {
		k := normalise(v)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", v)
		}

		if known[k] {
			index[k] = i
		}
	}

	if _, ok := index[normalise(identity)]; !ok {
		return nil, fmt.Errorf("missing '%v' column", identity)
	}

	// ... records
	records := []map[string]string{}
	for _, row := range rows[1:] {
		record := map[string]string{}
		empty := true

		for k, ix := range index {
			if ix < len(row) {
				record[k] = clean(row[ix])
				empty = empty && record[k] == ""
			}
		}

		if !empty {
			records = append(records, record)
		}
	}

	return records, nil
}
