package workflow

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/uhppoted/uhppoted-app-tracker/store"
)

var tasks = []store.Task{
	{Name: "Write intro", Project: "Alpha", Status: store.StatusCompleted},
	{Name: "Review budget", Project: "Alpha", Status: store.StatusBlocked, DueDate: store.NewDate(2025, time.March, 1)},
	{Name: "Book venue", Project: "Beta", Status: store.StatusCompleted},
	{Name: "Order catering", Project: "Beta", Status: ""},
	{Name: "Print flyers", Project: "Gamma", Status: store.StatusPlanned, DueDate: store.NewDate(2025, time.March, 31)},
	{Name: "Send invites", Project: "Gamma", Status: store.StatusNotStarted, DueDate: store.NewDate(2025, time.March, 14)},
}

func TestCanComplete(t *testing.T) {
	tests := []struct {
		project  string
		expected error
	}{
		{"Alpha", ErrOpenTasks},
		{"Beta", nil},
		{"Gamma", ErrOpenTasks},
		{"Delta", nil},
	}

	for _, test := range tests {
		if err := CanComplete(test.project, tasks); !errors.Is(err, test.expected) {
			t.Errorf("Incorrect result for project '%v' - expected:%v, got:%v", test.project, test.expected, err)
		}
	}
}

func TestCanCompleteListsOpenTasks(t *testing.T) {
	err := CanComplete("Gamma", tasks)

	expected := "project has tasks that are not completed (Print flyers, Send invites)"
	if err == nil || err.Error() != expected {
		t.Errorf("Incorrect error\n   expected: %v\n   got:      %v\n", expected, err)
	}
}

func TestStampTask(t *testing.T) {
	today := store.NewDate(2025, time.March, 14)
	earlier := store.NewDate(2025, time.March, 10)

	tests := []struct {
		task     store.Task
		expected *string
	}{
		{store.Task{Status: store.StatusCompleted}, ptr("2025-03-14")},
		{store.Task{Status: store.StatusCompleted, CompletionDate: earlier}, ptr("2025-03-10")},
		{store.Task{Status: store.StatusInProgress, CompletionDate: earlier}, nil},
		{store.Task{Status: store.StatusNotStarted}, nil},
	}

	for _, test := range tests {
		task := StampTask(test.task, today)

		if test.expected == nil && task.CompletionDate != nil {
			t.Errorf("Expected no completion date for '%v' task, got %v", test.task.Status, task.CompletionDate)
		} else if test.expected != nil && store.FormatDate(task.CompletionDate) != *test.expected {
			t.Errorf("Incorrect completion date - expected:%v, got:%v", *test.expected, store.FormatDate(task.CompletionDate))
		}
	}
}

func TestStampProject(t *testing.T) {
	today := store.NewDate(2025, time.June, 30)

	project := StampProject(store.Project{Name: "Alpha", Status: store.StatusCompleted}, today)
	if d := store.FormatDate(project.EndDate); d != "2025-06-30" {
		t.Errorf("Incorrect end date - expected:%v, got:%v", "2025-06-30", d)
	}

	project = StampProject(store.Project{Name: "Alpha", Status: store.StatusInProgress, EndDate: today}, today)
	if project.EndDate != nil {
		t.Errorf("Expected no end date for 'In Progress' project, got %v", project.EndDate)
	}
}

func TestSummarise(t *testing.T) {
	expected := Summary{
		Total:      6,
		Completed:  2,
		Incomplete: 4,
		Overdue:    2,
	}

	if summary := Summarise(tasks, store.NewDate(2025, time.March, 15)); !reflect.DeepEqual(summary, expected) {
		t.Errorf("Incorrect summary\n   expected: %+v\n   got:      %+v\n", expected, summary)
	}
}

func ptr(s string) *string {
	return &s
}

func TestSelect(t *testing.T) {
	list := []store.Task{
		{Name: "Write intro", AssignedTo: "A@x.org ", StartDate: store.NewDate(2025, time.March, 14)},
		{Name: "Review budget", AssignedTo: "a@x.org", StartDate: store.NewDate(2025, time.March, 15)},
		{Name: "Book venue", AssignedTo: "b@x.org", StartDate: store.NewDate(2025, time.March, 14)},
		{Name: "Order catering", AssignedTo: "a@x.org"},
	}

	tests := []struct {
		filter   Filter
		expected []string
	}{
		{Filter{}, []string{"Write intro", "Review budget", "Book venue", "Order catering"}},
		{Filter{AssignedTo: "a@X.org"}, []string{"Write intro", "Review budget", "Order catering"}},
		{Filter{StartDate: store.NewDate(2025, time.March, 14)}, []string{"Write intro", "Book venue"}},
		{Filter{AssignedTo: "a@x.org", StartDate: store.NewDate(2025, time.March, 14)}, []string{"Write intro"}},
		{Filter{AssignedTo: "z@x.org"}, []string{}},
	}

	for _, test := range tests {
		names := []string{}
		for _, v := range Select(list, test.filter) {
			names = append(names, v.Name)
		}

		if !reflect.DeepEqual(names, test.expected) {
			t.Errorf("Incorrect tasks for %+v\n   expected: %v\n   got:      %v\n", test.filter, test.expected, names)
		}
	}
}
