package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

var StatusCmd = Status{}

// Status displays the latest revision of each worksheet, a summary of the tasks and the cache
// state.
type Status struct {
	command
}

func (cmd *Status) Name() string {
	return "status"
}

func (cmd *Status) Description() string {
	return "Displays the latest revision of each worksheet and a summary of the tasks"
}

func (cmd *Status) Usage() string {
	return ""
}

func (cmd *Status) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] status [options]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the last modified time of the tasks, projects and credentials worksheets, a summary")
	fmt.Println("  of the completed, incomplete and overdue tasks and the currently cached values")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s status\n", APP)
	fmt.Println()
}

func (cmd *Status) FlagSet() *flag.FlagSet {
	return cmd.flagset("status")
}

func (cmd *Status) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	s, conf, err := cmd.open(options)
	if err != nil {
		return err
	}

	sheets := []struct {
		dataset store.Dataset
		id      string
	}{
		{store.Tasks, conf.Sheets.Tasks},
		{store.Projects, conf.Sheets.Projects},
		{store.Credentials, conf.Sheets.Credentials},
	}

	records := [][]string{}
	for _, sheet := range sheets {
		modified := ""
		if t, err := s.Modified(ctx, sheet.dataset); err != nil {
			modified = fmt.Sprintf("(%v)", err)
		} else if !t.IsZero() {
			modified = t.Local().Format(time.DateTime)
		}

		records = append(records, []string{string(sheet.dataset), sheet.id, modified})
	}

	table, err := makeTable([]string{"Worksheet", "Spreadsheet", "Modified"}, records)
	if err != nil {
		return err
	}

	table.print(os.Stdout)

	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		return err
	}

	projects, err := s.LoadProjects(ctx)
	if err != nil {
		return err
	}

	summary := workflow.Summarise(tasks, workflow.Today())

	fmt.Println()
	fmt.Printf("  projects:   %v\n", len(projects))
	fmt.Printf("  tasks:      %v\n", summary.Total)
	fmt.Printf("  completed:  %v\n", summary.Completed)
	fmt.Printf("  incomplete: %v\n", summary.Incomplete)
	fmt.Printf("  overdue:    %v\n", summary.Overdue)
	fmt.Println()
	fmt.Printf("  cached:     %v\n", strings.Join(s.Cache().Keys(), ", "))
	fmt.Println()

	return nil
}
