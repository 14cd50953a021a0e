package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

var GetTasksCmd = Get{
	dataset: store.Tasks,
	file:    "",
}

var GetProjectsCmd = Get{
	dataset: store.Projects,
	file:    "",
}

// Get retrieves the tasks or projects worksheet and either displays it or saves it to a TSV file.
// Tasks can be filtered by assignee and/or restricted to the tasks starting today.
type Get struct {
	command
	dataset    store.Dataset
	file       string
	assignedTo string
	today      bool
}

func (cmd *Get) Name() string {
	return fmt.Sprintf("get-%v", cmd.dataset)
}

func (cmd *Get) Description() string {
	return fmt.Sprintf("Retrieves the %v from the %v worksheet and displays them or stores them to a TSV file", cmd.dataset, cmd.dataset)
}

func (cmd *Get) Usage() string {
	return "[--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] %v [options] [--file <file>]\n", APP, cmd.Name())
	fmt.Println()
	fmt.Printf("  Retrieves the %v worksheet and displays it on the console or stores it to a TSV file\n", cmd.dataset)
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s %v\n", APP, cmd.Name())
	fmt.Printf("    %s --debug %v --file \"%v.tsv\"\n", APP, cmd.Name(), cmd.dataset)
	if cmd.dataset == store.Tasks {
		fmt.Printf("    %s %v --assigned-to someone@example.com --today\n", APP, cmd.Name())
	}
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset(cmd.Name())

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Displays the worksheet on the console if not specified")

	if cmd.dataset == store.Tasks {
		flagset.StringVar(&cmd.assignedTo, "assigned-to", cmd.assignedTo, "Retrieves only the tasks assigned to this user")
		flagset.BoolVar(&cmd.today, "today", cmd.today, "Retrieves only the tasks starting today")
	}

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	var header []string
	var records [][]string
	var write func(io.Writer) error

	switch cmd.dataset {
	case store.Tasks:
		tasks, err := s.LoadTasks(ctx)
		if err != nil {
			return err
		}

		filter := workflow.Filter{AssignedTo: cmd.assignedTo}
		if cmd.today {
			filter.StartDate = workflow.Today()
		}

		tasks = workflow.Select(tasks, filter)

		header = taskColumns
		for _, t := range tasks {
			records = append(records, taskRow(t))
		}

		write = func(f io.Writer) error {
			return tasksToTSV(f, tasks)
		}

	case store.Projects:
		projects, err := s.LoadProjectTable(ctx)
		if err != nil {
			return err
		}

		header = projectColumns
		for _, p := range projects {
			records = append(records, projectRow(p))
		}

		write = func(f io.Writer) error {
			return projectsToTSV(f, projects)
		}

	default:
		return fmt.Errorf("unsupported dataset '%v'", cmd.dataset)
	}

	if cmd.file == "" {
		table, err := makeTable(header, records)
		if err != nil {
			return err
		}

		table.print(os.Stdout)

		return nil
	}

	if err := writeFile(cmd.file, write); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	log.Infof(LOG_TAG, "retrieved %v %v to file %s", len(records), cmd.dataset, cmd.file)

	return nil
}

// writeFile writes to a temporary file and then moves it into place so that a failed write does
// not clobber an existing file.
func writeFile(file string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(os.TempDir(), "tracker")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}

	tmp.Close()

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
