package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

var PutTasksCmd = Put{
	dataset: store.Tasks,
	file:    "",
}

var PutProjectsCmd = Put{
	dataset: store.Projects,
	file:    "",
}

// Put appends the records in a TSV file to the tasks or projects worksheet in a single API call.
type Put struct {
	command
	dataset store.Dataset
	file    string
}

func (cmd *Put) Name() string {
	return fmt.Sprintf("put-%v", cmd.dataset)
}

func (cmd *Put) Description() string {
	return fmt.Sprintf("Appends the %v in a TSV file to the %v worksheet", cmd.dataset, cmd.dataset)
}

func (cmd *Put) Usage() string {
	return "--file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] %v [options] --file <file>\n", APP, cmd.Name())
	fmt.Println()
	fmt.Printf("  Appends the %v in a TSV file to the %v worksheet. The records are all added in a single\n", cmd.dataset, cmd.dataset)
	fmt.Println("  call, retrying with exponential backoff if the Google Sheets API quota is exceeded.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug %v --file \"%v.tsv\"\n", APP, cmd.Name(), cmd.dataset)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset(cmd.Name())

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	today := workflow.Today()
	count := 0

	switch cmd.dataset {
	case store.Tasks:
		tasks, err := tsvToTasks(f)
		if err != nil {
			return fmt.Errorf("invalid TSV file (%w)", err)
		}

		for i := range tasks {
			tasks[i] = workflow.StampTask(tasks[i], today)
		}

		if err := s.SaveTasks(ctx, tasks); err != nil {
			return err
		}

		count = len(tasks)

	case store.Projects:
		projects, err := tsvToProjects(f)
		if err != nil {
			return fmt.Errorf("invalid TSV file (%w)", err)
		}

		if err := checkProjects(ctx, s, projects); err != nil {
			return err
		}

		for i := range projects {
			projects[i] = workflow.StampProject(projects[i], today)
		}

		if err := s.SaveProjects(ctx, projects); err != nil {
			return err
		}

		count = len(projects)

	default:
		return fmt.Errorf("unsupported dataset '%v'", cmd.dataset)
	}

	log.Infof(LOG_TAG, "appended %v %v from TSV file %v", count, cmd.dataset, cmd.file)

	return nil
}

// checkProjects verifies that none of the completed projects has open tasks.
func checkProjects(ctx context.Context, s *store.Store, projects []store.Project) error {
	var tasks []store.Task

	for _, p := range projects {
		if p.Status == store.StatusCompleted {
			if tasks == nil {
				if list, err := s.LoadTasks(ctx); err != nil {
					return fmt.Errorf("unable to check project tasks (%w)", err)
				} else {
					tasks = list
				}
			}

			if err := workflow.CanComplete(p.Name, tasks); err != nil {
				return fmt.Errorf("project '%v': %w", p.Name, err)
			}
		}
	}

	return nil
}
