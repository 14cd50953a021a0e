package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

var SaveTaskCmd = SaveTask{}

var UpdateTaskCmd = UpdateTask{}

// SaveTask creates a task or overwrites the task with the same name.
type SaveTask struct {
	command
	fields taskFields
}

func (cmd *SaveTask) Name() string {
	return "save-task"
}

func (cmd *SaveTask) Description() string {
	return "Adds a task to the tasks worksheet, replacing any existing task with the same name"
}

func (cmd *SaveTask) Usage() string {
	return "--name <task> --project <project> --assigned-to <email> [options]"
}

func (cmd *SaveTask) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] save-task [options] --name <task> --project <project> --assigned-to <email>\n", APP)
	fmt.Println()
	fmt.Println("  Adds a task to the tasks worksheet. A task with the same name as an existing task replaces the")
	fmt.Println("  existing task.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s save-task --name "Draft report" --project "Alpha" --assigned-to "a@x.org" --status "Not Started"`+"\n", APP)
	fmt.Println()
}

func (cmd *SaveTask) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("save-task")

	cmd.fields.register(flagset, "name")

	return flagset
}

func (cmd *SaveTask) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	task, err := cmd.fields.update(store.Task{Status: store.StatusNotStarted})
	if err != nil {
		return err
	}

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	if err := checkCreator(ctx, s, task.CreatedBy); err != nil {
		return err
	}

	task = workflow.StampTask(task, workflow.Today())

	if err := s.SaveTask(ctx, task); err != nil {
		return err
	}

	log.Infof(LOG_TAG, "saved task '%v'", task.Name)

	return nil
}

// UpdateTask overwrites the fields of an existing task with the values given on the command line.
type UpdateTask struct {
	command
	task   string
	fields taskFields
}

func (cmd *UpdateTask) Name() string {
	return "update-task"
}

func (cmd *UpdateTask) Description() string {
	return "Updates an existing task in the tasks worksheet"
}

func (cmd *UpdateTask) Usage() string {
	return "--name <task> [options]"
}

func (cmd *UpdateTask) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] update-task [options] --name <task>\n", APP)
	fmt.Println()
	fmt.Println("  Updates an existing task. Only the fields given on the command line are changed and the")
	fmt.Println("  command fails without changing anything if there is no task with the name.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s update-task --name "Draft report" --status "Completed"`+"\n", APP)
	fmt.Printf(`    %s update-task --name "Draft report" --rename "Final report"`+"\n", APP)
	fmt.Println()
}

func (cmd *UpdateTask) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("update-task")

	flagset.StringVar(&cmd.task, "name", cmd.task, "Name of the task to update")
	cmd.fields.register(flagset, "rename")

	return flagset
}

func (cmd *UpdateTask) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	if cmd.task == "" {
		return fmt.Errorf("--name is a required option")
	}

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	tasks, err := s.LoadTasks(ctx)
	if err != nil {
		return err
	}

	task, ok := findTask(tasks, cmd.task)
	if !ok {
		return fmt.Errorf("%w: task '%v'", store.ErrNotFound, cmd.task)
	}

	if task, err = cmd.fields.update(task); err != nil {
		return err
	}

	task = workflow.StampTask(task, workflow.Today())

	if err := s.UpdateTask(ctx, cmd.task, task); err != nil {
		return err
	}

	log.Infof(LOG_TAG, "updated task '%v'", cmd.task)

	return nil
}

// checkCreator verifies that the email address is listed in the credentials worksheet.
func checkCreator(ctx context.Context, s *store.Store, email string) error {
	if email == "" {
		return nil
	}

	if ok, err := s.CheckUser(ctx, email); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("'%v' is not an authorised user", email)
	}

	return nil
}
