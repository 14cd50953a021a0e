package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/uhppoted/uhppoted-app-tracker/log"
	"github.com/uhppoted/uhppoted-app-tracker/store"
	"github.com/uhppoted/uhppoted-app-tracker/workflow"
)

var SaveProjectCmd = SaveProject{}

var UpdateProjectCmd = UpdateProject{}

// SaveProject creates a project or overwrites the project with the same name.
type SaveProject struct {
	command
	fields projectFields
}

func (cmd *SaveProject) Name() string {
	return "save-project"
}

func (cmd *SaveProject) Description() string {
	return "Adds a project to the projects worksheet, replacing any existing project with the same name"
}

func (cmd *SaveProject) Usage() string {
	return "--name <project> [options]"
}

func (cmd *SaveProject) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] save-project [options] --name <project>\n", APP)
	fmt.Println()
	fmt.Println("  Adds a project to the projects worksheet. A project with the same name as an existing project")
	fmt.Println("  replaces the existing project. A project can only be saved as 'Completed' if all its tasks")
	fmt.Println("  are completed.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s save-project --name "Alpha" --status "Planned" --priority "High" --start-date 2025-01-06`+"\n", APP)
	fmt.Println()
}

func (cmd *SaveProject) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("save-project")

	cmd.fields.register(flagset, "name")

	return flagset
}

func (cmd *SaveProject) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	project, err := cmd.fields.update(store.Project{Status: store.StatusNotStarted})
	if err != nil {
		return err
	}

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	if err := checkCreator(ctx, s, project.CreatedBy); err != nil {
		return err
	}

	if err := checkProjects(ctx, s, []store.Project{project}); err != nil {
		return err
	}

	project = workflow.StampProject(project, workflow.Today())

	if err := s.SaveProject(ctx, project); err != nil {
		return err
	}

	log.Infof(LOG_TAG, "saved project '%v'", project.Name)

	return nil
}

// UpdateProject overwrites the fields of an existing project with the values given on the command
// line.
type UpdateProject struct {
	command
	project string
	fields  projectFields
}

func (cmd *UpdateProject) Name() string {
	return "update-project"
}

func (cmd *UpdateProject) Description() string {
	return "Updates an existing project in the projects worksheet"
}

func (cmd *UpdateProject) Usage() string {
	return "--name <project> [options]"
}

func (cmd *UpdateProject) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] update-project [options] --name <project>\n", APP)
	fmt.Println()
	fmt.Println("  Updates an existing project. Only the fields given on the command line are changed and the")
	fmt.Println("  command fails without changing anything if there is no project with the name.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s update-project --name "Alpha" --status "Completed"`+"\n", APP)
	fmt.Println()
}

func (cmd *UpdateProject) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("update-project")

	flagset.StringVar(&cmd.project, "name", cmd.project, "Name of the project to update")
	cmd.fields.register(flagset, "rename")

	return flagset
}

func (cmd *UpdateProject) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	if cmd.project == "" {
		return fmt.Errorf("--name is a required option")
	}

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	projects, err := s.LoadProjectTable(ctx)
	if err != nil {
		return err
	}

	project, ok := findProject(projects, cmd.project)
	if !ok {
		return fmt.Errorf("%w: project '%v'", store.ErrNotFound, cmd.project)
	}

	if project, err = cmd.fields.update(project); err != nil {
		return err
	}

	if project.Status == store.StatusCompleted {
		tasks, err := s.LoadTasks(ctx)
		if err != nil {
			return fmt.Errorf("unable to check project tasks (%w)", err)
		}

		if err := workflow.CanComplete(cmd.project, tasks); err != nil {
			return fmt.Errorf("project '%v': %w", cmd.project, err)
		}
	}

	project = workflow.StampProject(project, workflow.Today())

	if err := s.UpdateProject(ctx, cmd.project, project); err != nil {
		return err
	}

	log.Infof(LOG_TAG, "updated project '%v'", cmd.project)

	return nil
}
