package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/uhppoted/uhppoted-app-tracker/commands"
	"github.com/uhppoted/uhppoted-app-tracker/log"
)

var cli = []uhppoted.Command{
	&commands.VersionCmd,
	&commands.GetTasksCmd,
	&commands.PutTasksCmd,
	&commands.SaveTaskCmd,
	&commands.UpdateTaskCmd,
	&commands.GetProjectsCmd,
	&commands.PutProjectsCmd,
	&commands.SaveProjectCmd,
	&commands.UpdateProjectCmd,
	&commands.UsersCmd,
	&commands.StatusCmd,
	&commands.ServeCmd,
}

var options = commands.Options{
	Config: commands.DEFAULT_CONFIG,
	Debug:  false,
}

var help = uhppoted.NewHelp(commands.APP, cli, nil)

func main() {
	flag.StringVar(&options.Config, "config", options.Config, "Configuration file")
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	cmd, err := uhppoted.Parse(cli, nil, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cmd == nil {
		help.Execute(ctx)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		log.Errorf(commands.LOG_TAG, "%v", err)
		os.Exit(1)
	}
}
