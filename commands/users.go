package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
)

var UsersCmd = Users{}

// Users lists the users in the credentials worksheet.
type Users struct {
	command
}

func (cmd *Users) Name() string {
	return "users"
}

func (cmd *Users) Description() string {
	return "Lists the users in the credentials worksheet"
}

func (cmd *Users) Usage() string {
	return ""
}

func (cmd *Users) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] users [options]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the email address and display name of the users in the credentials worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s users\n", APP)
	fmt.Println()
}

func (cmd *Users) FlagSet() *flag.FlagSet {
	return cmd.flagset("users")
}

func (cmd *Users) Execute(args ...any) error {
	ctx := args[0].(context.Context)
	options := args[1].(*Options)

	s, _, err := cmd.open(options)
	if err != nil {
		return err
	}

	users, err := s.LoadUsers(ctx)
	if err != nil {
		return err
	}

	records := [][]string{}
	for _, u := range users {
		name, err := s.UserName(ctx, u.Email)
		if err != nil {
			return err
		}

		records = append(records, []string{u.Email, name})
	}

	table, err := makeTable([]string{"Email", "Name"}, records)
	if err != nil {
		return err
	}

	table.print(os.Stdout)

	return nil
}
